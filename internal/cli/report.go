package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/groupg/causalstats/internal/aggregate"
	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/report"
	"github.com/groupg/causalstats/internal/source"
)

var (
	dbPath        string
	exportPath    string
	reportTimeout time.Duration
	noLatex       bool
	delimiter     string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate consistent statistics across all three pipeline stages",
	Long: `Report queries the relational store and the exported dataset to produce
accurate numbers for every report section:
- Unvalidated pool: all rows in the store
- Validated subset: store rows with finalScore >= 8
- Final export: cases present in the exported dataset

It renders human-readable tables, delimiter-separated rows for the typeset
report, and a verification pass asserting that partitioned totals sum to
the whole.

Example:
  causalstats report --db prisma/dev.db --export data/dataset.json
  causalstats report --db prisma/dev.db --export data/dataset.json --no-latex`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	defaults := model.DefaultConfig()
	reportCmd.Flags().StringVar(&dbPath, "db", defaults.Data.DBPath, "SQLite store path (unvalidated pool)")
	reportCmd.Flags().StringVar(&exportPath, "export", defaults.Data.ExportPath, "exported dataset JSON path")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", time.Minute, "overall timeout for source reads")
	reportCmd.Flags().BoolVar(&noLatex, "no-latex", false, "skip delimiter-separated table rows")
	reportCmd.Flags().StringVar(&delimiter, "delimiter", defaults.Output.Delimiter, "column separator for typeset rows")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Data.DBPath = dbPath
	cfg.Data.ExportPath = exportPath
	cfg.Output.Verbose = verbose
	cfg.Output.LatexTables = !noLatex
	cfg.Output.Delimiter = delimiter

	// Read both sources up front; every handle is released before
	// aggregation begins.
	dbRecords, err := readStore(ctx, cfg.Data.DBPath)
	if err != nil {
		return err
	}
	exportRecords, err := source.LoadExport(cfg.Data.ExportPath)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d store rows from %s\n", len(dbRecords), cfg.Data.DBPath)
		fmt.Fprintf(os.Stderr, "Loaded %d export cases from %s\n", len(exportRecords), cfg.Data.ExportPath)
	}

	unval := aggregate.Compute(dbRecords)
	val := aggregate.Compute(aggregate.FilterValidated(dbRecords))
	final := aggregate.Compute(exportRecords)

	r := report.NewReporter(os.Stdout, cfg.Output)
	r.StageReport("UNVALIDATED POOL (Store)", unval)
	r.DataQuality(unval)
	r.StageReport("VALIDATED (Score >= 8)", val)
	r.DataQuality(val)
	r.StageReport("FINAL EXPORT", final)
	r.DataQuality(final)

	if cfg.Output.LatexTables {
		r.LatexTables(unval, val, final)
	}

	// Advisory only: an inconsistency is reported, never fatal
	r.Verification(unval)

	return nil
}

// readStore reads every record from the store and closes the handle
func readStore(ctx context.Context, path string) ([]model.AnnotationRecord, error) {
	store, err := source.OpenStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.ReadQuestions(ctx)
}
