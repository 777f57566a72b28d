package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/groupg/causalstats/internal/aggregate"
	"github.com/groupg/causalstats/internal/embed"
	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/report"
	"github.com/groupg/causalstats/internal/source"
)

var (
	dataDir       string
	topSubdomains int
	topTrapTypes  int
	embedEnabled  bool
	embedModel    string
	highSim       float64
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the raw annotation pool and per-annotator distributions",
	Long: `Analyze loads the per-author annotation files (falling back to the
combined export when no per-author files exist), deduplicates them, and
computes the distributions behind the report figures:
- Ground truth, pearl level, difficulty, trap type, subdomain
- Ground truth within top subdomains
- Scenario word counts by label and difficulty
- Per-annotator breakdowns

With --embed, scenario texts are sent to the embedding service and a
pairwise similarity summary is printed. Vectors feed the chart-rendering
collaborator; this command only reports the summary statistics.

Example:
  causalstats analyze --data-dir ./data
  causalstats analyze --data-dir ./data --embed --high-sim 0.9`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	defaults := model.DefaultConfig()
	analyzeCmd.Flags().StringVar(&dataDir, "data-dir", defaults.Data.Dir, "directory of annotation JSON files")
	analyzeCmd.Flags().IntVar(&topSubdomains, "top-subdomains", defaults.Output.TopSubdomain, "subdomains kept before folding into OTHER")
	analyzeCmd.Flags().IntVar(&topTrapTypes, "top-traps", defaults.Output.TopTrapTypes, "trap types shown per table")
	analyzeCmd.Flags().BoolVar(&embedEnabled, "embed", false, "compute scenario embeddings and similarity summary")
	analyzeCmd.Flags().StringVar(&embedModel, "embed-model", defaults.Embedding.Model, "embedding model name")
	analyzeCmd.Flags().Float64Var(&highSim, "high-sim", 0.9, "cosine similarity threshold for near-duplicate pairs")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Data.Dir = dataDir
	cfg.Output.Verbose = verbose
	cfg.Output.TopSubdomain = topSubdomains
	cfg.Output.TopTrapTypes = topTrapTypes
	cfg.Embedding.Model = embedModel

	result, err := source.NewDirLoader().Load(cfg.Data.Dir)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d records from %s (%d annotators)\n",
			len(result.All), cfg.Data.Dir, len(result.ByAuthor))
	}

	stats := aggregate.Compute(result.All)
	byAuthor := aggregate.ComputeByAuthor(result.ByAuthor)

	r := report.NewReporter(os.Stdout, cfg.Output)
	r.StageReport("ANNOTATION POOL", stats)
	r.Distributions(stats)
	r.SubdomainCrossTab(aggregate.GroundTruthBySubdomain(result.All, cfg.Output.TopSubdomain))
	r.WordCounts(
		aggregate.ScenarioWordsByGroundTruth(result.All),
		aggregate.ScenarioWordsByDifficulty(result.All),
	)
	r.AuthorBreakdown(byAuthor)
	r.DataQuality(stats)

	if embedEnabled {
		if err := runEmbedSummary(cfg, result.All); err != nil {
			return err
		}
	}

	return nil
}

// runEmbedSummary fetches scenario embeddings and prints pairwise
// similarity statistics
func runEmbedSummary(cfg *model.Config, records []model.AnnotationRecord) error {
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.Embedding.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	embedder, err := embed.NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}
	client := embed.NewClient(embedder, cfg.Embedding, cfg.Concurrency.EmbeddingWorkers)

	scenarios := make([]string, len(records))
	for i, rec := range records {
		scenarios[i] = rec.Scenario
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Embedding.Timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Embedding %d scenarios with %s...\n", len(scenarios), cfg.Embedding.Model)
	}
	start := time.Now()
	vectors, err := client.EmbedAll(ctx, scenarios)
	if err != nil {
		return fmt.Errorf("embed scenarios: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Embedded in %v\n", time.Since(start))
	}

	sim := embed.Similarity(vectors, highSim)
	fmt.Printf("\n--- Scenario Similarity (%s) ---\n", cfg.Embedding.Model)
	fmt.Printf("  pairs: %d\n", sim.Pairs)
	fmt.Printf("  mean: %.3f  min: %.3f  max: %.3f\n", sim.Mean, sim.Min, sim.Max)
	fmt.Printf("  pairs >= %.2f: %d\n", sim.Threshold, sim.HighPairs)

	return nil
}
