// Package report renders computed statistics as human-readable tables and
// delimiter-separated rows for the typeset report, and verifies that
// partitioned totals agree with the whole.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/groupg/causalstats/internal/aggregate"
	"github.com/groupg/causalstats/internal/model"
)

const bannerWidth = 60

// Difficulty mix targets for the final dataset (easy/medium/hard)
var difficultyTargets = map[string]int{
	model.DifficultyEasy:   25,
	model.DifficultyMedium: 50,
	model.DifficultyHard:   25,
}

// Reporter writes statistic tables to a single output stream
type Reporter struct {
	w             io.Writer
	delimiter     string
	topSubdomains int
	topTrapTypes  int
}

// NewReporter creates a reporter configured from the output settings
func NewReporter(w io.Writer, cfg model.OutputConfig) *Reporter {
	delim := cfg.Delimiter
	if delim == "" {
		delim = " & "
	}
	topSub := cfg.TopSubdomain
	if topSub <= 0 {
		topSub = 10
	}
	topTrap := cfg.TopTrapTypes
	if topTrap <= 0 {
		topTrap = 6
	}
	return &Reporter{
		w:             w,
		delimiter:     delim,
		topSubdomains: topSub,
		topTrapTypes:  topTrap,
	}
}

func (r *Reporter) banner(title string) {
	fmt.Fprintf(r.w, "\n%s\n", strings.Repeat("=", bannerWidth))
	fmt.Fprintf(r.w, "%s\n", title)
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("=", bannerWidth))
}

// StageReport renders the full distribution tables for one pipeline stage
func (r *Reporter) StageReport(name string, stats *aggregate.Stats) {
	r.banner(name)

	fmt.Fprintf(r.w, "\nTotal cases: %d\n", stats.Total)

	fmt.Fprintf(r.w, "\n--- Pearl Level Distribution ---\n")
	for _, level := range model.PearlLevels {
		count := stats.PearlLevel.Get(level)
		fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", level, count, aggregate.Percent(count, stats.Total))
	}

	fmt.Fprintf(r.w, "\n--- Difficulty Distribution ---\n")
	for _, diff := range model.Difficulties {
		count := stats.Difficulty.Get(diff)
		fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", diff, count, aggregate.Percent(count, stats.Total))
	}

	fmt.Fprintf(r.w, "\n--- Difficulty by Pearl Level ---\n")
	for _, level := range model.PearlLevels {
		levelTotal := stats.PearlLevel.Get(level)
		fmt.Fprintf(r.w, "  %s:\n", level)
		cell := stats.DifficultyByLevel[level]
		for _, diff := range model.Difficulties {
			count := 0
			if cell != nil {
				count = cell.Get(diff)
			}
			fmt.Fprintf(r.w, "    %s: %d (%.1f%%)\n", diff, count, aggregate.Percent(count, levelTotal))
		}
	}

	for _, level := range model.PearlLevels {
		fmt.Fprintf(r.w, "\n--- %s Label Distribution ---\n", level)
		for _, e := range labelEntries(stats.LabelsByLevel[level]) {
			fmt.Fprintf(r.w, "  %s: %d\n", e.Key, e.Count)
		}
	}

	if stats.ScoreRange.Sum() > 0 {
		fmt.Fprintf(r.w, "\n--- Score Distribution ---\n")
		for _, bucket := range aggregate.ScoreBuckets {
			count := stats.ScoreRange.Get(bucket)
			fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", bucket, count, aggregate.Percent(count, stats.Total))
		}
	}
}

// labelEntries returns the known label vocabularies first, nonzero only,
// then any remaining observed labels in first-encountered order.
func labelEntries(c *aggregate.Counter) []aggregate.Entry {
	if c == nil {
		return nil
	}

	var out []aggregate.Entry
	known := make(map[string]bool)
	for _, label := range append(append([]string{}, model.GroundTruths...), model.L3Labels...) {
		known[label] = true
		if n := c.Get(label); n > 0 {
			out = append(out, aggregate.Entry{Key: label, Count: n})
		}
	}
	for _, e := range c.Entries() {
		if !known[e.Key] {
			out = append(out, e)
		}
	}
	return out
}

// Distributions renders the free-form field tables: top trap types
// (NO records only) and top subdomains.
func (r *Reporter) Distributions(stats *aggregate.Stats) {
	fmt.Fprintf(r.w, "\n--- Ground Truth Distribution ---\n")
	for _, e := range labelEntries(stats.GroundTruth) {
		fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", e.Key, e.Count, aggregate.Percent(e.Count, stats.Total))
	}

	fmt.Fprintf(r.w, "\n--- Trap Type (NO only, top %d) ---\n", r.topTrapTypes)
	noTotal := stats.TrapType.Sum()
	for _, e := range stats.TrapType.Top(r.topTrapTypes) {
		fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", e.Key, e.Count, aggregate.Percent(e.Count, noTotal))
	}

	fmt.Fprintf(r.w, "\n--- Subdomain (top %d) ---\n", r.topSubdomains)
	for _, e := range stats.Subdomain.Top(r.topSubdomains) {
		fmt.Fprintf(r.w, "  %s: %d (%.1f%%)\n", e.Key, e.Count, aggregate.Percent(e.Count, stats.Total))
	}
}

// SubdomainCrossTab renders ground truth within top subdomains
func (r *Reporter) SubdomainCrossTab(tab *aggregate.CrossTab) {
	fmt.Fprintf(r.w, "\n--- Ground Truth by Subdomain ---\n")
	for _, row := range tab.Rows {
		cell := tab.Cells[row]
		rowTotal := cell.Sum()
		fmt.Fprintf(r.w, "  %s (%d):", row, rowTotal)
		for _, truth := range model.GroundTruths {
			fmt.Fprintf(r.w, " %s=%d", truth, cell.Get(truth))
		}
		fmt.Fprintf(r.w, "\n")
	}
}

// AuthorBreakdown renders per-author record counts plus ground-truth,
// pearl-level, and trap-type distributions for each annotator.
func (r *Reporter) AuthorBreakdown(byAuthor map[string]*aggregate.Stats) {
	authors := make([]string, 0, len(byAuthor))
	for a := range byAuthor {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	fmt.Fprintf(r.w, "\n--- Records by Annotator ---\n")
	for _, a := range authors {
		fmt.Fprintf(r.w, "  %s: %d\n", a, byAuthor[a].Total)
	}

	fmt.Fprintf(r.w, "\n--- Ground Truth by Annotator ---\n")
	for _, a := range authors {
		stats := byAuthor[a]
		fmt.Fprintf(r.w, "  %s:", a)
		for _, truth := range model.GroundTruths {
			fmt.Fprintf(r.w, " %s=%d", truth, stats.GroundTruth.Get(truth))
		}
		fmt.Fprintf(r.w, "\n")
	}

	fmt.Fprintf(r.w, "\n--- Pearl Level by Annotator ---\n")
	for _, a := range authors {
		stats := byAuthor[a]
		fmt.Fprintf(r.w, "  %s:", a)
		for _, level := range model.PearlLevels {
			fmt.Fprintf(r.w, " %s=%d", level, stats.PearlLevel.Get(level))
		}
		fmt.Fprintf(r.w, "\n")
	}

	fmt.Fprintf(r.w, "\n--- Trap Type by Annotator (NO only, top %d) ---\n", r.topTrapTypes)
	for _, a := range authors {
		stats := byAuthor[a]
		fmt.Fprintf(r.w, "  %s:", a)
		for _, e := range stats.TrapType.Top(r.topTrapTypes) {
			fmt.Fprintf(r.w, " %s=%d", e.Key, e.Count)
		}
		fmt.Fprintf(r.w, "\n")
	}
}

// WordCounts renders scenario length summaries by label and difficulty
func (r *Reporter) WordCounts(byTruth, byDifficulty map[string]aggregate.WordStats) {
	fmt.Fprintf(r.w, "\n--- Scenario Words by Ground Truth ---\n")
	r.wordCountRows(byTruth, model.GroundTruths)

	fmt.Fprintf(r.w, "\n--- Scenario Words by Difficulty ---\n")
	r.wordCountRows(byDifficulty, model.Difficulties)
}

func (r *Reporter) wordCountRows(groups map[string]aggregate.WordStats, order []string) {
	for _, key := range order {
		ws, ok := groups[key]
		if !ok {
			continue
		}
		fmt.Fprintf(r.w, "  %s: n=%d mean=%.1f median=%.1f min=%d max=%d\n",
			key, ws.Count, ws.Mean, ws.Median, ws.Min, ws.Max)
	}
}

// LatexTables renders the pearl-level and difficulty tables across the
// three pipeline stages as delimiter-separated rows ready for the report.
func (r *Reporter) LatexTables(unval, val, final *aggregate.Stats) {
	d := r.delimiter

	r.banner("LATEX TABLE DATA")

	fmt.Fprintf(r.w, "\n--- Pearl Level Distribution ---\n")
	fmt.Fprintf(r.w, "Level%sUnval%s%%%sValid%s%%%sFinal%s%% \\\\\n", d, d, d, d, d, d)
	for _, level := range model.PearlLevels {
		u := unval.PearlLevel.Get(level)
		v := val.PearlLevel.Get(level)
		f := final.PearlLevel.Get(level)
		fmt.Fprintf(r.w, "%s%s%d%s%.1f%%%s%d%s%.1f%%%s%d%s%.1f%% \\\\\n",
			level, d, u, d, aggregate.Percent(u, unval.Total),
			d, v, d, aggregate.Percent(v, val.Total),
			d, f, d, aggregate.Percent(f, final.Total))
	}
	fmt.Fprintf(r.w, "Total%s%d%s100%%%s%d%s100%%%s%d%s100%% \\\\\n",
		d, unval.Total, d, d, val.Total, d, d, final.Total, d)

	fmt.Fprintf(r.w, "\n--- Difficulty Distribution ---\n")
	fmt.Fprintf(r.w, "Difficulty%sUnval%s%%%sValid%s%%%sFinal%sTarget \\\\\n", d, d, d, d, d, d)
	for _, diff := range model.Difficulties {
		u := unval.Difficulty.Get(diff)
		v := val.Difficulty.Get(diff)
		f := final.Difficulty.Get(diff)
		fmt.Fprintf(r.w, "%s%s%d%s%.1f%%%s%d%s%.1f%%%s%d%s%d%% \\\\\n",
			diff, d, u, d, aggregate.Percent(u, unval.Total),
			d, v, d, aggregate.Percent(v, val.Total),
			d, f, d, difficultyTargets[diff])
	}
	fmt.Fprintf(r.w, "Total%s%d%s100%%%s%d%s100%%%s%d%s100%% \\\\\n",
		d, unval.Total, d, d, val.Total, d, d, final.Total, d)
}

// Verification checks that the partitioned totals of the unvalidated stage
// sum to the whole and reports a pass/fail signal. The check is advisory:
// the underlying data may legitimately contain unexpected values, so a
// failure never aborts the run.
func (r *Reporter) Verification(unval *aggregate.Stats) bool {
	r.banner("VERIFICATION")

	pearlSum := unval.PearlLevel.Sum()
	diffSum := unval.Difficulty.Sum()

	fmt.Fprintf(r.w, "Unvalidated total: %d\n", unval.Total)
	fmt.Fprintf(r.w, "Sum of pearl level counts: %d\n", pearlSum)
	fmt.Fprintf(r.w, "Sum of difficulty counts: %d\n", diffSum)

	consistent := unval.Total == pearlSum && unval.Total == diffSum
	if consistent {
		fmt.Fprintf(r.w, "PASS: all totals are consistent\n")
	} else {
		fmt.Fprintf(r.w, "WARNING: totals are inconsistent\n")
	}
	return consistent
}

// DataQuality surfaces trap types found on non-NO records. These are
// undefined in the annotation scheme, so they are reported as a warning
// rather than normalized away or silently dropped.
func (r *Reporter) DataQuality(stats *aggregate.Stats) {
	if stats.TrapOnNonNo.Sum() == 0 {
		return
	}

	fmt.Fprintf(r.w, "\n--- Data Quality Warnings ---\n")
	fmt.Fprintf(r.w, "  %d record(s) with groundTruth YES/AMBIGUOUS carry a trap type:\n", stats.TrapOnNonNo.Sum())
	for _, e := range stats.TrapOnNonNo.Entries() {
		fmt.Fprintf(r.w, "    %s: %d\n", e.Key, e.Count)
	}
}
