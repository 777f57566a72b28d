// Package aggregate computes counts, percentages, and cross-tabulations
// over annotation record sets. Every computation returns a result value
// owned by the caller; no counter survives between runs.
package aggregate

import (
	"sort"
	"strings"

	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/normalize"
)

// Score bucket labels, in evaluation priority order: the exact-10 check
// runs before >= 9, so each score falls into exactly one bucket.
const (
	BucketPerfect = "10.0"
	BucketNine    = "9.0-9.9"
	BucketEight   = "8.0-8.9"
	BucketSix     = "6.0-7.9"
	BucketLow     = "<6.0"
)

// ScoreBuckets lists the bucket labels in presentation order
var ScoreBuckets = []string{BucketPerfect, BucketNine, BucketEight, BucketSix, BucketLow}

// ScoreBucket places a score into its half-open range
func ScoreBucket(score float64) string {
	switch {
	case score == 10.0:
		return BucketPerfect
	case score >= 9.0:
		return BucketNine
	case score >= 8.0:
		return BucketEight
	case score >= 6.0:
		return BucketSix
	default:
		return BucketLow
	}
}

// Stats holds every distribution computed over one record set. Trap-type
// counts cover NO records only, since trap type is undefined otherwise;
// trap types found on YES/AMBIGUOUS records are collected separately as a
// data-quality signal rather than silently dropped.
type Stats struct {
	Total int

	GroundTruth *Counter
	PearlLevel  *Counter
	Difficulty  *Counter
	TrapType    *Counter // NO records only
	TrapPrefix  *Counter // NO records only; prefix before ':', else first two runes
	Subdomain   *Counter
	ByAuthor    *Counter
	ScoreRange  *Counter

	DifficultyByLevel map[string]*Counter // pearl level -> difficulty counts
	LabelsByLevel     map[string]*Counter // pearl level -> ground-truth counts

	TrapOnNonNo *Counter // data-quality: trap types carried by non-NO records
}

// Compute calculates all statistics for a set of records. Field values are
// normalized on the way in, so raw and pre-normalized record sets aggregate
// identically.
func Compute(records []model.AnnotationRecord) *Stats {
	stats := &Stats{
		Total:             len(records),
		GroundTruth:       NewCounter(),
		PearlLevel:        NewCounter(),
		Difficulty:        NewCounter(),
		TrapType:          NewCounter(),
		TrapPrefix:        NewCounter(),
		Subdomain:         NewCounter(),
		ByAuthor:          NewCounter(),
		ScoreRange:        NewCounter(),
		DifficultyByLevel: make(map[string]*Counter),
		LabelsByLevel:     make(map[string]*Counter),
		TrapOnNonNo:       NewCounter(),
	}

	for _, rec := range records {
		truth := orUnknown(normalize.String(rec.GroundTruth))
		level := orUnknown(normalize.String(rec.PearlLevel))
		diff := normalize.Difficulty(rec.Difficulty)
		trap := normalize.String(rec.TrapType)

		stats.GroundTruth.Add(truth)
		stats.PearlLevel.Add(level)
		stats.Difficulty.Add(diff)
		stats.Subdomain.Add(normalize.Subdomain(rec.Subdomain))

		levelCounter(stats.DifficultyByLevel, level).Add(diff)
		levelCounter(stats.LabelsByLevel, level).Add(truth)

		if trap != "" {
			if truth == model.GroundTruthNo {
				stats.TrapType.Add(trap)
				stats.TrapPrefix.Add(trapPrefix(trap))
			} else {
				stats.TrapOnNonNo.Add(trap)
			}
		}

		if rec.Author != "" {
			stats.ByAuthor.Add(rec.Author)
		}

		if rec.FinalScore != nil {
			stats.ScoreRange.Add(ScoreBucket(*rec.FinalScore))
		}
	}

	return stats
}

// ComputeByAuthor computes per-author statistics over an author grouping
func ComputeByAuthor(byAuthor map[string][]model.AnnotationRecord) map[string]*Stats {
	out := make(map[string]*Stats, len(byAuthor))
	for author, records := range byAuthor {
		out[author] = Compute(records)
	}
	return out
}

// FilterValidated returns the validated subset: records scored at or above
// the validation threshold. Unscored records are never validated.
func FilterValidated(records []model.AnnotationRecord) []model.AnnotationRecord {
	var out []model.AnnotationRecord
	for _, rec := range records {
		if rec.IsValidated() {
			out = append(out, rec)
		}
	}
	return out
}

// CrossTab is a two-key tabulation: one row counter per row key, with rows
// listed in presentation order.
type CrossTab struct {
	Rows  []string
	Cells map[string]*Counter
}

// GroundTruthBySubdomain cross-tabulates ground truth within the topN most
// frequent subdomains; all other subdomains fold into a single OTHER bucket
// to bound output size.
func GroundTruthBySubdomain(records []model.AnnotationRecord, topN int) *CrossTab {
	subCounts := NewCounter()
	for _, rec := range records {
		subCounts.Add(normalize.Subdomain(rec.Subdomain))
	}

	top := make(map[string]bool)
	var rows []string
	for _, e := range subCounts.Top(topN) {
		top[e.Key] = true
		rows = append(rows, e.Key)
	}

	tab := &CrossTab{Cells: make(map[string]*Counter)}
	hasOther := false
	for _, rec := range records {
		sub := normalize.Subdomain(rec.Subdomain)
		if !top[sub] {
			sub = "OTHER"
			hasOther = true
		}
		cell, ok := tab.Cells[sub]
		if !ok {
			cell = NewCounter()
			tab.Cells[sub] = cell
		}
		cell.Add(orUnknown(normalize.String(rec.GroundTruth)))
	}

	tab.Rows = rows
	if hasOther {
		tab.Rows = append(tab.Rows, "OTHER")
	}
	return tab
}

// WordStats summarizes scenario word counts for one group
type WordStats struct {
	Count  int
	Mean   float64
	Median float64
	Min    int
	Max    int
}

// ScenarioWordsByGroundTruth summarizes scenario lengths grouped by label
func ScenarioWordsByGroundTruth(records []model.AnnotationRecord) map[string]WordStats {
	return scenarioWords(records, func(r model.AnnotationRecord) string {
		return orUnknown(normalize.String(r.GroundTruth))
	})
}

// ScenarioWordsByDifficulty summarizes scenario lengths grouped by difficulty
func ScenarioWordsByDifficulty(records []model.AnnotationRecord) map[string]WordStats {
	return scenarioWords(records, func(r model.AnnotationRecord) string {
		return normalize.Difficulty(r.Difficulty)
	})
}

func scenarioWords(records []model.AnnotationRecord, key func(model.AnnotationRecord) string) map[string]WordStats {
	groups := make(map[string][]int)
	for _, rec := range records {
		groups[key(rec)] = append(groups[key(rec)], len(strings.Fields(rec.Scenario)))
	}

	out := make(map[string]WordStats, len(groups))
	for k, counts := range groups {
		out[k] = summarize(counts)
	}
	return out
}

func summarize(counts []int) WordStats {
	ws := WordStats{Count: len(counts)}
	if len(counts) == 0 {
		return ws
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	ws.Mean = float64(sum) / float64(len(sorted))
	ws.Min = sorted[0]
	ws.Max = sorted[len(sorted)-1]

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		ws.Median = float64(sorted[mid])
	} else {
		ws.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return ws
}

// trapPrefix reduces a free-form trap type to its category prefix: the part
// before ':' when present, otherwise the first two runes.
func trapPrefix(trap string) string {
	if i := strings.Index(trap, ":"); i >= 0 {
		return trap[:i]
	}
	runes := []rune(trap)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

func levelCounter(m map[string]*Counter, level string) *Counter {
	c, ok := m[level]
	if !ok {
		c = NewCounter()
		m[level] = c
	}
	return c
}

func orUnknown(s string) string {
	if s == "" {
		return model.Unknown
	}
	return s
}
