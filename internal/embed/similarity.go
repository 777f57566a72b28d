package embed

import "math"

// SimilarityStats summarizes pairwise cosine similarity over a vector set.
// HighPairs counts pairs at or above the near-duplicate threshold.
type SimilarityStats struct {
	Pairs     int
	Mean      float64
	Min       float64
	Max       float64
	HighPairs int
	Threshold float64
}

// Similarity computes pairwise cosine similarity statistics. Fewer than two
// vectors yield a zero-pair result.
func Similarity(vectors [][]float32, highThreshold float64) SimilarityStats {
	stats := SimilarityStats{Threshold: highThreshold}
	if len(vectors) < 2 {
		return stats
	}

	sum := 0.0
	stats.Min = 1
	stats.Max = -1

	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			sim := Cosine(vectors[i], vectors[j])
			stats.Pairs++
			sum += sim
			if sim < stats.Min {
				stats.Min = sim
			}
			if sim > stats.Max {
				stats.Max = sim
			}
			if sim >= highThreshold {
				stats.HighPairs++
			}
		}
	}

	stats.Mean = sum / float64(stats.Pairs)
	return stats
}

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
