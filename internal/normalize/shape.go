package normalize

import "github.com/groupg/causalstats/internal/model"

// Each concrete source shape gets its own adapter producing the same
// canonical record. The shape is decided once, by the loader that read the
// source, never per field access.

// FromAnnotation converts a raw per-author annotation object. These files
// nest classification fields under an "annotations" sub-object, though some
// exports flatten them; the flat key wins when both are present.
func FromAnnotation(raw map[string]any) model.AnnotationRecord {
	rec := model.AnnotationRecord{
		ID:          String(GetString(raw, "", "id")),
		Scenario:    GetString(raw, "", "scenario"),
		GroundTruth: String(GetString(raw, "", "groundTruth")),
		PearlLevel:  firstString(raw, [][]string{{"pearlLevel"}, {"annotations", "pearlLevel"}}),
		TrapType:    firstString(raw, [][]string{{"trapType"}, {"annotations", "trapType"}}),
		Subdomain:   firstString(raw, [][]string{{"subdomain"}, {"annotations", "subdomain"}}),
	}
	rec.Difficulty = Difficulty(firstString(raw, [][]string{{"difficulty"}, {"annotations", "difficulty"}}))
	rec.Subdomain = Subdomain(rec.Subdomain)
	return rec
}

// FromExportCase converts a case object from the exported dataset. The
// export uses alternate key names for several store concepts; resolution
// order is explicit canonical key, then alternate key, then nested fallback.
func FromExportCase(raw map[string]any) model.AnnotationRecord {
	rec := model.AnnotationRecord{
		ID:          String(GetString(raw, "", "id")),
		Scenario:    GetString(raw, "", "scenario"),
		GroundTruth: String(firstString(raw, [][]string{{"groundTruth"}, {"label"}})),
		PearlLevel:  firstString(raw, [][]string{{"pearlLevel"}, {"pearl_level"}}),
		TrapType:    firstString(raw, [][]string{{"trapType"}, {"trap", "type"}}),
		Subdomain:   Subdomain(GetString(raw, "", "subdomain")),
	}
	rec.Difficulty = Difficulty(GetString(raw, "", "difficulty"))
	if f, ok := GetFloat(raw, "finalScore"); ok {
		rec.FinalScore = &f
	} else if f, ok := GetFloat(raw, "final_score"); ok {
		rec.FinalScore = &f
	}
	return rec
}

// firstString returns the first non-absent string found along the candidate
// paths, in preference order.
func firstString(raw map[string]any, paths [][]string) string {
	for _, p := range paths {
		if s := String(GetString(raw, "", p...)); s != "" {
			return s
		}
	}
	return ""
}
