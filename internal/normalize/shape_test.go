package normalize

import "testing"

func TestFromAnnotation_NestedFields(t *testing.T) {
	raw := map[string]any{
		"id":          "q-001",
		"scenario":    "Interest rates rose and housing prices fell.",
		"groundTruth": "NO",
		"annotations": map[string]any{
			"pearlLevel": "L2",
			"difficulty": "med",
			"trapType":   "reverse_causation",
			"subdomain":  "housing  MARKET",
		},
	}

	rec := FromAnnotation(raw)

	if rec.ID != "q-001" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.GroundTruth != "NO" {
		t.Errorf("GroundTruth = %q", rec.GroundTruth)
	}
	if rec.PearlLevel != "L2" {
		t.Errorf("PearlLevel = %q", rec.PearlLevel)
	}
	if rec.Difficulty != "MEDIUM" {
		t.Errorf("Difficulty = %q", rec.Difficulty)
	}
	if rec.TrapType != "reverse_causation" {
		t.Errorf("TrapType = %q", rec.TrapType)
	}
	if rec.Subdomain != "Housing Market" {
		t.Errorf("Subdomain = %q", rec.Subdomain)
	}
}

func TestFromAnnotation_FlatKeyWins(t *testing.T) {
	raw := map[string]any{
		"pearlLevel": "L1",
		"annotations": map[string]any{
			"pearlLevel": "L3",
		},
	}

	if rec := FromAnnotation(raw); rec.PearlLevel != "L1" {
		t.Errorf("expected flat key to win, got %q", rec.PearlLevel)
	}
}

func TestFromAnnotation_MissingFieldsNeverFail(t *testing.T) {
	rec := FromAnnotation(map[string]any{})

	if rec.Difficulty != "UNKNOWN" {
		t.Errorf("Difficulty = %q, want UNKNOWN", rec.Difficulty)
	}
	if rec.Subdomain != "UNKNOWN" {
		t.Errorf("Subdomain = %q, want UNKNOWN", rec.Subdomain)
	}
	if rec.GroundTruth != "" || rec.PearlLevel != "" || rec.TrapType != "" {
		t.Errorf("expected absent enum fields to stay empty: %+v", rec)
	}
	if rec.FinalScore != nil {
		t.Error("expected nil FinalScore")
	}
}

func TestFromExportCase_AlternateKeys(t *testing.T) {
	raw := map[string]any{
		"id":          "c-042",
		"label":       "NO",
		"pearl_level": "L2",
		"final_score": 9.5,
		"difficulty":  "Hard",
		"trap": map[string]any{
			"type": "confounder",
		},
	}

	rec := FromExportCase(raw)

	if rec.GroundTruth != "NO" {
		t.Errorf("GroundTruth = %q", rec.GroundTruth)
	}
	if rec.PearlLevel != "L2" {
		t.Errorf("PearlLevel = %q", rec.PearlLevel)
	}
	if rec.TrapType != "confounder" {
		t.Errorf("TrapType = %q", rec.TrapType)
	}
	if rec.Difficulty != "HARD" {
		t.Errorf("Difficulty = %q", rec.Difficulty)
	}
	if rec.FinalScore == nil || *rec.FinalScore != 9.5 {
		t.Errorf("FinalScore = %v", rec.FinalScore)
	}
}

func TestFromExportCase_CanonicalKeysPreferred(t *testing.T) {
	raw := map[string]any{
		"groundTruth": "YES",
		"label":       "NO",
		"pearlLevel":  "L1",
		"pearl_level": "L3",
		"trapType":    "flat",
		"trap":        map[string]any{"type": "nested"},
		"finalScore":  10.0,
		"final_score": 5.0,
	}

	rec := FromExportCase(raw)

	if rec.GroundTruth != "YES" {
		t.Errorf("GroundTruth = %q, want canonical key", rec.GroundTruth)
	}
	if rec.PearlLevel != "L1" {
		t.Errorf("PearlLevel = %q, want canonical key", rec.PearlLevel)
	}
	if rec.TrapType != "flat" {
		t.Errorf("TrapType = %q, want flat key", rec.TrapType)
	}
	if rec.FinalScore == nil || *rec.FinalScore != 10.0 {
		t.Errorf("FinalScore = %v, want canonical key", rec.FinalScore)
	}
}
