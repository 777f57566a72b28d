package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	content := `{"cases": [
		{"id": "c1", "label": "NO", "pearl_level": "L2", "final_score": 9.0, "trap": {"type": "confounder"}},
		{"id": "c2", "groundTruth": "YES", "pearlLevel": "L1", "finalScore": 10.0}
	]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := LoadExport(path)
	if err != nil {
		t.Fatalf("LoadExport: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].GroundTruth != "NO" || records[0].PearlLevel != "L2" || records[0].TrapType != "confounder" {
		t.Errorf("export keys not resolved: %+v", records[0])
	}
	if records[1].GroundTruth != "YES" || records[1].PearlLevel != "L1" {
		t.Errorf("store keys not resolved: %+v", records[1])
	}
}

func TestLoadExport_MissingCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(`{"questions": []}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadExport(path); err == nil {
		t.Fatal("expected error for object without cases")
	}
}

func TestLoadExport_Unparsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(`not json`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadExport(path); err == nil {
		t.Fatal("expected error for unparsable file")
	}
}
