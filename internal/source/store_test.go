package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	schema := `CREATE TABLE Question (
		id TEXT PRIMARY KEY,
		pearlLevel TEXT,
		groundTruth TEXT,
		difficulty TEXT,
		trapType TEXT,
		finalScore REAL,
		validationStatus TEXT,
		isLLMGenerated BOOLEAN,
		initialAuthor TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	rows := []string{
		`INSERT INTO Question VALUES ('q2', 'L2', 'NO', 'Hard', 'reverse_causation', 9.5, 'APPROVED', 0, 'deveen@stanford.edu')`,
		`INSERT INTO Question VALUES ('q1', 'L1', 'YES', 'Easy', NULL, 8.0, 'APPROVED', 1, 'lgren007@stanford.edu')`,
		`INSERT INTO Question VALUES ('q3', NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL)`,
	}
	for _, stmt := range rows {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return path
}

func TestReadQuestions(t *testing.T) {
	store, err := OpenStore(newTestDB(t))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	records, err := store.ReadQuestions(context.Background())
	if err != nil {
		t.Fatalf("ReadQuestions: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Deterministic ordering by id regardless of insertion order
	if records[0].ID != "q1" || records[1].ID != "q2" || records[2].ID != "q3" {
		t.Errorf("unexpected order: %s, %s, %s", records[0].ID, records[1].ID, records[2].ID)
	}

	q1 := records[0]
	if q1.PearlLevel != "L1" || q1.GroundTruth != "YES" {
		t.Errorf("q1 = %+v", q1)
	}
	if q1.Difficulty != "EASY" {
		t.Errorf("q1 difficulty = %q, want normalized EASY", q1.Difficulty)
	}
	if q1.FinalScore == nil || *q1.FinalScore != 8.0 {
		t.Errorf("q1 finalScore = %v", q1.FinalScore)
	}
	if !q1.IsLLMGenerated {
		t.Error("q1 should be LLM generated")
	}
	if q1.InitialAuthor != "lgren007@stanford.edu" {
		t.Errorf("q1 initialAuthor = %q", q1.InitialAuthor)
	}
}

func TestReadQuestions_NullColumnsBecomeAbsent(t *testing.T) {
	store, err := OpenStore(newTestDB(t))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	records, err := store.ReadQuestions(context.Background())
	if err != nil {
		t.Fatalf("ReadQuestions: %v", err)
	}

	q3 := records[2]
	if q3.PearlLevel != "" || q3.GroundTruth != "" || q3.TrapType != "" {
		t.Errorf("NULL columns should be absent: %+v", q3)
	}
	if q3.Difficulty != "UNKNOWN" {
		t.Errorf("NULL difficulty = %q, want UNKNOWN", q3.Difficulty)
	}
	if q3.FinalScore != nil {
		t.Errorf("NULL finalScore = %v, want nil", q3.FinalScore)
	}
	if q3.IsLLMGenerated {
		t.Error("NULL isLLMGenerated should read false")
	}
}

func TestOpenStore_MissingFile(t *testing.T) {
	if _, err := OpenStore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected error opening missing database")
	}
}
