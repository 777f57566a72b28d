package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/normalize"
)

// Store provides read-only access to the relational annotation store
// (the unvalidated pool). The handle is held only for the duration of the
// read; callers close it before aggregation begins.
type Store struct {
	db *sql.DB
}

// OpenStore opens the SQLite database at the given path for reading
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect store %s: %w", path, err)
	}

	// Single reader is all this batch pipeline ever needs
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ReadQuestions returns every row of the Question table as canonical
// records, ordered by id for deterministic output across runs.
func (s *Store) ReadQuestions(ctx context.Context) ([]model.AnnotationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pearlLevel, groundTruth, difficulty, trapType, finalScore,
		       validationStatus, isLLMGenerated, initialAuthor
		FROM Question
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var records []model.AnnotationRecord
	for rows.Next() {
		rec, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	if records == nil {
		records = []model.AnnotationRecord{}
	}
	return records, nil
}

// scanQuestion is the store-shape adapter: flat nullable columns to the
// canonical record. Every column may be NULL; NULLs become absent fields,
// never errors.
func scanQuestion(rows *sql.Rows) (model.AnnotationRecord, error) {
	var (
		id, pearl, truth, diff      sql.NullString
		trap, status, initialAuthor sql.NullString
		finalScore                  sql.NullFloat64
		llmGenerated                sql.NullBool
	)

	if err := rows.Scan(&id, &pearl, &truth, &diff, &trap, &finalScore,
		&status, &llmGenerated, &initialAuthor); err != nil {
		return model.AnnotationRecord{}, fmt.Errorf("scan question: %w", err)
	}

	rec := model.AnnotationRecord{
		ID:               normalize.String(id.String),
		PearlLevel:       normalize.String(pearl.String),
		GroundTruth:      normalize.String(truth.String),
		Difficulty:       normalize.Difficulty(diff.String),
		TrapType:         normalize.String(trap.String),
		ValidationStatus: normalize.String(status.String),
		IsLLMGenerated:   llmGenerated.Valid && llmGenerated.Bool,
		InitialAuthor:    normalize.String(initialAuthor.String),
	}
	if finalScore.Valid {
		score := finalScore.Float64
		rec.FinalScore = &score
	}
	return rec, nil
}
