package model

// AnnotationRecord is the canonical unit of analysis: one causal-reasoning
// question as produced by an annotator. Every field is optional; absence is
// a valid state and is represented by the zero value (or nil for FinalScore).
type AnnotationRecord struct {
	ID          string `json:"id,omitempty"`          // Opaque identifier, unique within a source
	Scenario    string `json:"scenario,omitempty"`    // Free text describing the causal scenario
	GroundTruth string `json:"groundTruth,omitempty"` // YES, NO, AMBIGUOUS (L3 uses VALID/INVALID/CONDITIONAL)
	PearlLevel  string `json:"pearlLevel,omitempty"`  // L1, L2, L3
	Difficulty  string `json:"difficulty,omitempty"`  // EASY, MEDIUM, HARD after normalization, else UNKNOWN
	TrapType    string `json:"trapType,omitempty"`    // Distractor pattern; meaningful only when GroundTruth == NO
	Subdomain   string `json:"subdomain,omitempty"`   // Topical category, whitespace/casing normalized

	FinalScore *float64 `json:"finalScore,omitempty"` // Quality score in [0, 10], nil when unscored

	// Provenance metadata, present only for records read from the store
	ValidationStatus string `json:"validationStatus,omitempty"`
	IsLLMGenerated   bool   `json:"isLLMGenerated,omitempty"`
	InitialAuthor    string `json:"initialAuthor,omitempty"`

	Author string `json:"author,omitempty"` // Resolved display name of the contributing annotator
}

// Ground truth labels
const (
	GroundTruthYes       = "YES"
	GroundTruthNo        = "NO"
	GroundTruthAmbiguous = "AMBIGUOUS"
)

// Pearl levels classify the causal-reasoning tier of a question
const (
	PearlL1 = "L1" // Association
	PearlL2 = "L2" // Intervention
	PearlL3 = "L3" // Counterfactual
)

// Normalized difficulty labels
const (
	DifficultyEasy    = "EASY"
	DifficultyMedium  = "MEDIUM"
	DifficultyHard    = "HARD"
	DifficultyUnknown = "UNKNOWN"
)

// Unknown is the canonical absent marker for normalized free-form fields
const Unknown = "UNKNOWN"

// ValidatedScoreThreshold separates the validated subset from the
// unvalidated pool: a record is validated when FinalScore >= 8.
const ValidatedScoreThreshold = 8.0

// Stage identifies which pipeline view a record set represents
type Stage string

const (
	StageUnvalidated Stage = "unvalidated" // All rows in the store
	StageValidated   Stage = "validated"   // Store rows with finalScore >= 8
	StageFinal       Stage = "final"       // Rows present in the exported dataset
)

// IsValidated reports whether the record belongs to the validated subset
func (r *AnnotationRecord) IsValidated() bool {
	return r.FinalScore != nil && *r.FinalScore >= ValidatedScoreThreshold
}

// PearlLevels lists the known pearl levels in presentation order
var PearlLevels = []string{PearlL1, PearlL2, PearlL3}

// Difficulties lists the known difficulty labels in presentation order
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// GroundTruths lists the primary ground-truth labels in presentation order
var GroundTruths = []string{GroundTruthNo, GroundTruthYes, GroundTruthAmbiguous}

// L3Labels lists the counterfactual-tier label vocabulary
var L3Labels = []string{"VALID", "INVALID", "CONDITIONAL"}
