package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/normalize"
)

// LoadExport reads the final exported dataset: a JSON object with a "cases"
// array. Cases may use either the store's key names or the export-specific
// alternates; the export-shape adapter resolves both.
func LoadExport(path string) ([]model.AnnotationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var top struct {
		Cases []map[string]any `json:"cases"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if top.Cases == nil {
		return nil, fmt.Errorf("parse %s: expected object with cases", path)
	}

	records := make([]model.AnnotationRecord, 0, len(top.Cases))
	for _, raw := range top.Cases {
		records = append(records, normalize.FromExportCase(raw))
	}
	return records, nil
}
