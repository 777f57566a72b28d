// Package source discovers and loads annotation records from the three
// concrete sources: per-author JSON files, the relational store, and the
// exported dataset. Each loader decides its record shape once and hands
// raw objects to the matching normalize adapter.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/normalize"
)

// AuthorTable maps a lookup key to an annotator display name
type AuthorTable map[string]string

// DefaultAuthorFiles matches known annotator substrings against file names
var DefaultAuthorFiles = AuthorTable{
	"deveen":      "Deveen",
	"theodore-wu": "Theodore",
	"tony":        "Tony",
	"juli":        "Juli",
}

// DefaultAuthorEmails resolves the per-record author key used by the
// combined file to a display name
var DefaultAuthorEmails = AuthorTable{
	"deveen@stanford.edu":   "Deveen",
	"wutheodo@stanford.edu": "Theodore",
	"lgren007@stanford.edu": "Tony",
	"julih@stanford.edu":    "Juli",
}

// DirResult is the deduplicated output of loading an annotation directory
type DirResult struct {
	All      []model.AnnotationRecord            // Every record, in file order
	ByAuthor map[string][]model.AnnotationRecord // Records grouped by resolved author
}

// DirLoader loads per-author annotation files from a directory.
// Files whose name contains "combined" are skipped during the primary pass
// so a record appearing in both a per-author file and the combined export is
// never counted twice; the combined file is used only as a fallback when the
// primary pass yields nothing.
type DirLoader struct {
	authorFiles  AuthorTable
	authorEmails AuthorTable
}

// NewDirLoader creates a directory loader with the default author tables
func NewDirLoader() *DirLoader {
	return &DirLoader{
		authorFiles:  DefaultAuthorFiles,
		authorEmails: DefaultAuthorEmails,
	}
}

// Load reads every annotation file under dir and returns the deduplicated
// record set plus the per-author grouping. It fails only on structurally
// invalid input; records missing optional fields load normally.
func (l *DirLoader) Load(dir string) (*DirResult, error) {
	paths, err := doublestar.FilepathGlob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	sort.Strings(paths)

	result := &DirResult{
		ByAuthor: make(map[string][]model.AnnotationRecord),
	}

	for _, path := range paths {
		name := strings.ToLower(filepath.Base(path))
		if strings.Contains(name, "combined") {
			continue
		}

		records, err := readAnnotationFile(path)
		if err != nil {
			return nil, err
		}

		author := l.resolveFileAuthor(filepath.Base(path))
		for i := range records {
			records[i].Author = author
		}

		result.All = append(result.All, records...)
		result.ByAuthor[author] = append(result.ByAuthor[author], records...)
	}

	if len(result.All) == 0 {
		if err := l.loadCombined(dir, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// resolveFileAuthor matches the known author substrings against the file
// name, case-insensitively. Files matching no known author are attributed
// to the file name itself rather than dropped.
func (l *DirLoader) resolveFileAuthor(fileName string) string {
	lower := strings.ToLower(fileName)
	keys := make([]string, 0, len(l.authorFiles))
	for k := range l.authorFiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(lower, k) {
			return l.authorFiles[k]
		}
	}
	return fileName
}

// loadCombined is the fallback pass: parse the combined export and resolve
// author attribution per record via its embedded author key. Unknown keys
// pass through as the raw identifier.
func (l *DirLoader) loadCombined(dir string, result *DirResult) error {
	paths, err := doublestar.FilepathGlob(filepath.Join(dir, "combined*.json"))
	if err != nil {
		return fmt.Errorf("enumerate %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)

	raws, err := readRawObjects(paths[0])
	if err != nil {
		return err
	}

	for _, raw := range raws {
		rec := normalize.FromAnnotation(raw)
		key := normalize.String(normalize.GetString(raw, "", "author"))
		author := key
		if name, ok := l.authorEmails[key]; ok {
			author = name
		}
		if author == "" {
			author = "Unknown"
		}
		rec.Author = author
		result.All = append(result.All, rec)
		result.ByAuthor[author] = append(result.ByAuthor[author], rec)
	}

	return nil
}

// readAnnotationFile parses one per-author file into canonical records
func readAnnotationFile(path string) ([]model.AnnotationRecord, error) {
	raws, err := readRawObjects(path)
	if err != nil {
		return nil, err
	}

	records := make([]model.AnnotationRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalize.FromAnnotation(raw))
	}
	return records, nil
}

// readRawObjects accepts either a bare top-level array of record objects or
// an object exposing a "questions" array. Anything else is a structural
// parse failure, which is fatal.
func readRawObjects(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var items []any
	switch v := top.(type) {
	case []any:
		items = v
	case map[string]any:
		wrapped, ok := v["questions"].([]any)
		if !ok {
			return nil, fmt.Errorf("parse %s: expected array or object with questions", path)
		}
		items = wrapped
	default:
		return nil, fmt.Errorf("parse %s: expected array or object with questions", path)
	}

	raws := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse %s: record %d is not an object", path, i)
		}
		raws = append(raws, obj)
	}
	return raws, nil
}
