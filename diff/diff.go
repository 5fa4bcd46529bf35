// Package diff compares two scan reports of the same project over time,
// classifying each asset as kept, added, removed, or missing.
package diff

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/tsawler/aepx/model"
)

// Asset statuses in a comparison.
const (
	// StatusPresent marks an asset found in both reports.
	StatusPresent = "present"
	// StatusNew marks an asset only the current report has.
	StatusNew = "new"
	// StatusRemoved marks an asset only the previous report has.
	StatusRemoved = "removed"
	// StatusMissing marks a reference the current report could not resolve.
	StatusMissing = "missing"
)

// Entry describes the fate of one asset between two reports.
type Entry struct {
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	Extension  string `json:"extension"`
	Size       int64  `json:"size"`
	Status     string `json:"status"`
	Present    bool   `json:"present"`
	InPrevious bool   `json:"in_previous"`
}

// Result is the complete comparison between two scan reports.
// Entries appear in a stable order: the current report's assets first,
// then removed assets, then the current report's missing references.
type Result struct {
	PreviousProject string  `json:"previous_project"`
	CurrentProject  string  `json:"current_project"`
	Generated       string  `json:"generated"`
	Assets          []Entry `json:"assets"`
	TotalAssets     int     `json:"total_assets"`
	PresentAssets   int     `json:"present_assets"`
	MissingAssets   int     `json:"missing_assets"`
	NewAssets       int     `json:"new_assets"`
	RemovedAssets   int     `json:"removed_assets"`
}

// Compare builds the comparison between a previous and a current scan of
// one logical project. Assets are identified by filename, so a file that
// moved between directories but kept its name counts as present.
func Compare(previous, current *model.Report) *Result {
	res := &Result{
		PreviousProject: previous.ProjectFile,
		CurrentProject:  current.ProjectFile,
		Generated:       time.Now().UTC().Format(time.RFC3339),
		Assets:          []Entry{},
	}

	previousNames := make(map[string]bool)
	for _, a := range previous.Assets {
		previousNames[a.Filename] = true
	}

	currentNames := make(map[string]bool)
	for _, a := range current.Assets {
		currentNames[a.Filename] = true
		entry := Entry{
			Filename:   a.Filename,
			Path:       a.Path,
			Extension:  a.Extension,
			Size:       a.Size,
			Present:    true,
			InPrevious: previousNames[a.Filename],
		}
		if entry.InPrevious {
			entry.Status = StatusPresent
		} else {
			entry.Status = StatusNew
			res.NewAssets++
		}
		res.Assets = append(res.Assets, entry)
		res.PresentAssets++
	}

	for _, a := range previous.Assets {
		if currentNames[a.Filename] {
			continue
		}
		res.Assets = append(res.Assets, Entry{
			Filename:   a.Filename,
			Path:       a.Path,
			Extension:  a.Extension,
			Size:       a.Size,
			Status:     StatusRemoved,
			Present:    false,
			InPrevious: true,
		})
		res.RemovedAssets++
	}

	for _, m := range current.MissingAssets {
		name := filepath.Base(m)
		res.Assets = append(res.Assets, Entry{
			Filename:   name,
			Path:       m,
			Extension:  model.Ext(m),
			Status:     StatusMissing,
			Present:    false,
			InPrevious: previousNames[name],
		})
		res.MissingAssets++
	}

	res.TotalAssets = len(res.Assets)
	return res
}

// HasChanges reports whether anything differs between the two scans.
func (r *Result) HasChanges() bool {
	return r.NewAssets > 0 || r.RemovedAssets > 0 || r.MissingAssets > 0
}

// Encode writes the result to w as pretty-printed JSON with two-space
// indentation, followed by a newline.
func (r *Result) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding diff: %w", err)
	}
	return nil
}
