package model

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Asset describes a single referenced file that exists on disk.
type Asset struct {
	// Path is the absolute, lexically normalized path of the file.
	Path string `json:"path"`
	// RelativePath is the path relative to the project file's directory.
	RelativePath string `json:"relative_path"`
	// Filename is the final path segment.
	Filename string `json:"filename"`
	// Extension is the filename suffix including the leading dot,
	// or "" when the name has no extension.
	Extension string `json:"extension"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// Report is the result of scanning one project file. Every referenced
// path ends up in exactly one of Assets or MissingAssets.
type Report struct {
	ProjectFile   string   `json:"project_file"`
	Assets        []Asset  `json:"assets"`
	MissingAssets []string `json:"missing_assets"`
	TotalSize     int64    `json:"total_size"`
}

// NewReport creates an empty report for the given project file.
// Assets and MissingAssets are initialized non-nil so an empty report
// marshals with empty arrays rather than nulls.
func NewReport(projectFile string) *Report {
	return &Report{
		ProjectFile:   projectFile,
		Assets:        []Asset{},
		MissingAssets: []string{},
	}
}

// AddAsset appends an asset and adds its size to the running total.
func (r *Report) AddAsset(a Asset) {
	r.Assets = append(r.Assets, a)
	r.TotalSize += a.Size
}

// AddMissing records a referenced path that does not resolve to a regular file.
func (r *Report) AddMissing(path string) {
	r.MissingAssets = append(r.MissingAssets, path)
}

// HasMissing reports whether any referenced file failed to resolve.
func (r *Report) HasMissing() bool {
	return len(r.MissingAssets) > 0
}

// AssetCount returns the number of resolved assets.
func (r *Report) AssetCount() int {
	return len(r.Assets)
}

// Sort imposes the canonical output order: assets ascending by absolute
// path, missing paths ascending lexicographically.
func (r *Report) Sort() {
	sort.Slice(r.Assets, func(i, j int) bool {
		return r.Assets[i].Path < r.Assets[j].Path
	})
	sort.Strings(r.MissingAssets)
}

// Encode writes the report to w as pretty-printed JSON with two-space
// indentation, followed by a newline.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Ext returns the extension of the final path segment the way Asset.Extension
// records it: including the leading dot, "" when there is none. Leading dots
// are part of the name, so ".hidden" has no extension and ".config.json"
// has ".json".
func Ext(path string) string {
	base := filepath.Base(path)
	i := 0
	for i < len(base) && base[i] == '.' {
		i++
	}
	idx := strings.LastIndex(base[i:], ".")
	if idx < 0 {
		return ""
	}
	return base[i+idx:]
}

// Decode reads a report previously produced by Encode.
func Decode(rd io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(rd).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	if rep.Assets == nil {
		rep.Assets = []Asset{}
	}
	if rep.MissingAssets == nil {
		rep.MissingAssets = []string{}
	}
	return &rep, nil
}
