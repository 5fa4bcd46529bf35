package aepx

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/aepx/model"
)

// urlSchemes are reference prefixes that name remote or already-resolved
// resources rather than local files. Matched case-sensitively.
var urlSchemes = []string{"http://", "https://", "file://"}

// resolveCandidates classifies every raw candidate against the filesystem
// and fills the report. Relative candidates resolve against projectDir.
// Each candidate lands in exactly one of assets or missing, except URLs
// and blank values, which are dropped.
func resolveCandidates(rep *model.Report, candidates map[string]struct{}, projectDir string, opts ScanOptions) {
	for raw := range candidates {
		p := raw
		if opts.normalizeUnicode {
			p = norm.NFC.String(p)
		}

		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if hasURLScheme(p) {
			continue
		}

		if !filepath.IsAbs(p) {
			p = filepath.Join(projectDir, p)
		}
		p = filepath.Clean(p)

		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			rep.AddMissing(p)
			continue
		}

		rep.AddAsset(model.Asset{
			Path:         p,
			RelativePath: relativeTo(projectDir, p),
			Filename:     filepath.Base(p),
			Extension:    model.Ext(p),
			Size:         info.Size(),
		})
	}
}

func hasURLScheme(p string) bool {
	for _, s := range urlSchemes {
		if strings.HasPrefix(p, s) {
			return true
		}
	}
	return false
}

// relativeTo returns path relative to dir, falling back to the absolute
// path when no relative form exists (different volumes on Windows).
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
