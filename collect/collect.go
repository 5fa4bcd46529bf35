// Package collect copies a scanned project and its resolved assets into a
// portable directory layout. The project file lands at the root of the
// destination and assets go into a flat assets/ pool keyed by filename, so
// repeated runs against related projects share footage instead of
// duplicating it.
package collect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/aepx/model"
)

var (
	// ErrNilReport is returned when Run is given a nil report.
	ErrNilReport = errors.New("collect: nil report")

	// ErrNoProject is returned when the report carries no project file path.
	ErrNoProject = errors.New("collect: report has no project file")
)

// Actions reported through Options.Progress as each asset is handled.
const (
	ActionCopied  = "copied"
	ActionReused  = "reused"
	ActionSkipped = "skipped"
)

// Event describes one file processed during a collect run.
type Event struct {
	Action   string
	Filename string
	Size     int64
}

// Options configures a collect run.
type Options struct {
	// Progress, when non-nil, is called once per asset as it is processed.
	Progress func(Event)
}

// Result summarizes a completed collect run. Copied and Bytes include the
// project file itself, which is always rewritten.
type Result struct {
	Copied int
	Reused int
	Bytes  int64
	Dest   string
}

// Run copies the project file named by rep and every resolved asset into
// destDir. The destination is created if needed. Assets are pooled under
// destDir/assets by filename: when the pool already holds a file with the
// same name and size it is reused rather than copied again, and the event
// reports ActionReused. Missing assets cannot be copied and are reported
// with ActionSkipped.
//
// Example:
//
//	rep, _, err := aepx.Open("project.aepx").Report()
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := collect.Run(rep, "delivery", collect.Options{})
func Run(rep *model.Report, destDir string, opts Options) (*Result, error) {
	if rep == nil {
		return nil, ErrNilReport
	}
	if rep.ProjectFile == "" {
		return nil, ErrNoProject
	}

	assetsDir := filepath.Join(destDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, fmt.Errorf("collect: creating destination: %w", err)
	}

	res := &Result{Dest: destDir}

	projDst := filepath.Join(destDir, filepath.Base(rep.ProjectFile))
	n, err := copyFile(rep.ProjectFile, projDst)
	if err != nil {
		return nil, fmt.Errorf("collect: copying project file: %w", err)
	}
	res.Copied++
	res.Bytes += n

	for _, asset := range rep.Assets {
		dst := filepath.Join(assetsDir, asset.Filename)

		if pooled(dst, asset.Size) {
			res.Reused++
			emit(opts, Event{Action: ActionReused, Filename: asset.Filename, Size: asset.Size})
			continue
		}

		n, err := copyFile(asset.Path, dst)
		if err != nil {
			return nil, fmt.Errorf("collect: copying %s: %w", asset.Filename, err)
		}
		res.Copied++
		res.Bytes += n
		emit(opts, Event{Action: ActionCopied, Filename: asset.Filename, Size: asset.Size})
	}

	for _, missing := range rep.MissingAssets {
		emit(opts, Event{Action: ActionSkipped, Filename: filepath.Base(missing)})
	}

	return res, nil
}

// pooled reports whether dst already holds a regular file of the given size.
func pooled(dst string, size int64) bool {
	info, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() == size
}

func emit(opts Options, ev Event) {
	if opts.Progress != nil {
		opts.Progress(ev)
	}
}

// copyFile copies src to dst, creating parent directories as needed, and
// syncs the destination before returning the number of bytes written.
func copyFile(src, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("creating directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	n, err := io.Copy(dstFile, srcFile)
	if err != nil {
		return 0, fmt.Errorf("copying data: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("syncing destination: %w", err)
	}

	return n, nil
}
