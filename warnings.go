package aepx

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal scan problem.
type WarningCode string

const (
	// WarnParseError indicates the project file could not be read or parsed
	// as XML. The scan still produces an empty report for the file.
	WarnParseError WarningCode = "parse-error"

	// WarnBinaryProject indicates the file is a binary RIFX project rather
	// than an XML one. Re-saving the project as .aepx makes it scannable.
	WarnBinaryProject WarningCode = "binary-project"
)

// Warning describes a non-fatal issue encountered during a scan.
// Warnings indicate that scanning completed but results may be incomplete.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings as a single newline-separated string,
// suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
