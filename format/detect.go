// Package format provides file format detection for After Effects project files.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognized project file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// AEPX indicates an XML After Effects project (.aepx).
	AEPX
	// AEP indicates a binary RIFX After Effects project (.aep).
	AEP
)

// riffMagic is the big-endian RIFF container signature used by binary
// After Effects projects; the form type at offset 8 identifies the content.
var (
	riffMagic   = []byte("RIFX")
	aepFormType = []byte("Egg!")
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case AEPX:
		return "AEPX"
	case AEP:
		return "AEP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case AEPX:
		return ".aepx"
	case AEP:
		return ".aep"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".aepx":
		return AEPX
	case ".aep":
		return AEP
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection:
// binary projects saved with an .aepx extension are still recognized as AEP.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// Binary project: RIFX container, form type Egg! at offset 8.
	if bytes.HasPrefix(data, riffMagic) {
		if len(data) >= 12 && !bytes.Equal(data[8:12], aepFormType) {
			return Unknown
		}
		return AEP
	}

	if detectXMLMagic(data) {
		return AEPX
	}

	return Unknown
}

// detectXMLMagic checks if the data looks like an XML project document.
func detectXMLMagic(data []byte) bool {
	// Skip a UTF-8 BOM if present.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	if bytes.HasPrefix(data, []byte("<?xml")) {
		return true
	}
	// Declaration-less documents still open with a tag.
	return data[0] == '<'
}

// DetectFromReader inspects file content to determine format.
// This is more reliable than extension-based detection.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 12)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	return DetectFromMagic(magic), nil
}
