package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReportEmptyArrays(t *testing.T) {
	rep := NewReport("/work/project.aepx")

	if rep.Assets == nil {
		t.Error("NewReport() Assets is nil, want empty slice")
	}
	if rep.MissingAssets == nil {
		t.Error("NewReport() MissingAssets is nil, want empty slice")
	}

	var buf bytes.Buffer
	if err := rep.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"assets": []`) {
		t.Errorf("empty report marshals assets as %q, want []", out)
	}
	if !strings.Contains(out, `"missing_assets": []`) {
		t.Errorf("empty report marshals missing_assets as %q, want []", out)
	}
	if strings.Contains(out, "null") {
		t.Errorf("empty report contains null: %s", out)
	}
}

func TestReportTotals(t *testing.T) {
	rep := NewReport("/work/project.aepx")
	rep.AddAsset(Asset{Path: "/work/a.mov", Size: 1024})
	rep.AddAsset(Asset{Path: "/work/b.png", Size: 76})

	if rep.TotalSize != 1100 {
		t.Errorf("TotalSize = %d, want 1100", rep.TotalSize)
	}
	if rep.AssetCount() != 2 {
		t.Errorf("AssetCount() = %d, want 2", rep.AssetCount())
	}

	var sum int64
	for _, a := range rep.Assets {
		sum += a.Size
	}
	if sum != rep.TotalSize {
		t.Errorf("sum of asset sizes = %d, TotalSize = %d", sum, rep.TotalSize)
	}
}

func TestReportSort(t *testing.T) {
	rep := NewReport("/work/project.aepx")
	rep.AddAsset(Asset{Path: "/work/z.mov"})
	rep.AddAsset(Asset{Path: "/work/a.mov"})
	rep.AddAsset(Asset{Path: "/work/m.png"})
	rep.AddMissing("/work/gone/z.wav")
	rep.AddMissing("/work/gone/a.wav")

	rep.Sort()

	wantAssets := []string{"/work/a.mov", "/work/m.png", "/work/z.mov"}
	for i, want := range wantAssets {
		if rep.Assets[i].Path != want {
			t.Errorf("Assets[%d].Path = %q, want %q", i, rep.Assets[i].Path, want)
		}
	}

	wantMissing := []string{"/work/gone/a.wav", "/work/gone/z.wav"}
	for i, want := range wantMissing {
		if rep.MissingAssets[i] != want {
			t.Errorf("MissingAssets[%d] = %q, want %q", i, rep.MissingAssets[i], want)
		}
	}
}

func TestReportHasMissing(t *testing.T) {
	rep := NewReport("/work/project.aepx")
	if rep.HasMissing() {
		t.Error("HasMissing() = true for empty report, want false")
	}
	rep.AddMissing("/work/gone.png")
	if !rep.HasMissing() {
		t.Error("HasMissing() = false after AddMissing, want true")
	}
}

func TestEncodeWireFormat(t *testing.T) {
	rep := NewReport("/work/project.aepx")
	rep.AddAsset(Asset{
		Path:         "/work/footage/clip.mov",
		RelativePath: "footage/clip.mov",
		Filename:     "clip.mov",
		Extension:    ".mov",
		Size:         1024,
	})
	rep.AddMissing("/work/missing/img.png")

	var buf bytes.Buffer
	if err := rep.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()

	for _, field := range []string{
		`"project_file"`, `"assets"`, `"missing_assets"`, `"total_size"`,
		`"path"`, `"relative_path"`, `"filename"`, `"extension"`, `"size"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("encoded report missing field %s:\n%s", field, out)
		}
	}

	// Two-space indentation, trailing newline.
	if !strings.Contains(out, "\n  \"project_file\"") {
		t.Errorf("encoded report not indented with two spaces:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("encoded report does not end with newline")
	}

	got, err := Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.ProjectFile != rep.ProjectFile {
		t.Errorf("ProjectFile = %q, want %q", got.ProjectFile, rep.ProjectFile)
	}
	if got.TotalSize != 1024 {
		t.Errorf("TotalSize = %d, want 1024", got.TotalSize)
	}
	if len(got.Assets) != 1 || got.Assets[0].Filename != "clip.mov" {
		t.Errorf("Assets = %+v, want one clip.mov entry", got.Assets)
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"clip.mov", ".mov"},
		{"/footage/clip.mov", ".mov"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{".hidden", ""},
		{"/home/user/.bashrc", ""},
		{".config.json", ".json"},
		{"name.", "."},
		{"...", ""},
		{"..a.b", ".b"},
	}

	for _, tt := range tests {
		if got := Ext(tt.path); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDecodeNormalizesNilSlices(t *testing.T) {
	got, err := Decode(strings.NewReader(`{"project_file":"/p.aepx","total_size":0}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Assets == nil {
		t.Error("Decode() Assets is nil, want empty slice")
	}
	if got.MissingAssets == nil {
		t.Error("Decode() MissingAssets is nil, want empty slice")
	}
}
