package manifest

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func testManifest() *Manifest {
	m := New("test-profile", 80, "truncate")
	m.BuildInfo = &BuildInfo{Workers: 4}
	m.Assets["test/image"] = Asset{
		Original: OriginalInfo{Width: 20, Height: 10, Format: "png", Size: 1234},
		Encoded:  Dimensions{Width: 20, Height: 10},
		Planes: []PlaneStats{
			{Name: "Y", Kind: "Luminance", Width: 20, Height: 10, Cols: 3, Rows: 2, Blocks: 6, ZeroBlocks: 2, Tokens: 30, NonZero: 11, Digest: "0123456789abcdef"},
			{Name: "Cb", Kind: "Chrominance", Width: 10, Height: 5, Cols: 2, Rows: 1, Blocks: 2, ZeroBlocks: 2, Tokens: 4, Digest: "aaaaaaaaaaaaaaaa"},
			{Name: "Cr", Kind: "Chrominance", Width: 10, Height: 5, Cols: 2, Rows: 1, Blocks: 2, ZeroBlocks: 1, Tokens: 7, NonZero: 2, Digest: "bbbbbbbbbbbbbbbb"},
		},
		ReferenceJPG: 900,
		Dump:         "test/image.0123abcd.tokens.json",
	}
	return m
}

func TestManifestRoundtrip(t *testing.T) {
	m := testManifest()

	path := filepath.Join(t.TempDir(), "jpegcore.manifest.json")
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	m2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if m2.Version != SupportedManifestVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedManifestVersion)
	}
	if m2.Profile != "test-profile" || m2.Quality != 80 || m2.Rounding != "truncate" {
		t.Errorf("header: got %q %d %q", m2.Profile, m2.Quality, m2.Rounding)
	}
	if m2.BuildInfo == nil || m2.BuildInfo.Workers != 4 {
		t.Fatal("build_info not parsed correctly")
	}

	a, ok := m2.Assets["test/image"]
	if !ok {
		t.Fatal("asset test/image missing")
	}
	if len(a.Planes) != 3 || a.Planes[0].Digest != "0123456789abcdef" {
		t.Errorf("planes: got %+v", a.Planes)
	}
	if a.Dump != "test/image.0123abcd.tokens.json" {
		t.Errorf("dump: got %q", a.Dump)
	}

	want := Stats{
		TotalInputBytes:     1234,
		TotalReferenceBytes: 900,
		TotalAssets:         1,
		TotalBlocks:         10,
		TotalZeroBlocks:     5,
		TotalTokens:         41,
	}
	if m2.Stats != want {
		t.Errorf("stats: got %+v, want %+v", m2.Stats, want)
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	// Simulate a future manifest with extra fields.
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"profile": "test",
		"quality": 50,
		"rounding": "nearest",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "new_flag": true },
		"assets": {},
		"stats": { "total_assets": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Version != 1 || m.Rounding != "nearest" {
		t.Errorf("header: got %d %q", m.Version, m.Rounding)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 8 {
		t.Error("build_info not parsed correctly")
	}
}

func TestReadJSON_Missing(t *testing.T) {
	if _, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
