package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/tacmap/feed"
)

func TestDefaultTheme(t *testing.T) {
	th := Default()
	if th.Padding <= 0 || th.MarkerRadius <= 0 {
		t.Fatalf("embedded defaults missing: %+v", th)
	}
	if th.CT.Color == nil || th.T.Color == nil || th.Background.Color == nil {
		t.Fatal("embedded colors missing")
	}
	if th.TeamColor(feed.TeamCT) == th.TeamColor(feed.TeamT) {
		t.Fatal("team colors must differ")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("marker_radius: 9\nct_color: \"#ff000080\"\n"), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if th.MarkerRadius != 9 {
		t.Fatalf("marker_radius = %v, want 9", th.MarkerRadius)
	}
	want := color.NRGBA{R: 0xff, A: 0x80}
	if th.CT.Color != want {
		t.Fatalf("ct_color = %v, want %v", th.CT.Color, want)
	}
	// Untouched keys keep the embedded defaults.
	if th.Padding != Default().Padding {
		t.Fatalf("padding = %v, want default %v", th.Padding, Default().Padding)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("ct_color: \"#zz0000\"\n"), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for bad color")
	}

	if err := os.WriteFile(path, []byte("ct_color: [1, 2]\n"), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for non-scalar color")
	}
}

func TestUnknownTeamColor(t *testing.T) {
	th := Default()
	if th.TeamColor(feed.Team("SPEC")) == nil {
		t.Fatal("unknown team should still get a color")
	}
}
