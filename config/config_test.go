package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/dragtrack/pointer"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	mode, err := cfg.TrackerMode()
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if mode != pointer.ModeBoth {
		t.Fatalf("default mode = %v, want both", mode)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("default window = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if len(cfg.Sheet.SnapOffsets) == 0 {
		t.Fatalf("default sheet has no snap offsets")
	}
}

func TestLoadDiskOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dragtrack.yaml")
	doc := `
mode: touch
window: {width: 800, height: 600, title: test}
regions:
  - {name: card, x: 10, y: 10, width: 20, height: 20}
sheet:
  region: sheet
  x: 100
  width: 200
  rest_y: 500
  snap_offsets: [0, -100]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mode, err := cfg.TrackerMode()
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if mode != pointer.ModeTouch {
		t.Fatalf("mode = %v, want touch", mode)
	}
	if len(cfg.Regions) != 1 || cfg.Regions[0].Name != "card" {
		t.Fatalf("regions = %+v", cfg.Regions)
	}
	b := cfg.Regions[0].Bounds()
	if b.X != 10 || b.Width != 20 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "bad_mode",
			doc:     "mode: pen\nwindow: {width: 10, height: 10}\nsheet: {snap_offsets: [0]}",
			wantErr: "mode",
		},
		{
			name:    "bad_window",
			doc:     "window: {width: 0, height: 10}\nsheet: {snap_offsets: [0]}",
			wantErr: "window size",
		},
		{
			name:    "unnamed_region",
			doc:     "window: {width: 10, height: 10}\nregions: [{x: 0, y: 0, width: 5, height: 5}]\nsheet: {snap_offsets: [0]}",
			wantErr: "empty name",
		},
		{
			name:    "duplicate_region",
			doc:     "window: {width: 10, height: 10}\nregions: [{name: a, x: 0, y: 0, width: 5, height: 5}, {name: a, x: 1, y: 1, width: 5, height: 5}]\nsheet: {snap_offsets: [0]}",
			wantErr: "duplicate region",
		},
		{
			name:    "degenerate_region",
			doc:     "window: {width: 10, height: 10}\nregions: [{name: a, x: 0, y: 0, width: 0, height: 5}]\nsheet: {snap_offsets: [0]}",
			wantErr: "non-positive size",
		},
		{
			name:    "no_snap_offsets",
			doc:     "window: {width: 10, height: 10}",
			wantErr: "snap offset",
		},
		{
			name:    "not_yaml",
			doc:     "{:::",
			wantErr: "unmarshal",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.doc))
			if err == nil {
				t.Fatalf("expected error containing %q", c.wantErr)
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("error %q does not mention %q", err, c.wantErr)
			}
		})
	}
}
