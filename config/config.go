package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/dragtrack/common"
	"github.com/milk9111/dragtrack/pointer"
)

//go:embed default.yaml
var defaultFS embed.FS

// DefaultPath is where Load looks before falling back to the embedded
// default config.
const DefaultPath = "dragtrack.yaml"

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type RegionSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r RegionSpec) Bounds() common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type SheetSpec struct {
	// Region names the grab region a press must land on for the sheet to
	// follow the drag.
	Region string  `yaml:"region"`
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	// RestY is the sheet's top edge when fully lowered.
	RestY float64 `yaml:"rest_y"`
	// SnapOffsets are vertical offsets from RestY the sheet settles to;
	// 0 must be present for the rest position.
	SnapOffsets []float64 `yaml:"snap_offsets"`
	Stiffness   float64   `yaml:"stiffness"`
	Damping     float64   `yaml:"damping"`
}

type Config struct {
	Mode    string       `yaml:"mode"`
	Window  WindowSpec   `yaml:"window"`
	Regions []RegionSpec `yaml:"regions"`
	Sheet   SheetSpec    `yaml:"sheet"`
	// Script is the gesture hook script path, resolved like the config
	// itself (disk first, then embedded).
	Script string `yaml:"script"`
}

// TrackerMode returns the parsed pointer mode.
func (c *Config) TrackerMode() (pointer.Mode, error) {
	return pointer.ParseMode(c.Mode)
}

// Load reads the config at path, falling back to the embedded default when
// the file does not exist. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data, err = defaultFS.ReadFile("default.yaml")
		if err != nil {
			return nil, fmt.Errorf("config: embedded default: %w", err)
		}
	}

	return Parse(data)
}

// Parse unmarshals and validates a yaml config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := pointer.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: mode: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	seen := map[string]bool{}
	for _, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("config: region with empty name")
		}
		if seen[r.Name] {
			return fmt.Errorf("config: duplicate region %q", r.Name)
		}
		seen[r.Name] = true
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("config: region %q has non-positive size", r.Name)
		}
	}
	if len(c.Sheet.SnapOffsets) == 0 {
		return fmt.Errorf("config: sheet needs at least one snap offset")
	}
	return nil
}
