// Package config loads the JSON run configuration of the costdist command.
//
// Every field is optional in the file except the friction input and the
// output path. Fields left out keep nil pointers and the Get* accessors
// supply the defaults, so partial configs are safe.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/costdist/costdist"
	"github.com/katalvlaran/costdist/gridgraph"
	"github.com/katalvlaran/costdist/pixel"
	"github.com/katalvlaran/costdist/raster"
	"github.com/katalvlaran/costdist/tonemap"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// maxFileSize caps how much JSON Load will read.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Defaults applied by the Get* accessors.
const (
	DefaultConnectivity = 8
	DefaultCellSize     = 1.0
	DefaultPalette      = "accessibility"
	DefaultTransform    = "log"
	DefaultBackground   = "11101e"
	DefaultLogLevel     = "info"
)

// Point is a source cell as written in the config file.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RunConfig describes one cost-distance run: where the friction surface
// comes from, where the sources are, how to search and how to draw the result.
type RunConfig struct {
	// Inputs
	FrictionPath *string `json:"friction_path,omitempty"` // CSV, one raster row per line
	NoData       *string `json:"nodata,omitempty"`        // token marking missing cells, e.g. "-9999" or "NA"
	Sources      []Point `json:"sources,omitempty"`
	SourcesPath  *string `json:"sources_path,omitempty"` // CSV of the same shape, values > 0 are sources

	// Search
	MaxCost      *float64 `json:"max_cost,omitempty"`
	Connectivity *int     `json:"connectivity,omitempty"`
	CellSize     *float64 `json:"cell_size,omitempty"`

	// Rendering
	Palette       *string   `json:"palette,omitempty"`        // built-in preset name
	PaletteColors []string  `json:"palette_colors,omitempty"` // overrides the preset's colours
	Domain        []float64 `json:"domain,omitempty"`         // [min, max]; omitted means the preset's domain
	AutoDomain    *bool     `json:"auto_domain,omitempty"`    // fit the domain to the 2nd-98th percentile
	Transform     *string   `json:"transform,omitempty"`
	Background    *string   `json:"background,omitempty"`
	FrictionAlpha *float64  `json:"friction_alpha,omitempty"` // > 0 draws the friction surface faintly underneath
	MaskNoData    *bool     `json:"mask_nodata,omitempty"`    // leave impassable cells transparent
	LegendPath    *string   `json:"legend_path,omitempty"`    // optional colour-bar PNG
	Thumbnail     *int      `json:"thumbnail,omitempty"`      // max side in pixels; 0 keeps full size
	OutputPath    *string   `json:"output_path,omitempty"`
	CostPath      *string   `json:"cost_path,omitempty"` // optional CSV dump of accumulated costs
	LogLevel      *string   `json:"log_level,omitempty"`
}

// Load reads a RunConfig from a JSON file.
// The file must have a .json extension and be under 1 MiB. Relative input
// and output paths are resolved against the config file's directory.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety.
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(cleanPath))

	return cfg, nil
}

// Parse decodes and validates a RunConfig from JSON bytes.
// Unknown fields are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*RunConfig, error) {
	cfg := &RunConfig{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// resolve makes relative paths relative to dir.
func (c *RunConfig) resolve(dir string) {
	for _, p := range []*string{c.FrictionPath, c.SourcesPath, c.OutputPath, c.LegendPath, c.CostPath} {
		if p != nil && *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks that the configuration values are usable.
func (c *RunConfig) Validate() error {
	if c.FrictionPath == nil || *c.FrictionPath == "" {
		return fmt.Errorf("%w: friction_path is required", ErrInvalid)
	}
	if c.OutputPath == nil || *c.OutputPath == "" {
		return fmt.Errorf("%w: output_path is required", ErrInvalid)
	}
	if ext := strings.ToLower(filepath.Ext(*c.OutputPath)); ext != ".png" {
		return fmt.Errorf("%w: output_path must end in .png, got %q", ErrInvalid, ext)
	}

	for i, p := range c.Sources {
		if p.X < 0 || p.Y < 0 {
			return fmt.Errorf("%w: sources[%d] has negative coordinate (%d,%d)", ErrInvalid, i, p.X, p.Y)
		}
	}

	if c.MaxCost != nil && !(*c.MaxCost > 0) {
		return fmt.Errorf("%w: max_cost must be > 0, got %v", ErrInvalid, *c.MaxCost)
	}
	if err := gridgraph.Validate(c.GetConnectivity()); err != nil {
		return fmt.Errorf("%w: connectivity: %w", ErrInvalid, err)
	}
	if c.CellSize != nil && !(*c.CellSize > 0) {
		return fmt.Errorf("%w: cell_size must be > 0, got %v", ErrInvalid, *c.CellSize)
	}

	if c.Domain != nil {
		if len(c.Domain) != 2 {
			return fmt.Errorf("%w: domain must be [min, max], got %d values", ErrInvalid, len(c.Domain))
		}
		if c.GetAutoDomain() {
			return fmt.Errorf("%w: domain and auto_domain are mutually exclusive", ErrInvalid)
		}
	}
	if _, err := c.GetPalette(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.GetTransform(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.GetBackground(); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if c.FrictionAlpha != nil && (*c.FrictionAlpha < 0 || *c.FrictionAlpha > 1) {
		return fmt.Errorf("%w: friction_alpha must be between 0 and 1, got %v", ErrInvalid, *c.FrictionAlpha)
	}
	if c.Thumbnail != nil && *c.Thumbnail < 0 {
		return fmt.Errorf("%w: thumbnail must be non-negative, got %d", ErrInvalid, *c.Thumbnail)
	}
	if _, err := c.GetLogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// GetNoData returns the nodata token or "" (only empty cells are missing).
func (c *RunConfig) GetNoData() string {
	if c.NoData == nil {
		return ""
	}
	return *c.NoData
}

// GetSourceCells converts the listed sources to raster cells.
func (c *RunConfig) GetSourceCells() []raster.Cell {
	cells := make([]raster.Cell, len(c.Sources))
	for i, p := range c.Sources {
		cells[i] = raster.Cell{X: p.X, Y: p.Y}
	}
	return cells
}

// GetSourcesPath returns the sources CSV path or "".
func (c *RunConfig) GetSourcesPath() string {
	if c.SourcesPath == nil {
		return ""
	}
	return *c.SourcesPath
}

// GetMaxCost returns max_cost or costdist.DefaultMaxCost.
func (c *RunConfig) GetMaxCost() float64 {
	if c.MaxCost == nil {
		return costdist.DefaultMaxCost
	}
	return *c.MaxCost
}

// GetConnectivity returns the connectivity or Conn8.
func (c *RunConfig) GetConnectivity() gridgraph.Connectivity {
	if c.Connectivity == nil {
		return DefaultConnectivity
	}
	return gridgraph.Connectivity(*c.Connectivity)
}

// GetCellSize returns cell_size or 1.
func (c *RunConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return DefaultCellSize
	}
	return *c.CellSize
}

// GetPalette builds the palette: the preset (default "accessibility"),
// recoloured by palette_colors and re-ranged by domain when given.
func (c *RunConfig) GetPalette() (tonemap.Palette, error) {
	name := DefaultPalette
	if c.Palette != nil && *c.Palette != "" {
		name = *c.Palette
	}
	p, err := tonemap.Preset(name)
	if err != nil {
		return tonemap.Palette{}, err
	}
	if len(c.PaletteColors) > 0 {
		if p, err = tonemap.ParsePalette(p.Min, p.Max, c.PaletteColors...); err != nil {
			return tonemap.Palette{}, err
		}
	}
	if len(c.Domain) == 2 {
		return p.WithDomain(c.Domain[0], c.Domain[1])
	}
	return p, nil
}

// GetAutoDomain reports whether the palette domain is fitted to the data.
func (c *RunConfig) GetAutoDomain() bool {
	if c.AutoDomain == nil {
		return false
	}
	return *c.AutoDomain
}

// GetTransform returns the parsed transform, Log by default.
func (c *RunConfig) GetTransform() (tonemap.Transform, error) {
	if c.Transform == nil {
		return tonemap.ParseTransform(DefaultTransform)
	}
	return tonemap.ParseTransform(*c.Transform)
}

// GetBackground returns the background colour, "11101e" by default.
func (c *RunConfig) GetBackground() (pixel.RGBA, error) {
	if c.Background == nil || *c.Background == "" {
		return pixel.Parse(DefaultBackground)
	}
	return pixel.Parse(*c.Background)
}

// GetFrictionAlpha returns friction_alpha or 0 (no friction underlay).
func (c *RunConfig) GetFrictionAlpha() float64 {
	if c.FrictionAlpha == nil {
		return 0
	}
	return *c.FrictionAlpha
}

// GetMaskNoData reports whether impassable cells are cut out of the image.
func (c *RunConfig) GetMaskNoData() bool {
	if c.MaskNoData == nil {
		return false
	}
	return *c.MaskNoData
}

// GetThumbnail returns the thumbnail size or 0.
func (c *RunConfig) GetThumbnail() int {
	if c.Thumbnail == nil {
		return 0
	}
	return *c.Thumbnail
}

// GetFrictionPath returns friction_path.
func (c *RunConfig) GetFrictionPath() string { return deref(c.FrictionPath) }

// GetOutputPath returns output_path.
func (c *RunConfig) GetOutputPath() string { return deref(c.OutputPath) }

// GetLegendPath returns legend_path or "".
func (c *RunConfig) GetLegendPath() string { return deref(c.LegendPath) }

// GetCostPath returns cost_path or "".
func (c *RunConfig) GetCostPath() string { return deref(c.CostPath) }

// GetLogLevel parses log_level ("debug", "info", "warn", "error").
func (c *RunConfig) GetLogLevel() (slog.Level, error) {
	s := DefaultLogLevel
	if c.LogLevel != nil && *c.LogLevel != "" {
		s = *c.LogLevel
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
