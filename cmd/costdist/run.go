package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/katalvlaran/costdist/composite"
	"github.com/katalvlaran/costdist/config"
	"github.com/katalvlaran/costdist/costdist"
	"github.com/katalvlaran/costdist/gridgraph"
	"github.com/katalvlaran/costdist/pixel"
	"github.com/katalvlaran/costdist/raster"
	"github.com/katalvlaran/costdist/tonemap"
)

// legendWidth and legendHeight size the colour-bar PNG.
const (
	legendWidth  = 256
	legendHeight = 16
)

// run executes one configured job: load, accumulate, render, composite, write.
func run(ctx context.Context, cfg *config.RunConfig, log *slog.Logger) error {
	// 1) Inputs.
	friction, err := loadFriction(cfg.GetFrictionPath(), cfg.GetNoData())
	if err != nil {
		return err
	}
	sources, err := buildSources(cfg, friction)
	if err != nil {
		return err
	}
	conn := cfg.GetConnectivity()

	regions, err := gridgraph.Components(gridgraph.Passable(friction), conn)
	if err != nil {
		return err
	}
	log.Info("inputs loaded",
		"width", friction.Width(), "height", friction.Height(),
		"passable", friction.ValidCount(), "regions", len(regions),
		"sources", raster.SourceCount(sources))
	if raster.SourceCount(sources) == 0 {
		log.Warn("no sources: every cell will be unreached")
	}

	// 2) Cost distance.
	costs, stats, err := costdist.AccumulateWithStats(friction, sources,
		costdist.WithMaxCost(cfg.GetMaxCost()),
		costdist.WithConnectivity(conn),
		costdist.WithCellSize(cfg.GetCellSize()),
		costdist.WithContext(ctx),
		costdist.WithLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("accumulated",
		"seeds", stats.Seeds, "reached", stats.Finalized,
		"unreached_passable", friction.ValidCount()-stats.Finalized,
		"max_reached", stats.MaxReached)

	if p := cfg.GetCostPath(); p != "" {
		if err = writeCostCSV(p, costs); err != nil {
			return err
		}
	}

	// 3) Rendering.
	palette, err := cfg.GetPalette()
	if err != nil {
		return err
	}
	transform, err := cfg.GetTransform()
	if err != nil {
		return err
	}
	if cfg.GetAutoDomain() {
		if palette, err = tonemap.FitDomain(palette, costs, transform); err != nil {
			return err
		}
		log.Info("palette domain fitted", "min", palette.Min, "max", palette.Max)
	}

	img, err := compose(cfg, friction, costs, transform, palette)
	if err != nil {
		return err
	}
	if err = writePNG(cfg.GetOutputPath(), pixel.Thumbnail(img, cfg.GetThumbnail())); err != nil {
		return err
	}
	log.Info("image written", "path", cfg.GetOutputPath())

	if p := cfg.GetLegendPath(); p != "" {
		ramp, rerr := tonemap.Ramp(palette, legendWidth, legendHeight)
		if rerr != nil {
			return rerr
		}
		if err = writePNG(p, pixel.ToImage(ramp)); err != nil {
			return err
		}
		log.Info("legend written", "path", p)
	}

	return nil
}

// buildSources merges the listed source cells with the optional source raster.
func buildSources(cfg *config.RunConfig, friction *raster.Grid[float64]) (*raster.Grid[bool], error) {
	sources, err := raster.PaintSources(friction.Width(), friction.Height(), cfg.GetSourceCells())
	if err != nil {
		return nil, err
	}
	path := cfg.GetSourcesPath()
	if path == "" {
		return sources, nil
	}

	extra, err := loadSourceValues(path, cfg.GetNoData())
	if err != nil {
		return nil, err
	}
	if err = raster.CheckSameShape(friction, extra); err != nil {
		return nil, fmt.Errorf("sources %s: %w", path, err)
	}
	for i := 0; i < extra.Len(); i++ {
		if v, ok := extra.At(i); ok && v {
			sources.SetAt(i, true)
		}
	}

	return sources, nil
}

// compose stacks the cost layer over an optional faint friction layer over
// the background, then flattens it for encoding.
func compose(cfg *config.RunConfig, friction, costs *raster.Grid[float64],
	transform tonemap.Transform, palette tonemap.Palette) (image.Image, error) {
	costLayer, err := tonemap.Render(costs, transform, palette)
	if err != nil {
		return nil, err
	}
	bgColor, err := cfg.GetBackground()
	if err != nil {
		return nil, err
	}
	bg, err := composite.Solid(friction.Width(), friction.Height(), bgColor)
	if err != nil {
		return nil, err
	}

	layers := []*composite.ColorGrid{costLayer}
	if alpha := cfg.GetFrictionAlpha(); alpha > 0 {
		frictionLayer, ferr := tonemap.Render(friction, tonemap.Identity, tonemap.Friction())
		if ferr != nil {
			return nil, ferr
		}
		layers = append(layers, composite.Opacity(frictionLayer, alpha))
	}
	layers = append(layers, bg)

	out, err := composite.Mosaic(layers...)
	if err != nil {
		return nil, err
	}
	out = composite.Flatten(out)
	if cfg.GetMaskNoData() {
		if out, err = composite.MaskBy(out, friction); err != nil {
			return nil, err
		}
	}

	return pixel.ToImage(out), nil
}

// writePNG encodes img to path, creating parent directories.
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}

// writeCostCSV dumps the accumulated costs, unreached cells empty.
func writeCostCSV(path string, costs *raster.Grid[float64]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = writeGrid(f, costs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
