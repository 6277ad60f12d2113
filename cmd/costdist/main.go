// Command costdist computes an accumulated cost-distance surface from a
// friction raster and renders it as a PNG.
//
//	costdist -config run.json
//
// The friction raster and optional source raster are CSV files; see
// config.RunConfig for every setting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/katalvlaran/costdist/config"
	"github.com/katalvlaran/costdist/costdist"
)

func main() {
	var (
		configPath = flag.String("config", "run.json", "path to the JSON run configuration")
		verbose    = flag.Bool("v", false, "log at debug level regardless of log_level")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "costdist: %v\n", err)
		os.Exit(2)
	}

	level, _ := cfg.GetLogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	costdist.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}
