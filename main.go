package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cellux/grapher/internal/export"
	"github.com/cellux/grapher/internal/graph"
)

func runGui(cfg *Config) error {
	app, err := CreateApp(cfg)
	if err != nil {
		return err
	}
	return WithGL("grapher", cfg.Width, cfg.Height, app)
}

// runExport renders the configured functions without opening a window.
func runExport(cfg *Config) error {
	if len(cfg.Functions) == 0 {
		return errors.New("-export needs at least one function")
	}
	path, err := resolveSavePath(cfg.ExportPath)
	if err != nil {
		return err
	}
	vp, err := graph.NewViewport(cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	reg := graph.NewRegistry()
	for _, source := range cfg.Functions {
		if err := reg.Add(source); err != nil {
			return fmt.Errorf("function %q: %w", source, err)
		}
	}
	scene, err := graph.BuildScene(context.Background(), vp, reg, graph.SceneOptions{
		Samples: cfg.Samples,
		Step:    cfg.Step,
	})
	if err != nil {
		return err
	}
	r, err := export.NewRenderer(logger)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		err = r.WritePNG(path, scene)
	} else {
		img, rerr := r.Render(scene)
		if rerr != nil {
			return rerr
		}
		err = export.WriteBMP(path, img)
	}
	if err != nil {
		return err
	}
	logger.Info("saved", "path", path, "functions", reg.Len())
	return nil
}

func run(args []string) error {
	cfg, err := ParseConfig(args, os.Stderr)
	if err != nil {
		return err
	}
	if err := InitLogger(cfg.LogLevel, os.Stderr); err != nil {
		return err
	}
	if cfg.ExportPath != "" {
		return runExport(cfg)
	}
	return runGui(cfg)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "grapher: %v\n", err)
		os.Exit(1)
	}
}
