package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	defaultWidth  = 700
	defaultHeight = 700
)

type Config struct {
	LogLevel   string
	Width      int
	Height     int
	XMin, XMax float64
	YMin, YMax float64
	// Samples is the number of intervals per curve; 0 follows the window
	// width.
	Samples int
	// Step is a fixed sampling interval that overrides Samples when set.
	Step       float64
	Functions  []string
	ExportPath string
}

// functionList collects repeated -f flags.
type functionList []string

func (fl *functionList) String() string {
	return strings.Join(*fl, "; ")
}

func (fl *functionList) Set(s string) error {
	*fl = append(*fl, s)
	return nil
}

func ParseConfig(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	var functions functionList
	fs := flag.NewFlagSet("grapher", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: grapher [flags] [function ...]\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.IntVar(&cfg.Width, "width", defaultWidth, "window width in pixels")
	fs.IntVar(&cfg.Height, "height", defaultHeight, "window height in pixels")
	fs.Float64Var(&cfg.XMin, "xmin", -10, "left edge of the initial view")
	fs.Float64Var(&cfg.XMax, "xmax", 10, "right edge of the initial view")
	fs.Float64Var(&cfg.YMin, "ymin", -10, "bottom edge of the initial view")
	fs.Float64Var(&cfg.YMax, "ymax", 10, "top edge of the initial view")
	fs.IntVar(&cfg.Samples, "samples", 0, "samples per curve (0: one per pixel)")
	fs.Float64Var(&cfg.Step, "step", 0, "fixed sampling step, e.g. 0.01 (overrides -samples)")
	fs.Var(&functions, "f", "function of x to plot (repeatable)")
	fs.StringVar(&cfg.ExportPath, "export", "", "render to this .png or .bmp file and exit instead of opening a window")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Functions = append(functions, fs.Args()...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height))
	}
	if !(cfg.XMin < cfg.XMax) {
		errs = append(errs, fmt.Errorf("-xmin (%v) must be less than -xmax (%v)", cfg.XMin, cfg.XMax))
	}
	if !(cfg.YMin < cfg.YMax) {
		errs = append(errs, fmt.Errorf("-ymin (%v) must be less than -ymax (%v)", cfg.YMin, cfg.YMax))
	}
	if cfg.Samples < 0 {
		errs = append(errs, fmt.Errorf("-samples must not be negative, got %d", cfg.Samples))
	}
	if cfg.Step < 0 {
		errs = append(errs, fmt.Errorf("-step must not be negative, got %v", cfg.Step))
	}
	return errors.Join(errs...)
}
