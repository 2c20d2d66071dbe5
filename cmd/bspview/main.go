// bspview opens dump files written by bspdump in a preview window.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/config"
	"github.com/Faultbox/leafbsp/internal/dump"
	"github.com/Faultbox/leafbsp/internal/logger"
	"github.com/Faultbox/leafbsp/internal/viewer"
)

func main() {
	fs := flag.NewFlagSet("bspview", flag.ExitOnError)
	config.BindFlags(fs)
	config.BindViewerFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `bspview - preview bspdump geometry

Usage:
  bspview [options] <dump> [<dump>...]

Keys:
  mouse drag, arrows   pan
  wheel, + / -         zoom
  0, Home              fit everything
  f                    toggle polygon fill
  Esc, q               quit

Options:`)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	shapes, err := loadShapes(fs.Args())
	if err != nil {
		logger.Fatal("loading dumps", zap.Error(err))
	}
	logger.Info("dumps loaded", zap.Int("files", fs.NArg()), zap.Int("shapes", len(shapes)))

	v, err := viewer.New(viewer.Config{
		Title:  "bspview - " + strings.Join(baseNames(fs.Args()), ", "),
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		Margin: cfg.Viewer.Margin,
	}, shapes)
	if err != nil {
		logger.Fatal("opening window", zap.Error(err))
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer stopped", zap.Error(err))
	}
}

// loadShapes reads every dump, later files drawn over earlier ones.
func loadShapes(paths []string) ([]dump.Shape, error) {
	var shapes []dump.Shape
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		s, err := dump.Read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		shapes = append(shapes, s...)
	}
	return shapes, nil
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
