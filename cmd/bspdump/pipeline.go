package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/bsp"
	"github.com/Faultbox/leafbsp/internal/config"
	"github.com/Faultbox/leafbsp/internal/dump"
	"github.com/Faultbox/leafbsp/internal/logger"
	"github.com/Faultbox/leafbsp/pkg/formats"
	"github.com/Faultbox/leafbsp/pkg/wad"
)

// result is a compiled level.
type result struct {
	level *formats.Level
	tree  *bsp.Tree
}

func (r *result) print(w io.Writer) {
	fmt.Fprintf(w, "numvertices %d\n", len(r.level.Vertices))
	fmt.Fprintf(w, "numlinedefs %d\n", len(r.level.Linedefs))
	fmt.Fprintf(w, "numnodes %d\n", r.tree.NumNodes())
	fmt.Fprintf(w, "numleafs %d\n", r.tree.NumLeafs())
	fmt.Fprintf(w, "numempty %d\n", r.tree.NumEmpty())
	fmt.Fprintf(w, "depth %d\n", r.tree.Depth())
}

func buildOptions(cfg *config.Config) bsp.Options {
	return bsp.Options{
		Epsilon:  cfg.Build.Epsilon,
		MaxDepth: cfg.Build.MaxDepth,
		Extent:   cfg.Build.Extent,
	}
}

func listMaps(path string) ([]string, error) {
	archive, err := wad.Open(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()
	return archive.Maps(), nil
}

func loadLevel(path, mapName string) (*formats.Level, error) {
	archive, err := wad.Open(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	level, err := formats.LoadLevel(archive, mapName)
	if err != nil {
		return nil, err
	}
	logger.Info("level loaded",
		zap.String("wad", path),
		zap.String("map", mapName),
		zap.Int("vertices", len(level.Vertices)),
		zap.Int("linedefs", len(level.Linedefs)),
	)
	return level, nil
}

// compile loads a level, builds its tree and classifies the leaves.
func compile(path, mapName string, cfg *config.Config) (*result, error) {
	level, err := loadLevel(path, mapName)
	if err != nil {
		return nil, err
	}

	tree, err := bsp.NewBuilder(buildOptions(cfg)).Build(level.Segments())
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", mapName, err)
	}
	tree.MarkEmptyLeaves(level.Walls())

	logger.Info("tree built",
		zap.String("map", mapName),
		zap.Int("nodes", tree.NumNodes()),
		zap.Int("leafs", tree.NumLeafs()),
		zap.Int("empty", tree.NumEmpty()),
		zap.Int("depth", tree.Depth()),
	)
	return &result{level: level, tree: tree}, nil
}

// createFile opens path for writing, creating parent directories.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeLeafDump(path string, r *result) (int, error) {
	f, err := createFile(path)
	if err != nil {
		return 0, fmt.Errorf("creating leaf dump: %w", err)
	}
	defer f.Close()

	n, err := dump.WriteLeaves(f, r.tree)
	if err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, f.Close()
}

func writeWallDump(path string, level *formats.Level) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("creating wall dump: %w", err)
	}
	defer f.Close()

	if err := dump.WriteWalls(f, level.Lines()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
