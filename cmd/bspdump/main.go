// bspdump builds leaf BSP trees for Doom levels and dumps their geometry.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/config"
	"github.com/Faultbox/leafbsp/internal/logger"
)

// errUsage marks bad command lines; usage has already been printed.
var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	logger.Sync()
	if err == nil {
		return
	}
	if !errors.Is(err, errUsage) {
		logger.Error("bspdump failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return errUsage
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "maps", "ls":
		return cmdMaps(args, stdout)
	case "build":
		return cmdBuild(args, stdout)
	case "walls":
		return cmdWalls(args, stdout)
	case "info":
		return cmdInfo(args, stdout)
	case "config":
		return cmdConfig(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `bspdump - leaf BSP compiler for Doom levels

Usage:
  bspdump <command> [options] <args>

Commands:
  maps  <file.wad>                 List level markers
  info  <file.wad> <map>           Build the tree and print statistics
  build <file.wad> <map>           Build the tree and write leaf and wall dumps
  walls <file.wad> <map>           Write only the wall dump
  config                           Print the effective settings as YAML

Options (config):
  -write            Save the settings to the user config directory
  -write-to <file>  Save the settings to a file

Options (info, build, walls):
  -config <file>    Config file (default ./bspdump.yaml or the user config dir)
  -debug            Enable debug logging
  -log-file <file>  Also log to a rotated file
  -epsilon <e>      Side test tolerance (default 0.2)
  -max-depth <n>    Tree depth limit, 0 for none (default 4096)
  -extent <e>       Half-size of the leaf clipping square (default 16384)
  -o <file>         Leaf dump (default leafs.txt)
  -walls <file>     Wall dump (default walls.txt)

Examples:
  bspdump maps doom.wad
  bspdump build doom.wad E1M1
  bspdump build -o e1m1.txt -epsilon 0.1 doom.wad E1M1
  bspdump config -epsilon 0.1 -write`)
}

// setup parses a level command's flags, loads config and starts logging.
func setup(name string, args []string, nargs int) (*flag.FlagSet, *config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	config.BindFlags(fs)
	config.BindBuildFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}
	if fs.NArg() < nargs {
		fmt.Fprintf(os.Stderr, "Usage: bspdump %s <file.wad> <map>\n", name)
		return nil, nil, errUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return fs, cfg, nil
}

func cmdMaps(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("maps", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bspdump maps <file.wad>")
		return errUsage
	}

	maps, err := listMaps(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, m := range maps {
		fmt.Fprintln(stdout, m)
	}
	return nil
}

func cmdInfo(args []string, stdout io.Writer) error {
	fs, cfg, err := setup("info", args, 2)
	if err != nil {
		return err
	}

	result, err := compile(fs.Arg(0), fs.Arg(1), cfg)
	if err != nil {
		return err
	}
	result.print(stdout)
	return nil
}

func cmdBuild(args []string, stdout io.Writer) error {
	fs, cfg, err := setup("build", args, 2)
	if err != nil {
		return err
	}

	result, err := compile(fs.Arg(0), fs.Arg(1), cfg)
	if err != nil {
		return err
	}
	result.print(stdout)

	shapes, err := writeLeafDump(cfg.Output.LeafDump, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d leaf shapes to %s\n", shapes, cfg.Output.LeafDump)

	if err := writeWallDump(cfg.Output.WallDump, result.level); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote walls to %s\n", cfg.Output.WallDump)
	return nil
}

func cmdWalls(args []string, stdout io.Writer) error {
	fs, cfg, err := setup("walls", args, 2)
	if err != nil {
		return err
	}

	level, err := loadLevel(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	if err := writeWallDump(cfg.Output.WallDump, level); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d walls to %s\n", len(level.Lines()), cfg.Output.WallDump)
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	config.BindFlags(fs)
	config.BindBuildFlags(fs)
	config.BindViewerFlags(fs)
	write := fs.Bool("write", false, "Save to the user config directory")
	writeTo := fs.String("write-to", "", "Save to this file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	switch {
	case *writeTo != "":
		if err := cfg.SaveTo(*writeTo); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(stdout, "wrote config to %s\n", *writeTo)
	case *write:
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(stdout, "wrote config to %s\n", path)
	default:
		return cfg.Encode(stdout)
	}
	return nil
}
