package config

import (
	"flag"
	"strconv"
)

// BindFlags registers the flags every tool understands on fs.
func BindFlags(fs *flag.FlagSet) {
	fs.String("config", "", "Path to config file")
	fs.Bool("debug", false, "Enable debug logging")
	fs.String("log-file", "", "Write logs to this file as well")
}

// BindBuildFlags registers tree construction and output flags on fs.
func BindBuildFlags(fs *flag.FlagSet) {
	fs.Float64("epsilon", 0, "Side test tolerance")
	fs.Int("max-depth", 0, "Tree depth limit")
	fs.Float64("extent", 0, "Half-size of the leaf clipping square")
	fs.String("o", "", "Leaf dump file")
	fs.String("walls", "", "Wall dump file")
}

// BindViewerFlags registers preview window flags on fs.
func BindViewerFlags(fs *flag.FlagSet) {
	fs.Int("width", 0, "Window width")
	fs.Int("height", 0, "Window height")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath(fs *flag.FlagSet) string {
	if fs == nil {
		return ""
	}
	if f := fs.Lookup("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

// applyFlags applies the flags that were set on the command line. Flags
// left at their defaults do not override file values.
func applyFlags(cfg *Config, fs *flag.FlagSet) {
	if fs == nil {
		return
	}
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "debug":
			if b, _ := strconv.ParseBool(v); b {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.LogFile = v
		case "epsilon":
			cfg.Build.Epsilon, _ = strconv.ParseFloat(v, 64)
		case "max-depth":
			cfg.Build.MaxDepth, _ = strconv.Atoi(v)
		case "extent":
			cfg.Build.Extent, _ = strconv.ParseFloat(v, 64)
		case "o":
			cfg.Output.LeafDump = v
		case "walls":
			cfg.Output.WallDump = v
		case "width":
			cfg.Viewer.Width, _ = strconv.Atoi(v)
		case "height":
			cfg.Viewer.Height, _ = strconv.Atoi(v)
		}
	})
}
