package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/irbview/config"
)

// flags shared by every subcommand
type rootFlags struct {
	configPath string
	gradient   string
	zoom       float64
	min        float64
	max        float64
	steps      int
	mode       string
	logFile    string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "irbview [path]",
		Short: "Terminal viewer for thermal camera sequences",
		Long: `irbview renders radiometric frame sequences as false-color images.

A path may be a single frame file (.csv, .png), a directory of frame files,
or a container format registered by a decoder plugin.

Controls:
  q, Esc, Ctrl+C    Quit
  n, p, arrows      Next / previous frame
  g, G, Home, End   First / last frame
  +, -, 0           Zoom in / out / reset
  c                 Cycle gradient
  r                 Lock range to the whole sequence (toggle)
  m                 Toggle render mode (halfblock/background)
  b, s              Toggle legend / status bar
  hjkl, PgUp/PgDn   Pan viewport`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd, f, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $"+config.EnvPath+")")
	pf.StringVarP(&f.gradient, "gradient", "g", "", "gradient name")
	pf.Float64VarP(&f.zoom, "zoom", "z", 0, "initial zoom factor (0.5-3, 0 = unscaled)")
	pf.Float64Var(&f.min, "min", 0, "fixed lower mapping bound")
	pf.Float64Var(&f.max, "max", 0, "fixed upper mapping bound")
	pf.IntVar(&f.steps, "steps", 0, "quantization resolution")
	pf.StringVarP(&f.mode, "mode", "m", "", "render mode: halfblock or background")
	pf.StringVar(&f.logFile, "log", "", "log file")

	root.AddCommand(
		&cobra.Command{
			Use:   "view <path>",
			Short: "Open a sequence in the interactive viewer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runView(cmd, f, args[0])
			},
		},
		newInfoCmd(f),
		newGradientsCmd(f),
	)
	return root
}

// loadConfig reads the config file and applies flags that were set explicitly
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(f.configPath))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("gradient") {
		cfg.View.Gradient = f.gradient
	}
	if flags.Changed("zoom") {
		cfg.View.Zoom = f.zoom
	}
	if flags.Changed("min") {
		cfg.Mapping.Min = &f.min
	}
	if flags.Changed("max") {
		cfg.Mapping.Max = &f.max
	}
	if flags.Changed("steps") {
		cfg.Mapping.Steps = f.steps
	}
	if flags.Changed("mode") {
		cfg.View.Mode = f.mode
	}
	if flags.Changed("log") {
		cfg.Log.File = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLog routes the standard logger; quiet discards output when no file is set
func setupLog(cfg *config.Config, quiet bool) (io.Closer, error) {
	log.SetFlags(log.Ltime)
	if cfg.Log.File == "" {
		if quiet {
			log.SetOutput(io.Discard)
		}
		return io.NopCloser(nil), nil
	}

	lf, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	log.SetOutput(lf)
	return lf, nil
}
