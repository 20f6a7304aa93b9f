package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/irbview/sequence"
	"github.com/lixenwraith/irbview/viewer"
)

func runView(cmd *cobra.Command, f *rootFlags, path string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	mode, err := viewer.ParseMode(cfg.View.Mode)
	if err != nil {
		return err
	}

	closer, err := setupLog(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	seq, err := sequence.Open(path)
	if err != nil {
		return err
	}
	defer seq.Close()
	log.Printf("[irbview] opened %s: %d frame(s)", path, seq.FrameCount())

	v, err := viewer.New(seq, viewer.Options{
		Mapper:    cfg.Mapper(),
		Range:     cfg.Range(),
		Gradient:  cfg.View.Gradient,
		Gradients: cfg.GradientNames(),
		Resolve:   cfg.Gradient,
		Zoom:      cfg.View.Zoom,
		Mode:      mode,
		Status:    cfg.View.Status,
		Legend:    cfg.View.Legend,
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return v.Run(ctx, screen)
}
