package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/sonance/internal/config"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/synth"
	"github.com/olivier-w/sonance/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "sonance")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.Default()
	}

	engine := fx.New(fx.Options{
		NewContext: func() (*synth.Context, error) {
			return synth.NewContext(synth.Options{
				SampleRate: cfg.SampleRate,
				Open:       synth.OpenDevice,
			})
		},
		Logger: logger,
	})

	opts := ui.Options{
		Persona:    cfg.Persona,
		Tier:       cfg.Tier,
		Aggressive: cfg.StartAggressive(),
		FPS:        cfg.FPS,
	}
	if ev, ok := cfg.StartupChime(); ok {
		opts.Chime = &ev
	}
	model := ui.New(engine, opts)
	p := tea.NewProgram(model, programOptions()...)
	if _, err := p.Run(); err != nil {
		logger.Printf("sonance: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// programOptions takes over the screen and reports focus changes and all
// mouse motion, so buttons can react to hover without a held button.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}
