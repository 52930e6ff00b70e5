package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/ui"
)

const tuiLogPath = "./tmp/smrx-tui.log"

// TUI launches the interactive catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	src, closeSrc, err := r.source()
	if err != nil {
		return err
	}
	defer closeSrc()

	gen, err := r.generator("")
	if err != nil {
		r.logger.Warn("site generator unavailable, build disabled", "error", err)
		gen = nil
	}

	model := ui.NewModel(ctx, r.engine(src), gen)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
