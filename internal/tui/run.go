package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// New creates the dashboard model. A predictor is required; without a history
// store the history panel stays empty.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Predictor == nil {
		return Model{}, fmt.Errorf("predictor is required")
	}

	return newModel(ctx, cfg), nil
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(ctx, opts...)
	if err != nil {
		return err
	}

	// Restore the terminal even if the program dies mid-render.
	cleanupTerminal := func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
