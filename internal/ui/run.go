package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"declgen/internal/driver"
)

// RunProgress drives the progress model on out until events is closed or
// ctx is cancelled.
func RunProgress(ctx context.Context, out io.Writer, title string, files []string, events <-chan driver.Event) error {
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "progress UI")
	}
	return nil
}
