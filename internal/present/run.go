package present

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run presents m until the user quits or ctx is cancelled. The terminal is
// put into raw mode on the alternate screen for the duration and restored on
// every exit path, including panics inside the loop.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (*Navigator, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return m.nav, nil
		}
		return nil, fmt.Errorf("running presentation: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.nav, nil
	}
	return m.nav, nil
}
