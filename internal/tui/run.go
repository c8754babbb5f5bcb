package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/skinvault/internal/collection"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, catalog collection.CatalogLoader, tracker *collection.Tracker, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)

	p := tea.NewProgram(
		New(catalog, tracker, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
