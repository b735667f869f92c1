package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"example.com/storefront/app/internal/usecase/search"
	"example.com/storefront/app/internal/usecase/storefront"
)

// EventBuffer is the capacity of the channel feeding debounced searches
// and notices into the program.
const EventBuffer = 32

// Run shows the storefront browser until the user quits. events must be
// the channel the app's notifier writes to.
func Run(ctx context.Context, app *storefront.App, events chan tea.Msg, delay time.Duration) error {
	debounce := search.NewDebouncer(delay, func(text string) {
		select {
		case events <- searchTextMsg{text: text}:
		case <-ctx.Done():
		}
	})
	defer debounce.Cancel()

	p := tea.NewProgram(NewModel(ctx, app, events, debounce), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
