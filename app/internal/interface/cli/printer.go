package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"example.com/storefront/app/internal/domain/notice"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5484D"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A524"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00A278"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E9BF5"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#636363"))
)

// printer writes notices to a terminal stream.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) Notify(n notice.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var label string
	switch n.Level {
	case notice.LevelError:
		label = errorStyle.Render("error")
	case notice.LevelWarning:
		label = warningStyle.Render("warning")
	case notice.LevelSuccess:
		label = successStyle.Render("ok")
	default:
		label = infoStyle.Render("info")
	}
	fmt.Fprintf(p.out, "%s: %s\n", label, n.Message)
}
