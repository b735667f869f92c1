package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"example.com/storefront/app/internal/domain/notice"
)

type noticeMsg struct {
	notice notice.Notice
}

// Notifier forwards notices into the program's event stream. Notices are
// dropped rather than blocking when the stream is full.
type Notifier struct {
	events chan tea.Msg
}

func NewNotifier(events chan tea.Msg) *Notifier {
	return &Notifier{events: events}
}

func (n *Notifier) Notify(nt notice.Notice) {
	select {
	case n.events <- noticeMsg{notice: nt}:
	default:
	}
}
