package model

import (
	"context"

	"jfrogext/internal/settings"
	"jfrogext/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Bridge forwards navigation and notifications from the settings controller
// into the TUI message loop. It satisfies settings.Navigator and
// settings.Notifier. Notices are dropped when the channel is full; navigation
// is always delivered unless ctx ends first.
type Bridge struct {
	ctx context.Context
	ch  chan<- tea.Msg
}

// NewBridge creates a bridge writing into ch for as long as ctx is alive.
func NewBridge(ctx context.Context, ch chan<- tea.Msg) *Bridge {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bridge{ctx: ctx, ch: ch}
}

// Navigate never blocks. Navigation can be requested from inside Update, which
// is also what drains the channel, so a full channel is handed to a goroutine.
func (b *Bridge) Navigate(route settings.Route) {
	msg := NavigateMsg{Route: route}
	select {
	case b.ch <- msg:
		return
	default:
	}
	go func() {
		select {
		case b.ch <- msg:
		case <-b.ctx.Done():
			logging.Warn("TUI", "Navigation to %s abandoned: %v", route, b.ctx.Err())
		}
	}()
}

func (b *Bridge) Success(msg string) {
	b.send(NoticeMsg{Type: StatusBarSuccess, Text: msg})
}

func (b *Bridge) Error(msg string) {
	b.send(NoticeMsg{Type: StatusBarError, Text: msg})
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	default:
		logging.Warn("TUI", "Dropping %T, TUI channel is full", msg)
	}
}
