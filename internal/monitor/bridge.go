package monitor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/hazard/internal/dashboard"
)

type snapshotMsg dashboard.Snapshot

type stateMsg dashboard.State

// Bridge forwards controller output into the BubbleTea event loop. It is
// registered as a dashboard renderer.
type Bridge struct {
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

// NewBridge creates a bridge buffering up to size pending updates.
func NewBridge(size int) *Bridge {
	return &Bridge{
		msgs: make(chan tea.Msg, size),
		done: make(chan struct{}),
	}
}

// Render implements dashboard.Renderer.
func (b *Bridge) Render(s dashboard.Snapshot) {
	b.send(snapshotMsg(s))
}

// StateChanged implements dashboard.StateObserver.
func (b *Bridge) StateChanged(s dashboard.State) {
	b.send(stateMsg(s))
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.msgs <- msg:
	case <-b.done:
	}
}

// Close releases a controller blocked on a full bridge once the UI is gone.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

// wait returns a command that delivers the next update.
func (b *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.msgs:
			return msg
		case <-b.done:
			return nil
		}
	}
}
