package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folio-labs/explainer/internal/player"
)

// StageChangedMsg carries one sequencer transition into the program.
type StageChangedMsg struct {
	Section  int
	Snapshot player.Snapshot
}

// stageBatchMsg delivers every transition queued since the last delivery,
// in notification order.
type stageBatchMsg []StageChangedMsg

// bridge forwards sequencer notifications to the bubbletea event loop.
//
// Sequencers notify while holding their lock, and the event loop calls
// back into sequencers from Update, so the subscriber side must never block:
// it appends to a queue and pokes a one-slot signal channel. The event loop
// drains the queue through wait.
type bridge struct {
	mu     sync.Mutex
	queue  []StageChangedMsg
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newBridge() *bridge {
	return &bridge{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// subscriber returns the player.Subscriber for section.
func (b *bridge) subscriber(section int) player.Subscriber {
	return player.SubscriberFunc(func(snap player.Snapshot) {
		b.post(StageChangedMsg{Section: section, Snapshot: snap})
	})
}

func (b *bridge) post(msg StageChangedMsg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// drain returns and clears everything queued so far.
func (b *bridge) drain() stageBatchMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	out := stageBatchMsg(b.queue)
	b.queue = nil
	return out
}

// wait returns a command that blocks until something is queued or the
// bridge is closed.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-b.done:
				return nil
			default:
			}
			select {
			case <-b.done:
				return nil
			case <-b.signal:
				if batch := b.drain(); len(batch) > 0 {
					return batch
				}
			}
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}
