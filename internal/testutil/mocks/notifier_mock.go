package mocks

import (
	"sync"

	"github.com/vytor/flashdeck/internal/notify"
)

// Notification is one recorded call to RecordingNotifier.Notify.
type Notification struct {
	Message string
	Kind    notify.Kind
}

// RecordingNotifier keeps every notification for later assertions.
type RecordingNotifier struct {
	mu    sync.Mutex
	calls []Notification
}

func (n *RecordingNotifier) Notify(message string, kind notify.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, Notification{Message: message, Kind: kind.Normalize()})
}

func (n *RecordingNotifier) All() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.calls...)
}

// Last returns the most recent notification, or the zero value.
func (n *RecordingNotifier) Last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return Notification{}
	}
	return n.calls[len(n.calls)-1]
}
