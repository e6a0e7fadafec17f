package console

import (
	"sync"

	"github.com/JaimeStill/agent-meet/internal/agentform"
)

// Toaster is an agentform.Notifier that queues notifications for the
// terminal model. Notify never blocks; when the queue is full the
// notification is dropped.
type Toaster struct {
	ch     chan agentform.Notification
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewToaster creates a toaster holding up to size pending notifications.
func NewToaster(size int) *Toaster {
	if size < 1 {
		size = 1
	}
	return &Toaster{ch: make(chan agentform.Notification, size)}
}

func (t *Toaster) Notify(n agentform.Notification) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.ch <- n:
	default:
	}
}

// C delivers queued notifications.
func (t *Toaster) C() <-chan agentform.Notification {
	return t.ch
}

// Close stops delivery. Later notifications are discarded.
func (t *Toaster) Close() {
	t.once.Do(func() {
		t.mu.Lock()
		t.closed = true
		close(t.ch)
		t.mu.Unlock()
	})
}
