package notify

import (
	"log/slog"
	"sync"
	"time"
)

const defaultHistory = 100

// Bus fans notifications out to subscriber channels and keeps a bounded
// history so late readers (the API, the CLI) can see recent messages.
type Bus struct {
	mu      sync.RWMutex
	subs    []chan Notification
	history []Notification
	limit   int
	logger  *slog.Logger
	closed  bool
}

// NewBus creates a notification bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{limit: defaultHistory, logger: logger}
}

// Notify records the notification and delivers it to all subscribers.
// Delivery is non-blocking; a full subscriber channel drops the message.
func (b *Bus) Notify(level Level, message string) {
	n := Notification{Level: level, Message: message, Time: time.Now()}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.history = append(b.history, n)
	if len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	subs := make([]chan Notification, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
			b.logger.Warn("subscriber channel full, dropping notification",
				"level", string(n.Level))
		}
	}
}

// Subscribe returns a channel receiving future notifications.
func (b *Bus) Subscribe(bufferSize int) <-chan Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Notification, bufferSize)
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Recent returns up to n of the most recent notifications, oldest first.
func (b *Bus) Recent(n int) []Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.history) {
		n = len(b.history)
	}
	out := make([]Notification, n)
	copy(out, b.history[len(b.history)-n:])
	return out
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	return nil
}
