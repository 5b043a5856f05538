package notify

import "sync"

// Recorder captures notifications for inspection in tests.
type Recorder struct {
	mu   sync.Mutex
	msgs []Notification
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Notification{Level: level, Message: message})
}

// All returns a copy of every notification received so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Last returns the most recent notification and true, or false if none.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return Notification{}, false
	}
	return r.msgs[len(r.msgs)-1], true
}

// Reset clears all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}
