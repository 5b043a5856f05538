// Package notify delivers user-facing feedback messages.
package notify

import "time"

// Level classifies a notification for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a human-readable feedback message.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier receives notifications. Implementations must not block;
// delivery is fire-and-forget and no result is consumed by callers.
type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a function to the Notifier interface.
type Func func(level Level, message string)

// Notify calls f.
func (f Func) Notify(level Level, message string) { f(level, message) }

// Discard is a Notifier that drops all notifications.
var Discard Notifier = Func(func(Level, string) {})
