package model

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityWarning, SeverityError, SeverityInfo:
		return true
	}
	return false
}

// Title is the heading shown above the toast message.
func (s Severity) Title() string {
	switch s {
	case SeverityError:
		return "❌ Error"
	case SeverityWarning:
		return "⚠️ Warning"
	case SeverityInfo:
		return "ℹ️ Info"
	default:
		return "✅ Success"
	}
}

// Toast is a transient notification. Toasts live in memory only.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Shown     bool      `json:"shown"`
	CreatedAt time.Time `json:"created_at"`
}
