package view

import "time"

// Flash is a transient success message. It is hidden once Expires passes.
type Flash struct {
	Message string    `json:"message,omitempty"`
	Expires time.Time `json:"expires"`
}

func NewFlash(msg string, now time.Time, ttl time.Duration) Flash {
	return Flash{Message: msg, Expires: now.Add(ttl)}
}

func (f Flash) Active(now time.Time) bool {
	return f.Message != "" && now.Before(f.Expires)
}

// Text returns the message while active and "" afterwards.
func (f Flash) Text(now time.Time) string {
	if !f.Active(now) {
		return ""
	}
	return f.Message
}
