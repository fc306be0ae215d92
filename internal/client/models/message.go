package models

import (
	"strings"
	"time"
)

// Message is one message document inside a conversation. Messages are
// created once and deleted, never updated in place.
type Message struct {
	// ID is the message document ID.
	ID string

	// Text is the message body, at most common.MaxMessageLen characters.
	Text string

	// SenderID is the uppercased spectra ID of the sender. Whether a
	// message was sent by the local user is computed against this field,
	// never persisted, so both participants agree.
	SenderID string

	// CreatedAt is the server-assigned creation timestamp. It is the zero
	// time until the remote store has resolved the server timestamp.
	CreatedAt time.Time

	// Burn is the self-destruct setting chosen by the sender.
	Burn BurnTimer
}

// ExpiresAt returns the message expiry and true when a burn timer is set.
func (m Message) ExpiresAt() (time.Time, bool) {
	if m.Burn == BurnOff || m.Burn.Duration() == 0 || m.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	return m.CreatedAt.Add(m.Burn.Duration()), true
}

// SentBy reports whether the message was sent by the given identifier,
// compared case-insensitively.
func (m Message) SentBy(spectraID string) bool {
	if spectraID == "" {
		return false
	}
	return strings.EqualFold(m.SenderID, spectraID)
}
