package models

import "time"

// Conversation is the shared two-participant thread document. Its ID is
// computable by either participant without coordination (see chat.ConversationID).
type Conversation struct {
	// ID is "<A>_<B>" where A and B are the uppercased participant IDs in
	// lexicographic order.
	ID string

	// Participants holds the two identifiers, sorted. Slot assignment for
	// display names follows this order: index 0 → DisplayNameUser1,
	// index 1 → DisplayNameUser2.
	Participants []string

	LastMessage string
	ChatName    string
	Persona     Persona
	UpdatedAt   time.Time

	DisplayNameUser1 string
	DisplayNameUser2 string
}

// Other returns the participant that is not self (case-insensitive match on
// the uppercased self ID). Falls back to the conversation ID when self is
// not a participant.
func (c Conversation) Other(selfID string) string {
	for _, p := range c.Participants {
		if p != selfID {
			return p
		}
	}
	return c.ID
}

// DisplayNameFor returns the nickname stored for the given participant's
// slot, or "" when none is set. Slots are positional on the sorted
// participants list, not keyed by identity.
func (c Conversation) DisplayNameFor(participant string) string {
	for i, p := range c.Participants {
		if p != participant {
			continue
		}
		if i == 0 {
			return c.DisplayNameUser1
		}
		return c.DisplayNameUser2
	}
	return ""
}
