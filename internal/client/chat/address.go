// Package chat implements conversation addressing, the message service and
// the live view-models (Inbox and Session) over the remote document store.
package chat

import (
	"sort"
	"strings"

	"github.com/HASANPOWER/Spectra-App/internal/client/identity"
)

// ConversationID derives the shared conversation ID for two identifiers:
// both uppercased, sorted lexicographically, joined by "_". Pure and
// commutative, so either participant computes the same ID without a
// handshake.
func ConversationID(a, b string) string {
	pair := []string{strings.ToUpper(a), strings.ToUpper(b)}
	sort.Strings(pair)
	return pair[0] + "_" + pair[1]
}

// Participants splits a conversation ID back into its sorted participant
// identifiers.
func Participants(chatID string) []string {
	return strings.Split(chatID, "_")
}

// nicknameField returns the display-name field for the participant that is
// NOT self. Slots are positional on the sorted participants list: index 0
// writes displayName_user1, index 1 writes displayName_user2. The
// lexicographic sort is the sole source of slot assignment; keying by
// identity instead would land nickname writes in the wrong slot.
func nicknameField(participants []string, selfID string) string {
	self := strings.ToUpper(selfID)
	other := ""
	for _, p := range participants {
		if p != self {
			other = p
			break
		}
	}
	for i, p := range participants {
		if p == other {
			if i == 0 {
				return "displayName_user1"
			}
			return "displayName_user2"
		}
	}
	return "displayName_user2"
}

// chatDocPath and messagesPath build the remote paths for a conversation.
func chatDocPath(chatID string) string  { return "chats/" + chatID }
func messagesPath(chatID string) string { return "chats/" + chatID + "/messages" }
func messagePath(chatID, id string) string {
	return messagesPath(chatID) + "/" + id
}

// normalizePeer is a convenience over identity.NormalizeID.
func normalizePeer(raw string) string { return identity.NormalizeID(raw) }
