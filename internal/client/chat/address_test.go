package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationID_Commutative(t *testing.T) {
	a, b := "@ABC-123", "@XYZ-999"
	assert.Equal(t, ConversationID(a, b), ConversationID(b, a))
	assert.Equal(t, "@ABC-123_@XYZ-999", ConversationID(a, b))
}

func TestConversationID_Uppercases(t *testing.T) {
	assert.Equal(t, "@ABC-123_@XYZ-999", ConversationID("@abc-123", "@xyz-999"))
}

func TestParticipants_RoundTrip(t *testing.T) {
	id := ConversationID("@XYZ-999", "@ABC-123")
	assert.Equal(t, []string{"@ABC-123", "@XYZ-999"}, Participants(id))
}

func TestNicknameField_Positional(t *testing.T) {
	participants := []string{"@ABC-123", "@XYZ-999"}

	// Self is the second participant, so the other occupies slot 1.
	assert.Equal(t, "displayName_user1", nicknameField(participants, "@XYZ-999"))

	// Self is the first participant, so the other occupies slot 2.
	assert.Equal(t, "displayName_user2", nicknameField(participants, "@ABC-123"))
}

func TestNicknameField_CaseInsensitiveSelf(t *testing.T) {
	participants := []string{"@ABC-123", "@XYZ-999"}
	assert.Equal(t, "displayName_user1", nicknameField(participants, "@xyz-999"))
}
