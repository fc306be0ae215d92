package chat

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/common"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

const (
	selfID = "@ABC-123"
	peerID = "@XYZ-999"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func setupService(t *testing.T) (*Service, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemory()
	return NewService(store, testLogger()), store
}

func TestSend_WritesMessageAndConversation(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	chatID := ConversationID(selfID, peerID)

	err := svc.Send(ctx, chatID, peerID, models.PersonaFamily, selfID, "hello", models.BurnOff)
	require.NoError(t, err)

	chatDoc, err := store.Get(ctx, "chats/"+chatID)
	require.NoError(t, err)
	assert.Equal(t, "hello", chatDoc.StringField("lastMessage"))
	assert.Equal(t, peerID, chatDoc.StringField("chatName"))
	assert.Equal(t, "family", chatDoc.StringField("persona"))
	assert.Equal(t, []string{selfID, peerID}, chatDoc.StringsField("participants"))
	assert.False(t, chatDoc.TimeField("updatedAt").IsZero())

	msgs, err := store.Documents(ctx, "chats/"+chatID+"/messages")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].StringField("text"))
	assert.Equal(t, selfID, msgs[0].StringField("senderId"))
	assert.Equal(t, "off", msgs[0].StringField("burnTimer"))
	assert.False(t, msgs[0].TimeField("createdAt").IsZero())
}

func TestSend_UppercasesSender(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	chatID := ConversationID(selfID, peerID)

	require.NoError(t, svc.Send(ctx, chatID, peerID, models.PersonaWork, "@abc-123", "hi", models.Burn10s))

	msgs, err := store.Documents(ctx, "chats/"+chatID+"/messages")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "@ABC-123", msgs[0].StringField("senderId"))
	assert.Equal(t, "10s", msgs[0].StringField("burnTimer"))
}

func TestSend_RejectsEmptyAndBlank(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	chatID := ConversationID(selfID, peerID)

	err := svc.Send(ctx, chatID, peerID, models.PersonaFamily, selfID, "", models.BurnOff)
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	err = svc.Send(ctx, chatID, peerID, models.PersonaFamily, selfID, "   \t  ", models.BurnOff)
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	// A rejected send leaves no trace in the store.
	_, err = store.Get(ctx, "chats/"+chatID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSend_RejectsOverlongMessage(t *testing.T) {
	svc, _ := setupService(t)
	chatID := ConversationID(selfID, peerID)

	long := strings.Repeat("x", common.MaxMessageLen+1)
	err := svc.Send(context.Background(), chatID, peerID, models.PersonaFamily, selfID, long, models.BurnOff)
	assert.ErrorIs(t, err, common.ErrMessageTooLong)

	ok := strings.Repeat("x", common.MaxMessageLen)
	err = svc.Send(context.Background(), chatID, peerID, models.PersonaFamily, selfID, ok, models.BurnOff)
	assert.NoError(t, err)
}

func TestStartChat(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users/"+peerID, map[string]any{"spectraID": peerID}))

	chatID, chatName, err := svc.StartChat(ctx, selfID, "xyz-999")
	require.NoError(t, err)
	assert.Equal(t, ConversationID(selfID, peerID), chatID)
	assert.Equal(t, peerID, chatName)
}

func TestStartChat_UnknownPeer(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.StartChat(context.Background(), selfID, "@NOP-000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStartChat_RejectsSelf(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "users/"+selfID, map[string]any{"spectraID": selfID}))

	_, _, err := svc.StartChat(ctx, selfID, "abc-123")
	assert.ErrorIs(t, err, common.ErrSelfChat)
}

func TestClearHistory(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	chatID := ConversationID(selfID, peerID)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Send(ctx, chatID, peerID, models.PersonaFamily, selfID, "msg", models.BurnOff))
	}

	require.NoError(t, svc.ClearHistory(ctx, chatID))

	msgs, err := store.Documents(ctx, "chats/"+chatID+"/messages")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// The conversation document survives; only messages are wiped.
	_, err = store.Get(ctx, "chats/"+chatID)
	assert.NoError(t, err)
}

func TestSaveNickname(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	chatID := ConversationID(selfID, peerID)

	require.NoError(t, svc.Send(ctx, chatID, peerID, models.PersonaFamily, selfID, "hi", models.BurnOff))
	require.NoError(t, svc.SaveNickname(ctx, chatID, selfID, "Alice"))

	doc, err := store.Get(ctx, "chats/"+chatID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc.StringField("chatName"))
	// selfID sorts first, so the peer occupies slot 2.
	assert.Equal(t, "Alice", doc.StringField("displayName_user2"))
	assert.Empty(t, doc.StringField("displayName_user1"))
}

func TestSaveNickname_MissingConversation(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.SaveNickname(context.Background(), ConversationID(selfID, peerID), selfID, "Alice")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
