package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/common"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

// Service performs conversation and message operations against the remote
// store. It is stateless; live state lives in Inbox and Session.
type Service struct {
	store docstore.Store
	log   logging.Logger
}

func NewService(store docstore.Store, log logging.Logger) *Service {
	return &Service{store: store, log: log}
}

// Send writes one message into a conversation. The conversation document
// is merge-written first so the chat list reflects the latest message even
// when the conversation is brand new. Both writes carry server timestamps.
//
// On failure the caller should restore text into the input field; the
// returned error wraps the cause.
func (s *Service) Send(ctx context.Context, chatID, chatName string, persona models.Persona, selfID, text string, timer models.BurnTimer) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return common.ErrEmptyMessage
	}
	if len([]rune(text)) > common.MaxMessageLen {
		return common.ErrMessageTooLong
	}
	if selfID == "" {
		return fmt.Errorf("no active spectra id")
	}

	err := s.store.Merge(ctx, chatDocPath(chatID), map[string]any{
		"updatedAt":    docstore.ServerTimestamp,
		"participants": Participants(chatID),
		"lastMessage":  text,
		"chatName":     chatName,
		"persona":      string(persona),
	})
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}

	_, err = s.store.Add(ctx, messagesPath(chatID), map[string]any{
		"text":      text,
		"senderId":  strings.ToUpper(selfID),
		"burnTimer": string(timer),
		"createdAt": docstore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// StartChat resolves a raw peer identifier into a conversation. The peer
// must exist in the remote user directory; chatting with yourself is
// rejected. Returns the conversation ID and the initial chat name (the
// normalized peer ID).
func (s *Service) StartChat(ctx context.Context, selfID, rawPeer string) (chatID, chatName string, err error) {
	peer := normalizePeer(rawPeer)
	if peer == "" {
		return "", "", fmt.Errorf("peer id: %w", common.ErrNotFound)
	}
	if peer == strings.ToUpper(selfID) {
		return "", "", common.ErrSelfChat
	}

	if _, err := s.store.Get(ctx, "users/"+peer); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", fmt.Errorf("user %s: %w", peer, common.ErrNotFound)
		}
		return "", "", fmt.Errorf("failed to look up %s: %w", peer, err)
	}

	return ConversationID(selfID, peer), peer, nil
}

// ClearHistory deletes every message document of a conversation. Individual
// delete failures abort with the first error; already-deleted messages do
// not count as failures.
func (s *Service) ClearHistory(ctx context.Context, chatID string) error {
	docs, err := s.store.Documents(ctx, messagesPath(chatID))
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	for _, d := range docs {
		if err := s.store.Delete(ctx, messagePath(chatID, d.ID)); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}
	s.log.Info(ctx, "chat history cleared", "chat", chatID, "deleted", len(docs))
	return nil
}

// SaveNickname stores a nickname for the other participant of chatID. The
// write targets the positional display-name slot of the other participant
// and also refreshes the top-level chatName.
func (s *Service) SaveNickname(ctx context.Context, chatID, selfID, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return fmt.Errorf("empty nickname: %w", common.ErrEmptyMessage)
	}

	field := nicknameField(Participants(chatID), selfID)
	err := s.store.Update(ctx, chatDocPath(chatID), map[string]any{
		field:      nickname,
		"chatName": nickname,
	})
	if err != nil {
		return fmt.Errorf("failed to save nickname: %w", err)
	}
	return nil
}
