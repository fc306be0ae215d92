package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/HASANPOWER/Spectra-App/internal/client/burn"
	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/common"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

// MessagesFunc receives the full ordered message list after every snapshot.
type MessagesFunc func(msgs []models.Message)

// Session is one open conversation: a live message subscription plus the
// burn timers armed from it. Timers are re-derived from every snapshot, so
// a message whose burn window lapsed while the app was closed is deleted
// on the next delivery.
type Session struct {
	chatID string
	selfID string
	store  docstore.Store
	sched  *burn.Scheduler
	log    logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	unsub  docstore.UnsubscribeFunc
	closed bool
}

// OpenSession subscribes to the conversation's messages, ordered oldest
// first, and starts delivering snapshots to fn. Burn timers are armed as a
// side effect of every snapshot; Close tears them down with the
// subscription.
func OpenSession(ctx context.Context, store docstore.Store, log logging.Logger, chatID, selfID string, fn MessagesFunc) (*Session, error) {
	s := &Session{
		chatID: chatID,
		selfID: selfID,
		store:  store,
		sched:  burn.NewScheduler(),
		log:    log.With("chat", chatID),
		now:    time.Now,
	}

	q := docstore.Query{
		Collection: messagesPath(chatID),
		OrderBy:    "createdAt",
	}
	unsub, err := store.Subscribe(ctx, q, func(docs []docstore.Document) {
		msgs := s.decode(docs)
		s.arm(msgs)
		fn(msgs)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.unsub = unsub
	s.mu.Unlock()
	return s, nil
}

func (s *Session) decode(docs []docstore.Document) []models.Message {
	msgs := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		timer, _ := models.ParseBurnTimer(d.StringField("burnTimer"))
		msgs = append(msgs, models.Message{
			ID:        d.ID,
			Text:      d.StringField("text"),
			SenderID:  d.StringField("senderId"),
			CreatedAt: d.TimeField("createdAt"),
			Burn:      timer,
		})
	}
	return msgs
}

// arm reconciles the burn timers with the current snapshot. Every burning
// message gets its timer re-armed from its server timestamp; scheduling is
// idempotent per message ID, so repeated snapshots do not stack timers.
func (s *Session) arm(msgs []models.Message) {
	now := s.now()
	for _, m := range msgs {
		expiry, ok := m.ExpiresAt()
		if !ok {
			continue
		}
		id := m.ID
		s.sched.Schedule(id, expiry.Sub(now), func() {
			s.deleteBurned(id)
		})
	}
}

// deleteBurned removes one expired message. Peers run the same timer, so
// whoever fires second sees the document already gone; that is fine.
func (s *Session) deleteBurned(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, messagePath(s.chatID, id)); err != nil && !errors.Is(err, common.ErrNotFound) {
		s.log.Warn(ctx, "failed to delete burned message", "message", id, "error", err)
		return
	}
	s.log.Debug(ctx, "message burned", "message", id)
}

// Close stops snapshot delivery and cancels every pending burn timer for
// this session. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsub := s.unsub
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	s.sched.CancelAll()
}
