package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

// Row is one conversation in the inbox list, ready for display.
type Row struct {
	ChatID      string
	Name        string
	LastMessage string
	UpdatedAt   time.Time

	// When formats UpdatedAt relative to the local day: clock time today,
	// "Yesterday", the weekday inside a week, month and day beyond that.
	When string
}

// RowsFunc receives the full inbox after every snapshot, newest first.
type RowsFunc func(rows []Row)

// Inbox is the live list of conversations the active identity takes part
// in. Each identity sees only its own conversations; switching personas
// means closing this inbox and opening one for the new ID.
type Inbox struct {
	selfID string
	log    logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	unsub  docstore.UnsubscribeFunc
	closed bool
}

// OpenInbox subscribes to every conversation whose participants include
// selfID, most recently updated first.
func OpenInbox(ctx context.Context, store docstore.Store, log logging.Logger, selfID string, fn RowsFunc) (*Inbox, error) {
	in := &Inbox{
		selfID: strings.ToUpper(selfID),
		log:    log.With("spectraID", selfID),
		now:    time.Now,
	}

	q := docstore.Query{
		Collection: "chats",
		Filters: []docstore.Filter{
			{Field: "participants", Op: docstore.OpArrayContains, Value: in.selfID},
		},
		OrderBy: "updatedAt",
		Desc:    true,
	}
	unsub, err := store.Subscribe(ctx, q, func(docs []docstore.Document) {
		fn(in.decode(docs))
	})
	if err != nil {
		return nil, err
	}

	in.mu.Lock()
	in.unsub = unsub
	in.mu.Unlock()
	return in, nil
}

func (in *Inbox) decode(docs []docstore.Document) []Row {
	rows := make([]Row, 0, len(docs))
	for _, d := range docs {
		c := toConversation(d)
		rows = append(rows, Row{
			ChatID:      c.ID,
			Name:        in.displayName(c),
			LastMessage: c.LastMessage,
			UpdatedAt:   c.UpdatedAt,
			When:        bucketTime(c.UpdatedAt, in.now()),
		})
	}
	return rows
}

func toConversation(d docstore.Document) models.Conversation {
	participants := d.StringsField("participants")
	if len(participants) == 0 {
		participants = Participants(d.ID)
	}
	persona, _ := models.ParsePersona(d.StringField("persona"))
	return models.Conversation{
		ID:               d.ID,
		Participants:     participants,
		LastMessage:      d.StringField("lastMessage"),
		ChatName:         d.StringField("chatName"),
		Persona:          persona,
		UpdatedAt:        d.TimeField("updatedAt"),
		DisplayNameUser1: d.StringField("displayName_user1"),
		DisplayNameUser2: d.StringField("displayName_user2"),
	}
}

// displayName resolves what to call a conversation: the nickname stored in
// the other participant's positional slot wins, then the chatName field,
// then the other participant's raw ID.
func (in *Inbox) displayName(c models.Conversation) string {
	other := c.Other(in.selfID)
	if nick := c.DisplayNameFor(other); nick != "" {
		return nick
	}
	if c.ChatName != "" {
		return c.ChatName
	}
	return other
}

// bucketTime renders ts relative to the day containing now.
func bucketTime(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	ts = ts.Local()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch days := int(dayStart.Sub(ts).Hours()/24) + 1; {
	case !ts.Before(dayStart):
		return ts.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return ts.Weekday().String()
	default:
		return fmt.Sprintf("%s %d", ts.Month().String()[:3], ts.Day())
	}
}

// Close stops snapshot delivery. Safe to call more than once.
func (in *Inbox) Close() {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return
	}
	in.closed = true
	unsub := in.unsub
	in.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
