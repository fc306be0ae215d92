// Package docstore abstracts the remote document database the client syncs
// through. The interface is the minimal surface the app needs: point reads
// and writes of documents addressed by slash-separated paths, plus live
// queries that push full result-set snapshots.
//
// Two implementations exist: Firestore (production) and Memory (tests).
// The remote store is the arbiter of persisted truth; the client only holds
// a live read-through cache in the form of delivered snapshots.
package docstore

import (
	"context"
	"time"
)

// Document is one stored document.
type Document struct {
	// ID is the last path segment.
	ID string

	// Path is the full document path, e.g. "chats/@A_@B/messages/xyz".
	Path string

	// Data holds the decoded fields. Timestamps decode as time.Time.
	Data map[string]any
}

// serverTimestamp is the sentinel type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp marks a field to be populated with the store's own clock
// at write time. Used so both participants agree on message ordering
// regardless of device clock skew.
var ServerTimestamp = serverTimestamp{}

// Op is a query filter operator.
type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

// Filter restricts a query to documents whose field matches Value under Op.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query describes a live query over one collection.
type Query struct {
	// Collection is the slash-separated collection path, e.g. "chats" or
	// "chats/@A_@B/messages".
	Collection string

	Filters []Filter

	// OrderBy names the sort field; empty means store order.
	OrderBy string
	Desc    bool
}

// SnapshotFunc receives the full current result set of a live query. It is
// invoked once with the initial results and again after every change.
type SnapshotFunc func(docs []Document)

// UnsubscribeFunc stops snapshot delivery. After it returns, the snapshot
// callback will not be invoked again.
type UnsubscribeFunc func()

// Store is the document-store client surface.
//
// Path conventions follow the remote schema: "users/{id}",
// "chats/{conversationID}" and "chats/{conversationID}/messages/{id}".
type Store interface {
	// Get reads one document. Missing documents yield common.ErrNotFound.
	Get(ctx context.Context, path string) (Document, error)

	// Set writes the full document, creating it if absent.
	Set(ctx context.Context, path string, data map[string]any) error

	// Merge upserts only the given fields, preserving others.
	Merge(ctx context.Context, path string, data map[string]any) error

	// Update modifies fields of an existing document. Missing documents
	// yield common.ErrNotFound.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Add creates a document with a generated ID and returns the ID.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// Delete removes a document. Deleting an absent document is not an
	// error: burn deletes race with snapshot deliveries.
	Delete(ctx context.Context, path string) error

	// Documents lists every document currently in a collection.
	Documents(ctx context.Context, collection string) ([]Document, error)

	// Subscribe starts a live query. The callback fires with the initial
	// result set and after every subsequent change until unsubscribed.
	Subscribe(ctx context.Context, q Query, fn SnapshotFunc) (UnsubscribeFunc, error)

	// Close releases the underlying connection.
	Close() error
}

// StringField reads a string field, "" when absent or mistyped.
func (d Document) StringField(name string) string {
	s, _ := d.Data[name].(string)
	return s
}

// TimeField reads a timestamp field, zero time when absent or unresolved.
func (d Document) TimeField(name string) time.Time {
	ts, _ := d.Data[name].(time.Time)
	return ts
}

// StringsField reads a field as a string slice, tolerating []any decoding.
func (d Document) StringsField(name string) []string {
	switch v := d.Data[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
