package docstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HASANPOWER/Spectra-App/internal/common"
)

// MemoryStore is an in-process Store used by tests and offline development.
// Snapshot delivery is synchronous with the mutating call, which makes
// ordering in tests deterministic; Unsubscribe also takes effect
// synchronously as the Store contract requires.
type MemoryStore struct {
	mu sync.Mutex
	// collections maps collection path → document ID → fields.
	collections map[string]map[string]map[string]any
	subs        map[int]*memSub
	nextSub     int

	// Now is the clock used to resolve ServerTimestamp sentinels.
	// Overridable in tests.
	Now func() time.Time
}

type memSub struct {
	q  Query
	fn SnapshotFunc

	mu      sync.Mutex
	stopped bool
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		subs:        make(map[int]*memSub),
		Now:         time.Now,
	}
}

func (s *MemoryStore) Close() error { return nil }

// splitPath separates "chats/@A_@B/messages/xyz" into the collection path
// and the document ID.
func splitPath(path string) (collection, id string, err error) {
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("invalid document path %q", path)
	}
	return path[:i], path[i+1:], nil
}

func (s *MemoryStore) resolve(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = s.Now()
			continue
		}
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	col, id, err := splitPath(path)
	if err != nil {
		return Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collections[col][id]
	if !ok {
		return Document{}, fmt.Errorf("failed to get %s: %w", path, common.ErrNotFound)
	}
	return Document{ID: id, Path: path, Data: cloneData(data)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, data map[string]any) error {
	col, id, err := splitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.collections[col] == nil {
		s.collections[col] = make(map[string]map[string]any)
	}
	s.collections[col][id] = s.resolve(data)
	subs := s.matchingSubs(col)
	s.mu.Unlock()
	s.notify(subs)
	return nil
}

func (s *MemoryStore) Merge(ctx context.Context, path string, data map[string]any) error {
	col, id, err := splitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.collections[col] == nil {
		s.collections[col] = make(map[string]map[string]any)
	}
	existing := s.collections[col][id]
	if existing == nil {
		existing = make(map[string]any)
		s.collections[col][id] = existing
	}
	for k, v := range s.resolve(data) {
		existing[k] = v
	}
	subs := s.matchingSubs(col)
	s.mu.Unlock()
	s.notify(subs)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	col, id, err := splitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	existing, ok := s.collections[col][id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("failed to update %s: %w", path, common.ErrNotFound)
	}
	for k, v := range s.resolve(fields) {
		existing[k] = v
	}
	subs := s.matchingSubs(col)
	s.mu.Unlock()
	s.notify(subs)
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	col, id, err := splitPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	_, existed := s.collections[col][id]
	delete(s.collections[col], id)
	var subs []*memSub
	if existed {
		subs = s.matchingSubs(col)
	}
	s.mu.Unlock()
	s.notify(subs)
	return nil
}

func (s *MemoryStore) Documents(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(Query{Collection: collection}), nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, q Query, fn SnapshotFunc) (UnsubscribeFunc, error) {
	sub := &memSub{q: q, fn: fn}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	initial := s.collect(q)
	s.mu.Unlock()

	// Initial snapshot, like the remote store's listener behavior.
	sub.deliver(initial)

	return func() {
		sub.mu.Lock()
		sub.stopped = true
		sub.mu.Unlock()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}, nil
}

func (sub *memSub) deliver(docs []Document) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.stopped {
		sub.fn(docs)
	}
}

// matchingSubs is called with s.mu held; it snapshots the subscribers and
// their current result sets so delivery can happen outside the store lock.
func (s *MemoryStore) matchingSubs(collection string) []*memSub {
	var out []*memSub
	for _, sub := range s.subs {
		if sub.q.Collection == collection {
			out = append(out, sub)
		}
	}
	return out
}

func (s *MemoryStore) notify(subs []*memSub) {
	for _, sub := range subs {
		s.mu.Lock()
		docs := s.collect(sub.q)
		s.mu.Unlock()
		sub.deliver(docs)
	}
}

// collect runs a query against current state. Caller holds s.mu.
func (s *MemoryStore) collect(q Query) []Document {
	var docs []Document
	for id, data := range s.collections[q.Collection] {
		d := Document{ID: id, Path: q.Collection + "/" + id, Data: cloneData(data)}
		if matches(d, q.Filters) {
			docs = append(docs, d)
		}
	}
	if q.OrderBy != "" {
		sort.Slice(docs, func(i, j int) bool {
			less := fieldLess(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if q.Desc {
				return !less && !fieldEqual(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			}
			return less
		})
	} else {
		sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}
	return docs
}

func matches(d Document, filters []Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case OpEqual:
			if d.Data[f.Field] != f.Value {
				return false
			}
		case OpArrayContains:
			found := false
			for _, v := range d.StringsField(f.Field) {
				if v == f.Value {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func fieldLess(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	}
	return false
}

func fieldEqual(a, b any) bool {
	if av, ok := a.(time.Time); ok {
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return a == b
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
