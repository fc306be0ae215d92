package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/HASANPOWER/Spectra-App/internal/common"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

// FirestoreStore implements Store over Google Cloud Firestore, the managed
// document database the Spectra backend runs on.
type FirestoreStore struct {
	client *firestore.Client
	log    logging.Logger
}

// NewFirestore connects to the given Firestore project. credentialsFile may
// be empty, in which case application-default credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string, log logging.Logger) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to firestore: %w", err)
	}
	return &FirestoreStore{client: client, log: log}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// encode replaces ServerTimestamp sentinels with the Firestore one.
func encode(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return common.ErrNotFound
	}
	return err
}

func toDocument(snap *firestore.DocumentSnapshot) Document {
	return Document{
		ID:   snap.Ref.ID,
		Path: relPath(snap.Ref),
		Data: snap.Data(),
	}
}

// relPath strips the projects/{p}/databases/{d}/documents/ prefix so paths
// round-trip through the Store interface unchanged.
func relPath(ref *firestore.DocumentRef) string {
	const marker = "/documents/"
	if i := strings.Index(ref.Path, marker); i >= 0 {
		return ref.Path[i+len(marker):]
	}
	return ref.Path
}

func (s *FirestoreStore) Get(ctx context.Context, path string) (Document, error) {
	snap, err := s.client.Doc(path).Get(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s: %w", path, mapErr(err))
	}
	return toDocument(snap), nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, data map[string]any) error {
	if _, err := s.client.Doc(path).Set(ctx, encode(data)); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, mapErr(err))
	}
	return nil
}

func (s *FirestoreStore) Merge(ctx context.Context, path string, data map[string]any) error {
	if _, err := s.client.Doc(path).Set(ctx, encode(data), firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge %s: %w", path, mapErr(err))
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, path string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range encode(fields) {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Doc(path).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, mapErr(err))
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, encode(data))
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, mapErr(err))
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	_, err := s.client.Doc(path).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Documents(ctx context.Context, collection string) ([]Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, mapErr(err))
		}
		docs = append(docs, toDocument(snap))
	}
}

func (s *FirestoreStore) Subscribe(ctx context.Context, q Query, fn SnapshotFunc) (UnsubscribeFunc, error) {
	fq := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}

	subCtx, cancel := context.WithCancel(ctx)
	snaps := fq.Snapshots(subCtx)

	// stopped gates fn so no callback runs after Unsubscribe returns.
	var mu sync.Mutex
	stopped := false

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if subCtx.Err() == nil {
					s.log.Error(subCtx, "snapshot stream failed", "collection", q.Collection, "error", err)
				}
				return
			}
			all, err := snap.Documents.GetAll()
			if err != nil {
				s.log.Error(subCtx, "snapshot read failed", "collection", q.Collection, "error", err)
				continue
			}
			docs := make([]Document, 0, len(all))
			for _, d := range all {
				docs = append(docs, toDocument(d))
			}
			mu.Lock()
			if !stopped {
				fn(docs)
			}
			mu.Unlock()
		}
	}()

	return func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		cancel()
	}, nil
}
