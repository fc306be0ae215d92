// Package identity generates and persists the installation's spectra IDs
// and registers them with the remote user directory.
//
// An ID has the shape "@XXX-XXX": six characters drawn from A–Z0–9, split
// into two groups of three. All generation uses crypto/rand.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID returns a fresh random identifier of the form "@XXX-XXX".
func GenerateID() (string, error) {
	buf := make([]byte, 6)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to draw random symbol: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return fmt.Sprintf("@%s-%s", buf[:3], buf[3:]), nil
}

// NormalizeID uppercases a raw identifier and prefixes "@" when absent.
// No further shape validation is performed: any string becomes a legal
// identifier once prefixed.
func NormalizeID(raw string) string {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, "@") {
		id = "@" + id
	}
	return id
}

// Service owns the identifier triple lifecycle: generate once, persist
// locally, register remotely exactly once.
type Service struct {
	settings settings.Repository
	store    docstore.Store
	log      logging.Logger
}

func NewService(repo settings.Repository, store docstore.Store, log logging.Logger) *Service {
	return &Service{settings: repo, store: store, log: log}
}

// Load returns the installation's identifier triple, generating and
// persisting it on first run. Remote registration is kicked off as a best
// effort; its failure never fails Load.
func (s *Service) Load(ctx context.Context) (models.SpectraIDs, error) {
	var ids models.SpectraIDs
	stored, err := s.settings.Get(ctx, settings.KeySpectraIDs)
	if err != nil {
		s.log.Error(ctx, "failed to read spectra ids", "error", err)
	}
	if stored != nil {
		if err := json.Unmarshal(stored, &ids); err != nil {
			s.log.Error(ctx, "stored spectra ids are corrupt, regenerating", "error", err)
			ids = models.SpectraIDs{}
		}
	}

	if ids.Family == "" || ids.Work == "" || ids.Ghost == "" {
		ids, err = generateTriple()
		if err != nil {
			return models.SpectraIDs{}, err
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return models.SpectraIDs{}, fmt.Errorf("failed to encode spectra ids: %w", err)
		}
		if err := s.settings.Set(ctx, settings.KeySpectraIDs, data); err != nil {
			s.log.Error(ctx, "failed to persist spectra ids", "error", err)
		}
	}

	if err := s.Register(ctx, ids); err != nil {
		s.log.Error(ctx, "failed to register user", "error", err)
	}

	return ids, nil
}

// generateTriple draws three identifiers and regenerates on collision so
// the triple is pairwise distinct.
func generateTriple() (models.SpectraIDs, error) {
	var ids models.SpectraIDs
	var err error

	if ids.Family, err = GenerateID(); err != nil {
		return ids, err
	}
	if ids.Work, err = GenerateID(); err != nil {
		return ids, err
	}
	for ids.Work == ids.Family {
		if ids.Work, err = GenerateID(); err != nil {
			return ids, err
		}
	}
	if ids.Ghost, err = GenerateID(); err != nil {
		return ids, err
	}
	for ids.Ghost == ids.Family || ids.Ghost == ids.Work {
		if ids.Ghost, err = GenerateID(); err != nil {
			return ids, err
		}
	}
	return ids, nil
}

// Register creates users/{id} for each persona unless already present.
// A local guard flag makes the whole operation run at most once per
// installation; the per-document existence check keeps it idempotent even
// if the guard write was lost.
func (s *Service) Register(ctx context.Context, ids models.SpectraIDs) error {
	registered, err := settings.GetString(ctx, s.settings, settings.KeyUserRegistered)
	if err != nil {
		return err
	}
	if registered == "true" {
		return nil
	}

	for persona, id := range ids.All() {
		path := "users/" + id
		if _, err := s.store.Get(ctx, path); err == nil {
			continue
		}
		err := s.store.Set(ctx, path, map[string]any{
			"spectraID": id,
			"persona":   string(persona),
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", id, err)
		}
	}

	if err := settings.SetString(ctx, s.settings, settings.KeyUserRegistered, "true"); err != nil {
		return err
	}
	s.log.Info(ctx, "user registered in remote directory")
	return nil
}
