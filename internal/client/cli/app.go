// Package cli is the interactive terminal frontend of the Spectra client.
// It wires the local database, the remote document store and the domain
// services, then drives them from a small REPL.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/HASANPOWER/Spectra-App/internal/client/app"
	"github.com/HASANPOWER/Spectra-App/internal/client/chat"
	"github.com/HASANPOWER/Spectra-App/internal/client/client"
	"github.com/HASANPOWER/Spectra-App/internal/client/config"
	"github.com/HASANPOWER/Spectra-App/internal/client/identity"
	"github.com/HASANPOWER/Spectra-App/internal/client/securestore"
	"github.com/HASANPOWER/Spectra-App/internal/client/security"
	"github.com/HASANPOWER/Spectra-App/internal/docstore"
	"github.com/HASANPOWER/Spectra-App/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	repos    *client.Repositories
	store    docstore.Store
	state    *app.State
	security *security.Manager
	identity *identity.Service
	chats    *chat.Service
	reader   *bufio.Reader

	mu    sync.Mutex
	inbox *chat.Inbox
	rows  []chat.Row
}

// NewApp builds the full client from configuration: local SQLite settings,
// PIN storage (OS keyring when available, encrypted database rows
// otherwise), the remote document store and the services over them.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(parseLevel(cfg.LogLevel))

	repos, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := docstore.NewFirestore(ctx, cfg.FirestoreProject, cfg.CredentialsFile, log)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	var secrets securestore.SecretStore
	if kr := securestore.NewKeyringStore(); kr.Available(ctx) {
		secrets = kr
	} else {
		log.Warn(ctx, "OS keyring unavailable, storing PIN encrypted in the database")
		secrets = securestore.NewEncryptedStore(repos.Settings)
	}

	return &App{
		config:   cfg,
		log:      log,
		repos:    repos,
		store:    store,
		state:    app.NewState(repos.Settings, log),
		security: security.NewManager(repos.Settings, secrets, security.NoBiometrics{}, log),
		identity: identity.NewService(repos.Settings, store, log),
		chats:    chat.NewService(store, log),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Run loads persisted state, walks the unlock gate and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.security.Load(ctx)

	ids, err := a.identity.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load identities: %w", err)
	}
	if err := a.state.Load(ctx, ids); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	if !a.unlock(ctx) {
		return nil
	}

	if err := a.openInbox(ctx); err != nil {
		a.log.Error(ctx, "failed to open inbox", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

// status renders the prompt decoration: persona and active ID.
func (a *App) status() string {
	return fmt.Sprintf("%s %s", a.state.Persona(), a.state.ActiveID())
}

// openInbox (re)subscribes the conversation list for the active identity.
func (a *App) openInbox(ctx context.Context) error {
	a.mu.Lock()
	if a.inbox != nil {
		a.inbox.Close()
		a.inbox = nil
		a.rows = nil
	}
	a.mu.Unlock()

	inbox, err := chat.OpenInbox(ctx, a.store, a.log, a.state.ActiveID(), func(rows []chat.Row) {
		a.mu.Lock()
		a.rows = rows
		a.mu.Unlock()
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.inbox = inbox
	a.mu.Unlock()
	return nil
}

func (a *App) currentRows() []chat.Row {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rows
}

// Close releases the inbox, the store connection and the local database.
func (a *App) Close() {
	a.mu.Lock()
	if a.inbox != nil {
		a.inbox.Close()
		a.inbox = nil
	}
	a.mu.Unlock()

	if err := a.store.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close store", "error", err)
	}
	if err := a.repos.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close database", "error", err)
	}
}
