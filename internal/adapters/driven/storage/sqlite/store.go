package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// Fixed keys in the local_state table. The document list and the session
// live under these names; timestamps inside the values are RFC3339.
const (
	keyDocuments = "documents"
	keySession   = "session"
)

// Store is the SQLite-backed durable local state. It exposes the
// SessionStore and StateStore interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store at the specified data directory.
// If dataDir is empty, defaults to ~/.askdoc/data/state.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdoc", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// StateStore returns a StateStore interface backed by this store.
func (s *Store) StateStore() driven.StateStore {
	return &stateStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// setState upserts a value under a fixed key.
func (s *Store) setState(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving state %q: %w", key, err)
	}
	return nil
}

// getState reads a value by key. Returns domain.ErrNotFound when absent.
func (s *Store) getState(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM local_state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("reading state %q: %w", key, err)
	}
	return value, nil
}

// deleteState removes a key.
func (s *Store) deleteState(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM local_state WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}

// ==================== State Store ====================

// persistedDocument is the serialised form of a document record.
// Timestamps travel as RFC3339 strings and are parsed back on load.
type persistedDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	CreatedAt string `json:"created_at"`
}

// stateStore implements driven.StateStore.
type stateStore struct {
	store *Store
}

var _ driven.StateStore = (*stateStore)(nil)

// SaveDocuments stores a snapshot of the document list under the fixed
// documents key.
func (s *stateStore) SaveDocuments(ctx context.Context, recs []domain.DocumentRecord) error {
	persisted := make([]persistedDocument, 0, len(recs))
	for _, rec := range recs {
		persisted = append(persisted, persistedDocument{
			ID:        rec.ID,
			Title:     rec.Title,
			Status:    rec.Status.String(),
			Progress:  rec.Progress,
			CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshalling documents: %w", err)
	}
	return s.store.setState(ctx, keyDocuments, string(data))
}

// LoadDocuments retrieves the stored list, rehydrating timestamps.
func (s *stateStore) LoadDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	value, err := s.store.getState(ctx, keyDocuments)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var persisted []persistedDocument
	if err := json.Unmarshal([]byte(value), &persisted); err != nil {
		return nil, fmt.Errorf("unmarshalling documents: %w", err)
	}

	recs := make([]domain.DocumentRecord, 0, len(persisted))
	for _, p := range persisted {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for %s: %w", p.ID, err)
		}
		recs = append(recs, domain.DocumentRecord{
			ID:        p.ID,
			Title:     p.Title,
			Status:    domain.DocumentStatus(p.Status),
			Progress:  p.Progress,
			CreatedAt: createdAt,
		})
	}
	return recs, nil
}

// ==================== Session Store ====================

// persistedSession is the serialised form of the user session.
type persistedSession struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores the session under the fixed session key.
func (s *sessionStore) Save(ctx context.Context, session domain.UserSession) error {
	data, err := json.Marshal(persistedSession{
		Email: session.Email,
		Token: session.Token,
	})
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	return s.store.setState(ctx, keySession, string(data))
}

// Load retrieves the stored session.
func (s *sessionStore) Load(ctx context.Context) (*domain.UserSession, error) {
	value, err := s.store.getState(ctx, keySession)
	if err != nil {
		return nil, err
	}

	var p persistedSession
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return nil, fmt.Errorf("unmarshalling session: %w", err)
	}
	return &domain.UserSession{Email: p.Email, Token: p.Token}, nil
}

// Clear removes the stored session.
func (s *sessionStore) Clear(ctx context.Context) error {
	return s.store.deleteState(ctx, keySession)
}
