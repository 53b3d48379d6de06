package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"release-gateway/pkg/platform/sentinel"
)

const pgNotifyChannel = "record_store_changes"

// PostgresStore persists documents in a single table and uses LISTEN/NOTIFY
// to relay cross-process change notifications.
type PostgresStore struct {
	db         *sql.DB
	dsn        string
	log        *slog.Logger
	instanceID string
	hub        *hub
}

func NewPostgresStore(db *sql.DB, dsn string, log *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:         db,
		dsn:        dsn,
		log:        log,
		instanceID: uuid.NewString(),
		hub:        newHub(),
	}
}

// EnsureSchema creates the documents table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure records schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key Key) (json.RawMessage, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = $1`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Save(ctx context.Context, key Key, value json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, string(key), []byte(value))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	payload := s.instanceID + " " + string(key)
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, pgNotifyChannel, payload); err != nil {
		return fmt.Errorf("notify %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	s.hub.notify(key, OriginLocal)
	return nil
}

func (s *PostgresStore) Subscribe(key Key, fn ChangeFunc) (cancel func()) {
	return s.hub.add(key, fn)
}

// Listen consumes pg_notify events and dispatches external-origin
// notifications for writes made by other instances. It blocks until ctx is
// canceled.
func (s *PostgresStore) Listen(ctx context.Context) error {
	listener := pq.NewListener(s.dsn, 10*time.Second, time.Minute,
		func(_ pq.ListenerEventType, err error) {
			if err != nil {
				s.log.WarnContext(ctx, "postgres listener event", "error", err)
			}
		})
	defer listener.Close()

	if err := listener.Listen(pgNotifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", pgNotifyChannel, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-listener.Notify:
			if n == nil {
				// Connection re-established; any missed notifications are
				// covered by the next read-through.
				continue
			}
			instance, key, found := strings.Cut(n.Extra, " ")
			if !found {
				s.log.WarnContext(ctx, "malformed change notification", "payload", n.Extra)
				continue
			}
			if instance == s.instanceID {
				continue
			}
			s.hub.notify(Key(key), OriginExternal)
		}
	}
}
