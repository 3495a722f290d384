// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	sq "github.com/Masterminds/squirrel"
	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillswap/admin-api/internal/pkg/log"
	"github.com/skillswap/admin-api/internal/platform/config"
)

// fieldNamePattern limits queryable child fields to plain identifiers so the
// JSONB path expression can be interpolated safely.
var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// documentsChannel carries the mutated path from the table trigger. Every
// writer, this process or any other, raises it on commit, so bound views
// refresh on external mutations too.
const documentsChannel = "documents_changed"

const (
	listenerMinReconnect = time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// PostgresStore implements Store on a single JSONB documents table.
type PostgresStore struct {
	db       *sqlx.DB
	builder  sq.StatementBuilderType
	watcher  *watcher
	listener *pq.Listener
}

// NewPostgresStore connects to PostgreSQL and prepares the documents table.
func NewPostgresStore(ctx context.Context, cfg config.PostgreSQLConfig) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s := &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	s.watcher = newWatcher(s)

	if err := s.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.listener = pq.NewListener(cfg.DSN, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error("store: change listener event: %v", err)
		}
	})
	if err := s.listener.Listen(documentsChannel); err != nil {
		s.listener.Close()
		db.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", documentsChannel, err)
	}
	go s.listenChanges()

	return s, nil
}

// listenChanges feeds change notifications from the database into the
// watcher. Runs until the listener is closed.
func (s *PostgresStore) listenChanges() {
	for {
		select {
		case n, ok := <-s.listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				// The connection was re-established and notifications may
				// have been missed; refresh every subscribed path.
				for _, path := range s.watcher.activePaths() {
					s.watcher.notify(context.Background(), path)
				}
				continue
			}
			s.watcher.notify(context.Background(), n.Extra)
		case <-time.After(listenerPingInterval):
			if err := s.listener.Ping(); err != nil {
				log.Error("store: change listener ping failed: %v", err)
			}
		}
	}
}

// initializeSchema creates the documents table and its indexes.
// Idempotent; production deployments can manage this via migrations instead.
func (s *PostgresStore) initializeSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			path VARCHAR(255) NOT NULL,
			doc_key VARCHAR(255) NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (path, doc_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_path_id ON documents (path, id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_data_gin ON documents USING GIN (data)`,
		`CREATE OR REPLACE FUNCTION documents_notify() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('` + documentsChannel + `', COALESCE(NEW.path, OLD.path));
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS documents_changed_trigger ON documents`,
		`CREATE TRIGGER documents_changed_trigger
			AFTER INSERT OR UPDATE OR DELETE ON documents
			FOR EACH ROW EXECUTE FUNCTION documents_notify()`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			log.Error("PostgreSQL schema initialization error: %s", err.Error())
			return err
		}
	}

	return nil
}

type documentRow struct {
	DocKey string `db:"doc_key"`
	Data   []byte `db:"data"`
}

func (r documentRow) toDocument() (Document, error) {
	data := make(map[string]interface{})
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal document %s: %w", r.DocKey, err)
	}
	return Document{Key: r.DocKey, Data: data}, nil
}

// Read returns the full ordered contents of a path.
func (s *PostgresStore) Read(ctx context.Context, path string) (Snapshot, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	query, args, err := s.builder.
		Select("doc_key", "data").
		From("documents").
		Where(sq.Eq{"path": path}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build read query: %w", err)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snapshot := make(Snapshot, 0, len(rows))
	for _, row := range rows {
		doc, err := row.toDocument()
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, doc)
	}
	return snapshot, nil
}

// Get returns a single document.
func (s *PostgresStore) Get(ctx context.Context, path, key string) (Document, error) {
	if path == "" {
		return Document{}, ErrInvalidPath
	}

	query, args, err := s.builder.
		Select("doc_key", "data").
		From("documents").
		Where(sq.Eq{"path": path, "doc_key": key}).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("failed to build get query: %w", err)
	}

	var row documentRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return row.toDocument()
}

// Write sets the full value of a document, creating it if needed.
func (s *PostgresStore) Write(ctx context.Context, path, key string, data map[string]interface{}) error {
	if path == "" {
		return ErrInvalidPath
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal document data: %w", err)
	}

	query := `INSERT INTO documents (path, doc_key, data) VALUES ($1, $2, $3)
		ON CONFLICT (path, doc_key) DO UPDATE SET data = EXCLUDED.data`
	if _, err := s.db.ExecContext(ctx, query, path, key, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Update merge-updates the named fields of an existing document.
func (s *PostgresStore) Update(ctx context.Context, path, key string, partial map[string]interface{}) error {
	if path == "" {
		return ErrInvalidPath
	}

	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to marshal partial update: %w", err)
	}

	// JSONB concatenation performs the shallow merge.
	query := `UPDATE documents SET data = data || $3 WHERE path = $1 AND doc_key = $2`
	result, err := s.db.ExecContext(ctx, query, path, key, raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Push appends a new document with a generated key and returns the key.
func (s *PostgresStore) Push(ctx context.Context, path string, data map[string]interface{}) (string, error) {
	if path == "" {
		return "", ErrInvalidPath
	}

	key := uuid.Must(uuid.NewV4()).String()

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document data: %w", err)
	}

	query := `INSERT INTO documents (path, doc_key, data) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, path, key, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return key, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *PostgresStore) Delete(ctx context.Context, path, key string) error {
	if path == "" {
		return ErrInvalidPath
	}

	query, args, err := s.builder.
		Delete("documents").
		Where(sq.Eq{"path": path, "doc_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Query returns documents whose named child field equals value exactly.
func (s *PostgresStore) Query(ctx context.Context, path, field, value string) (Snapshot, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	if !fieldNamePattern.MatchString(field) {
		return nil, fmt.Errorf("invalid query field %q", field)
	}

	query, args, err := s.builder.
		Select("doc_key", "data").
		From("documents").
		Where(sq.Eq{"path": path}).
		Where(sq.Expr(fmt.Sprintf("data->>'%s' = ?", field), value)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build field query: %w", err)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snapshot := make(Snapshot, 0, len(rows))
	for _, row := range rows {
		doc, err := row.toDocument()
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, doc)
	}
	return snapshot, nil
}

// Subscribe delivers the current snapshot immediately, then a replacement
// snapshot after every mutation of the path, whichever process performed it.
func (s *PostgresStore) Subscribe(ctx context.Context, path string) (<-chan Snapshot, func()) {
	ch, cancel := s.watcher.subscribe(path)

	snapshot, err := s.Read(ctx, path)
	if err != nil {
		log.Error("store: initial read of %s failed: %v", path, err)
		snapshot = Snapshot{}
	}
	deliver(ch, snapshot)

	return ch, cancel
}

// Close releases the change listener, all subscriptions and the pool.
func (s *PostgresStore) Close() error {
	if s.listener != nil {
		s.listener.Close()
	}
	s.watcher.closeAll()
	return s.db.Close()
}
