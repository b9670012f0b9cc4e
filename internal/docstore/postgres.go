package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore keeps documents in a single jsonb table keyed by
// (collection, id).
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store backed by db.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the documents table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return nil
}

// Query returns documents in collection whose field matches any of values.
func (s *PostgresStore) Query(ctx context.Context, collection, field string, values []string) ([]Document, error) {
	query := `
		SELECT id, data FROM documents
		WHERE collection = $1 AND data->>$2 = ANY($3)
	`
	rows, err := s.db.QueryContext(ctx, query, collection, field, pq.Array(values))
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// List returns up to limit documents ordered by orderField descending.
// A limit of 0 translates to LIMIT NULL, i.e. no limit.
func (s *PostgresStore) List(ctx context.Context, collection, orderField string, limit int) ([]Document, error) {
	query := `
		SELECT id, data FROM documents
		WHERE collection = $1
		ORDER BY data->>$2 DESC
		LIMIT NULLIF($3, 0)
	`
	rows, err := s.db.QueryContext(ctx, query, collection, orderField, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// BatchPut inserts every write in a single transaction.
func (s *PostgresStore) BatchPut(ctx context.Context, writes []Write) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(writes))
	for _, w := range writes {
		id := uuid.New().String()
		raw, err := json.Marshal(w.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
			w.Collection, id, string(raw),
		); err != nil {
			return nil, fmt.Errorf("failed to insert document: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return ids, nil
}

// Update merges fields into the stored document's jsonb data.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $3 WHERE collection = $1 AND id = $2`,
		collection, id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every document in collection.
func (s *PostgresStore) DeleteAll(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1`, collection,
	); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		data := make(map[string]any)
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return docs, nil
}

var _ Store = (*PostgresStore)(nil)
