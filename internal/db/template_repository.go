package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignorehub/ignorehub/internal/templates"
)

// Template repository errors.
var (
	ErrIndexNotCached = errors.New("template index not cached")
)

const (
	metaKeySnapshotID  = "snapshot_id"
	metaKeyRefreshedAt = "refreshed_at"
)

// CacheMeta describes the cached index snapshot.
type CacheMeta struct {
	SnapshotID  string
	RefreshedAt time.Time
}

// Fresh reports whether the snapshot is younger than ttl.
func (m CacheMeta) Fresh(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(m.RefreshedAt) < ttl
}

// TemplateRepository persists template index snapshots.
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// ReplaceIndex swaps the cached snapshot wholesale in one transaction and
// stamps it with a fresh snapshot id.
func (r *TemplateRepository) ReplaceIndex(ctx context.Context, records []templates.Template) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM templates`); err != nil {
		return fmt.Errorf("clear cached templates: %w", err)
	}

	for position, record := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO templates (id, name, path, kind, position)
			VALUES (?, ?, ?, ?, ?)
		`, record.ID, record.Name, record.Path, string(record.Kind), position)
		if err != nil {
			return fmt.Errorf("insert template %s: %w", record.ID, err)
		}
	}

	meta := map[string]string{
		metaKeySnapshotID:  uuid.New().String(),
		metaKeyRefreshedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cache_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("store cache meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index replace: %w", err)
	}
	return nil
}

// ListTemplates restores the cached snapshot in its original order.
func (r *TemplateRepository) ListTemplates(ctx context.Context) ([]templates.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, path, kind FROM templates ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query cached templates: %w", err)
	}
	defer rows.Close()

	var records []templates.Template
	for rows.Next() {
		var record templates.Template
		var kind string
		if err := rows.Scan(&record.ID, &record.Name, &record.Path, &kind); err != nil {
			return nil, fmt.Errorf("scan cached template: %w", err)
		}
		record.Kind = templates.Kind(kind)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached templates: %w", err)
	}

	return records, nil
}

// Meta returns the snapshot metadata, or ErrIndexNotCached when no
// snapshot has been stored yet.
func (r *TemplateRepository) Meta(ctx context.Context) (*CacheMeta, error) {
	var meta CacheMeta

	if err := r.db.QueryRowContext(ctx, `
		SELECT value FROM cache_meta WHERE key = ?
	`, metaKeySnapshotID).Scan(&meta.SnapshotID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIndexNotCached
		}
		return nil, fmt.Errorf("read snapshot id: %w", err)
	}

	var refreshedAt string
	if err := r.db.QueryRowContext(ctx, `
		SELECT value FROM cache_meta WHERE key = ?
	`, metaKeyRefreshedAt).Scan(&refreshedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIndexNotCached
		}
		return nil, fmt.Errorf("read refresh time: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, refreshedAt); err == nil {
		meta.RefreshedAt = t
	}

	return &meta, nil
}
