package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

var _ configuration.Store = (*Store)(nil)

// Revision is one stored version of a configuration.
type Revision struct {
	ID            int64                       `json:"id"`
	UID           string                      `json:"uid"`
	Configuration configuration.Configuration `json:"configuration"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

// PutSchema inserts or replaces a content-type schema.
func (s *Store) PutSchema(ctx context.Context, sch schema.Schema) error {
	if err := sch.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(sch)
	if err != nil {
		return fmt.Errorf("sqlite: encode schema %s: %w", sch.UID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content_types (uid, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		sch.UID, string(doc), s.now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: put schema %s: %w", sch.UID, err)
	}
	return nil
}

// PutConfiguration stores cfg without recording a revision. It is meant for
// seeding; edits go through UpdateConfiguration.
func (s *Store) PutConfiguration(ctx context.Context, cfg configuration.Configuration) error {
	return s.writeConfiguration(ctx, s.db, cfg)
}

// ListSchemas returns the uids of every stored content type in order.
func (s *Store) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uid FROM content_types ORDER BY uid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list schemas: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("sqlite: scan schema uid: %w", err)
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// FetchSchema implements configuration.SchemaFetcher.
func (s *Store) FetchSchema(ctx context.Context, uid string) (schema.Schema, error) {
	return fetchSchema(ctx, s.db, uid)
}

// FetchConfiguration implements configuration.ConfigurationFetcher. A known
// content type without a stored configuration gets the default one.
func (s *Store) FetchConfiguration(ctx context.Context, uid string) (configuration.Configuration, error) {
	return fetchConfiguration(ctx, s.db, uid)
}

// UpdateConfiguration implements configuration.ConfigurationUpdater. The new
// record and its revision are written in one transaction.
func (s *Store) UpdateConfiguration(ctx context.Context, uid string, sub configuration.Submission) (configuration.Configuration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return configuration.Configuration{}, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := fetchConfiguration(ctx, tx, uid)
	if err != nil {
		return configuration.Configuration{}, err
	}
	next := current.Apply(sub)

	if err := s.writeConfiguration(ctx, tx, next); err != nil {
		return configuration.Configuration{}, err
	}
	doc, err := json.Marshal(next)
	if err != nil {
		return configuration.Configuration{}, fmt.Errorf("sqlite: encode revision %s: %w", uid, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO configuration_revisions (uid, document, created_at) VALUES (?, ?, ?)`,
		uid, string(doc), s.now().UTC()); err != nil {
		return configuration.Configuration{}, fmt.Errorf("sqlite: insert revision %s: %w", uid, err)
	}
	if err := tx.Commit(); err != nil {
		return configuration.Configuration{}, fmt.Errorf("sqlite: commit %s: %w", uid, err)
	}

	s.logger.Info("configuration updated", zap.String("uid", uid), zap.Int("rows", len(sub.Layout)))
	return next, nil
}

// History returns up to limit revisions of uid, newest first. limit <= 0
// returns all of them.
func (s *Store) History(ctx context.Context, uid string, limit int) ([]Revision, error) {
	query := `SELECT id, uid, document, created_at FROM configuration_revisions WHERE uid = ? ORDER BY id DESC`
	args := []any{uid}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history %s: %w", uid, err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev Revision
			doc string
		)
		if err := rows.Scan(&rev.ID, &rev.UID, &doc, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan revision: %w", err)
		}
		if err := json.Unmarshal([]byte(doc), &rev.Configuration); err != nil {
			return nil, fmt.Errorf("sqlite: decode revision %d: %w", rev.ID, err)
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) writeConfiguration(ctx context.Context, q queryer, cfg configuration.Configuration) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sqlite: encode configuration %s: %w", cfg.UID, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO configurations (uid, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		cfg.UID, string(doc), s.now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: write configuration %s: %w", cfg.UID, err)
	}
	return nil
}

func fetchSchema(ctx context.Context, q queryer, uid string) (schema.Schema, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT document FROM content_types WHERE uid = ?`, uid).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Schema{}, fmt.Errorf("sqlite: schema %s: %w", uid, configuration.ErrNotFound)
	}
	if err != nil {
		return schema.Schema{}, fmt.Errorf("sqlite: fetch schema %s: %w", uid, err)
	}
	return schema.ParseBytes([]byte(doc), "sqlite:content_types/"+uid)
}

func fetchConfiguration(ctx context.Context, q queryer, uid string) (configuration.Configuration, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT document FROM configurations WHERE uid = ?`, uid).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		sch, serr := fetchSchema(ctx, q, uid)
		if serr != nil {
			return configuration.Configuration{}, serr
		}
		return configuration.Default(sch), nil
	}
	if err != nil {
		return configuration.Configuration{}, fmt.Errorf("sqlite: fetch configuration %s: %w", uid, err)
	}
	return configuration.ParseBytes([]byte(doc), "sqlite:configurations/"+uid)
}
