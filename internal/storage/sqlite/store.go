package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const ideaColumns = `id, title, description, tags_json, category, status, user_id,
	likes, is_archived, metadata_json, created_at, updated_at`

// Store implements storage.Storage on an embedded SQLite file.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and applies the schema.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single connection: SQLite has one writer
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("failed to get user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS ideas (
		  id            TEXT PRIMARY KEY,
		  title         TEXT NOT NULL,
		  description   TEXT NOT NULL,
		  tags_json     TEXT NOT NULL DEFAULT '[]',
		  category      TEXT,
		  status        TEXT NOT NULL DEFAULT 'DRAFT',
		  user_id       TEXT NOT NULL,
		  likes         INTEGER NOT NULL DEFAULT 0,
		  is_archived   INTEGER NOT NULL DEFAULT 0,
		  metadata_json TEXT,
		  created_at    INTEGER NOT NULL,
		  updated_at    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_ideas_user_created
		ON ideas(user_id, created_at DESC)
		WHERE is_archived = 0;
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

func (s *Store) CreateIdea(ctx context.Context, idea *domain.Idea) (*domain.Idea, error) {
	now := time.Now().UTC()
	stored := *idea
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Status == "" {
		stored.Status = domain.StatusDraft
	}
	if stored.Tags == nil {
		stored.Tags = []string{}
	}

	tagsJSON, err := json.Marshal([]string(stored.Tags))
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ideas (`+ideaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Title, stored.Description, string(tagsJSON),
		toNullString(stored.Category), string(stored.Status), stored.UserID,
		stored.Likes, stored.IsArchived, toNullJSON(stored.Metadata),
		stored.CreatedAt.UnixNano(), stored.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Store) GetIdeaByID(ctx context.Context, id string) (*domain.Idea, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)
	return scanIdea(row)
}

func (s *Store) ListIdeas(ctx context.Context, userID string) ([]*domain.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ideaColumns+`
		FROM ideas
		WHERE user_id = ? AND is_archived = 0
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := make([]*domain.Idea, 0)
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

func (s *Store) UpdateIdea(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	idea, err := scanIdea(tx.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	patch.Apply(idea)
	idea.UpdatedAt = time.Now().UTC()

	tagsJSON, err := json.Marshal([]string(idea.Tags))
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE ideas
		SET title = ?, description = ?, tags_json = ?, category = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		idea.Title, idea.Description, string(tagsJSON), toNullString(idea.Category),
		string(idea.Status), idea.UpdatedAt.UnixNano(), id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *Store) DeleteIdea(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IncrementLikes bumps the counter with a single UPDATE ... RETURNING statement.
func (s *Store) IncrementLikes(ctx context.Context, id string) (*domain.Idea, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE ideas
		SET likes = likes + 1, updated_at = ?
		WHERE id = ?
		RETURNING `+ideaColumns,
		time.Now().UTC().UnixNano(), id,
	)
	return scanIdea(row)
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(row scanner) (*domain.Idea, error) {
	var (
		idea                 domain.Idea
		tagsJSON             string
		category, metadata   sql.NullString
		status               string
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&idea.ID, &idea.Title, &idea.Description, &tagsJSON, &category, &status,
		&idea.UserID, &idea.Likes, &idea.IsArchived, &metadata, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil, fmt.Errorf("corrupt tags for idea %s: %w", idea.ID, err)
	}
	if tags == nil {
		tags = []string{}
	}
	idea.Tags = tags
	idea.Status = domain.Status(status)
	if category.Valid {
		c := category.String
		idea.Category = &c
	}
	if metadata.Valid {
		idea.Metadata = []byte(metadata.String)
	}
	idea.CreatedAt = time.Unix(0, createdAt).UTC()
	idea.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &idea, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullJSON(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
