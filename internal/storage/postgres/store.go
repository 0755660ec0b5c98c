package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/google/uuid"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store implements storage.Storage on PostgreSQL through GORM.
type Store struct {
	db *gorm.DB
}

// New connects to dsn and migrates the ideas table.
func New(dsn string, logLevel logger.LogLevel) (*Store, error) {
	// SQL logging goes through the process-wide slog handler.
	gormLog := logger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Idea{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) CreateIdea(ctx context.Context, idea *domain.Idea) (*domain.Idea, error) {
	if idea.Status == "" {
		idea.Status = domain.StatusDraft
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if err := s.db.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, err
	}
	// ID, CreatedAt and UpdatedAt are filled in by GORM
	return idea, nil
}

func (s *Store) GetIdeaByID(ctx context.Context, id string) (*domain.Idea, error) {
	if !validID(id) {
		return nil, storage.ErrNotFound
	}
	var idea domain.Idea
	if err := s.db.WithContext(ctx).First(&idea, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &idea, nil
}

func (s *Store) ListIdeas(ctx context.Context, userID string) ([]*domain.Idea, error) {
	ideas := make([]*domain.Idea, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&ideas).Error
	return ideas, err
}

func (s *Store) UpdateIdea(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error) {
	if !validID(id) {
		return nil, storage.ErrNotFound
	}

	var idea domain.Idea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&idea, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		patch.Apply(&idea)
		return tx.Model(&idea).Updates(map[string]any{
			"title":       idea.Title,
			"description": idea.Description,
			"tags":        idea.Tags,
			"category":    idea.Category,
			"status":      idea.Status,
			"updated_at":  time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func (s *Store) DeleteIdea(ctx context.Context, id string) error {
	if !validID(id) {
		return storage.ErrNotFound
	}
	res := s.db.WithContext(ctx).Delete(&domain.Idea{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IncrementLikes runs a single UPDATE ... SET likes = likes + 1 RETURNING *,
// so the increment happens inside the database.
func (s *Store) IncrementLikes(ctx context.Context, id string) (*domain.Idea, error) {
	if !validID(id) {
		return nil, storage.ErrNotFound
	}

	var idea domain.Idea
	res := s.db.WithContext(ctx).
		Model(&idea).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"likes":      gorm.Expr("likes + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return &idea, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// validID filters out ids that postgres would reject as malformed uuids.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}
