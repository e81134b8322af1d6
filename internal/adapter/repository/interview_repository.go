package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// InterviewRepository implements interview session persistence using GORM
type InterviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

// Create persists a new session
func (r *InterviewRepository) Create(ctx context.Context, session *entities.InterviewSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

// FindByID finds a session by ID
func (r *InterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

// Update writes back the whole session, question map included
func (r *InterviewRepository) Update(ctx context.Context, session *entities.InterviewSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to update interview session: %w", err)
	}
	return nil
}

// ListByUser returns the user's sessions newest first
func (r *InterviewRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.InterviewSession, error) {
	var sessions []*entities.InterviewSession
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	return sessions, nil
}

// ListFinalizedByUser returns only finalized sessions, newest first
func (r *InterviewRepository) ListFinalizedByUser(ctx context.Context, userID uuid.UUID) ([]*entities.InterviewSession, error) {
	var sessions []*entities.InterviewSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND finalized_at IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list finalized sessions: %w", err)
	}
	return sessions, nil
}

// HasCompletedSince reports whether the user finished a matching session
// created at or after the given time
func (r *InterviewRepository) HasCompletedSince(ctx context.Context, userID uuid.UUID, role string, mode entities.InterviewMode, since time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("user_id = ? AND role = ? AND mode = ? AND finalized_at IS NOT NULL AND created_at >= ?",
			userID, role, mode, since).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check completed sessions: %w", err)
	}
	return count > 0, nil
}
