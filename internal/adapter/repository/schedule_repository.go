package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// ScheduleRepository implements HR schedule persistence using GORM
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create persists a new schedule
func (r *ScheduleRepository) Create(ctx context.Context, schedule *entities.HrSchedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// FindByID finds a schedule by ID
func (r *ScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.HrSchedule, error) {
	var schedule entities.HrSchedule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return &schedule, nil
}

// FindByInviteToken finds a schedule by its invitation token
func (r *ScheduleRepository) FindByInviteToken(ctx context.Context, token string) (*entities.HrSchedule, error) {
	var schedule entities.HrSchedule
	if err := r.db.WithContext(ctx).Where("invite_token = ?", token).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule by token: %w", err)
	}
	return &schedule, nil
}

// ListScheduledByCandidate returns still-open schedules for a candidate email
func (r *ScheduleRepository) ListScheduledByCandidate(ctx context.Context, email string) ([]*entities.HrSchedule, error) {
	var schedules []*entities.HrSchedule
	if err := r.db.WithContext(ctx).
		Where("candidate_email = ? AND status = ?", strings.ToLower(strings.TrimSpace(email)), entities.HrScheduleStatusScheduled).
		Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules by candidate: %w", err)
	}
	return schedules, nil
}

// ListByHrUser returns the HR user's schedules, soonest first
func (r *ScheduleRepository) ListByHrUser(ctx context.Context, hrUserID uuid.UUID) ([]*entities.HrSchedule, error) {
	var schedules []*entities.HrSchedule
	if err := r.db.WithContext(ctx).
		Where("hr_user_id = ?", hrUserID).
		Order("scheduled_at ASC").
		Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// Update writes back a schedule
func (r *ScheduleRepository) Update(ctx context.Context, schedule *entities.HrSchedule) error {
	if err := r.db.WithContext(ctx).Save(schedule).Error; err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	return nil
}
