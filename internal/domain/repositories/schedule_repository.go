package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// ScheduleRepository defines persistence for HR interview schedules
type ScheduleRepository interface {
	// Create persists a new schedule
	Create(ctx context.Context, schedule *entities.HrSchedule) error

	// FindByID finds a schedule by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.HrSchedule, error)

	// FindByInviteToken finds a schedule by its invitation token
	FindByInviteToken(ctx context.Context, token string) (*entities.HrSchedule, error)

	// ListScheduledByCandidate returns still-open schedules for a candidate
	// email, used to soft join finished sessions back to invitations
	ListScheduledByCandidate(ctx context.Context, email string) ([]*entities.HrSchedule, error)

	// ListByHrUser returns the HR user's schedules, soonest first
	ListByHrUser(ctx context.Context, hrUserID uuid.UUID) ([]*entities.HrSchedule, error)

	// Update writes back a schedule
	Update(ctx context.Context, schedule *entities.HrSchedule) error
}
