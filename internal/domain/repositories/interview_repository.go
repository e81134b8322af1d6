package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// InterviewRepository defines persistence operations for interview sessions
type InterviewRepository interface {
	// Create persists a new session
	Create(ctx context.Context, session *entities.InterviewSession) error

	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error)

	// Update writes back the whole session, question map included
	Update(ctx context.Context, session *entities.InterviewSession) error

	// ListByUser returns the user's sessions newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.InterviewSession, error)

	// ListFinalizedByUser returns only finalized sessions, newest first
	ListFinalizedByUser(ctx context.Context, userID uuid.UUID) ([]*entities.InterviewSession, error)

	// HasCompletedSince reports whether the user finished a session for the
	// given role and mode created at or after the given time. Used to soft
	// join HR schedules to sessions.
	HasCompletedSince(ctx context.Context, userID uuid.UUID, role string, mode entities.InterviewMode, since time.Time) (bool, error)
}

// EvaluationJobRepository defines persistence for the evaluation queue
type EvaluationJobRepository interface {
	// Create enqueues a pending job
	Create(ctx context.Context, job *entities.EvaluationJob) error

	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.EvaluationJob, error)

	// ClaimPending atomically moves up to limit pending jobs to running and
	// returns the claimed jobs. A job only ever goes to one worker.
	ClaimPending(ctx context.Context, limit int) ([]*entities.EvaluationJob, error)

	// MarkDone marks a job completed
	MarkDone(ctx context.Context, jobID uuid.UUID) error

	// MarkFailed marks a job failed with its final error
	MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error

	// Requeue puts a running job back to pending and bumps its retry count
	Requeue(ctx context.Context, jobID uuid.UUID, errMsg string) error

	// ResetStuck requeues running jobs older than the given age. Covers
	// workers that died mid-job.
	ResetStuck(ctx context.Context, olderThan time.Duration) (int64, error)

	// CountByStatus returns the number of jobs in the given status
	CountByStatus(ctx context.Context, status entities.EvaluationJobStatus) (int64, error)
}
