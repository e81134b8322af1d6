package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// EvaluationJobRepository handles evaluation queue data operations
type EvaluationJobRepository struct {
	db *gorm.DB
}

// NewEvaluationJobRepository creates a new evaluation job repository
func NewEvaluationJobRepository(db *gorm.DB) *EvaluationJobRepository {
	return &EvaluationJobRepository{db: db}
}

// Create enqueues a pending evaluation job
func (r *EvaluationJobRepository) Create(ctx context.Context, job *entities.EvaluationJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID retrieves an evaluation job by ID
func (r *EvaluationJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (*entities.EvaluationJob, error) {
	var job entities.EvaluationJob
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ClaimPending atomically claims up to limit pending jobs for this worker.
// Each candidate is flipped pending -> running with a conditional UPDATE;
// rows another worker claimed first report zero RowsAffected and are
// skipped.
func (r *EvaluationJobRepository) ClaimPending(ctx context.Context, limit int) ([]*entities.EvaluationJob, error) {
	if limit == 0 {
		limit = 10
	}

	var candidates []entities.EvaluationJob
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.EvaluationJobStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	claimed := make([]*entities.EvaluationJob, 0, len(candidates))
	now := time.Now()
	for i := range candidates {
		job := candidates[i]
		result := r.db.WithContext(ctx).
			Model(&entities.EvaluationJob{}).
			Where("id = ? AND status = ?", job.ID, entities.EvaluationJobStatusPending).
			Updates(map[string]interface{}{
				"status":     entities.EvaluationJobStatusRunning,
				"started_at": now,
				"updated_at": now,
			})
		if result.Error != nil {
			return claimed, result.Error
		}
		if result.RowsAffected == 0 {
			continue // lost the race to another worker
		}
		job.Status = entities.EvaluationJobStatusRunning
		job.StartedAt = &now
		claimed = append(claimed, &job)
	}
	return claimed, nil
}

// MarkDone marks a job completed
func (r *EvaluationJobRepository) MarkDone(ctx context.Context, jobID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.EvaluationJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.EvaluationJobStatusDone,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// MarkFailed marks a job failed with its final error
func (r *EvaluationJobRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.EvaluationJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.EvaluationJobStatusFailed,
			"last_error":   errMsg,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// Requeue puts a running job back in the queue after a transient failure
func (r *EvaluationJobRepository) Requeue(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.EvaluationJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"retry_count": gorm.Expr("retry_count + 1"),
			"status":      entities.EvaluationJobStatusPending,
			"last_error":  errMsg,
			"started_at":  nil,
			"updated_at":  now,
		}).Error
}

// ResetStuck requeues running jobs whose worker died mid-job
func (r *EvaluationJobRepository) ResetStuck(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := r.db.WithContext(ctx).
		Model(&entities.EvaluationJob{}).
		Where("status = ? AND started_at < ?", entities.EvaluationJobStatusRunning, cutoff).
		Updates(map[string]interface{}{
			"status":     entities.EvaluationJobStatusPending,
			"started_at": nil,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// CountByStatus returns the number of jobs in the given status
func (r *EvaluationJobRepository) CountByStatus(ctx context.Context, status entities.EvaluationJobStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.EvaluationJob{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
