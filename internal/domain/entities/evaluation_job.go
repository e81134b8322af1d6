package entities

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationJobStatus represents the status of an answer evaluation job
type EvaluationJobStatus string

const (
	EvaluationJobStatusPending EvaluationJobStatus = "pending" // Waiting for a worker
	EvaluationJobStatusRunning EvaluationJobStatus = "running" // Claimed by a worker
	EvaluationJobStatusDone    EvaluationJobStatus = "done"    // Record upserted into the session
	EvaluationJobStatusFailed  EvaluationJobStatus = "failed"  // Gave up after retries
)

// EvaluationJob is one queued answer evaluation. The HTTP handler enqueues
// and returns immediately; a worker claims the job, calls the model twice
// (ideal answer, then scoring) and writes the result into the session.
type EvaluationJob struct {
	ID             uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID      uuid.UUID           `json:"session_id" gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;index"`
	QuestionNumber int                 `json:"question_number" gorm:"type:integer;not null"`
	Question       string              `json:"question" gorm:"type:text;not null"`
	Answer         string              `json:"answer" gorm:"type:text;not null"`
	Status         EvaluationJobStatus `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"type:integer;default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewEvaluationJob creates a pending evaluation job
func NewEvaluationJob(sessionID, userID uuid.UUID, questionNumber int, question, answer string) *EvaluationJob {
	return &EvaluationJob{
		ID:             uuid.New(),
		SessionID:      sessionID,
		UserID:         userID,
		QuestionNumber: questionNumber,
		Question:       question,
		Answer:         answer,
		Status:         EvaluationJobStatusPending,
		RetryCount:     0,
		MaxRetries:     3,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// IsRetryable checks if job can be retried
func (j *EvaluationJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// MarkAsRunning marks job as claimed by a worker
func (j *EvaluationJob) MarkAsRunning() {
	j.Status = EvaluationJobStatusRunning
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkAsDone marks job as completed successfully
func (j *EvaluationJob) MarkAsDone() {
	j.Status = EvaluationJobStatusDone
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed marks job as failed with error message
func (j *EvaluationJob) MarkAsFailed(errMsg string) {
	j.Status = EvaluationJobStatusFailed
	j.LastError = &errMsg
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// IncrementRetry puts the job back in the queue after a transient failure
func (j *EvaluationJob) IncrementRetry(errMsg string) {
	j.RetryCount++
	j.Status = EvaluationJobStatusPending
	j.LastError = &errMsg
	j.StartedAt = nil
	j.UpdatedAt = time.Now()
}

// TableName specifies the table name for GORM
func (EvaluationJob) TableName() string {
	return "evaluation_jobs"
}
