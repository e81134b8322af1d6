package schedule

import "time"

// ScheduleInterviewRequest books an interview for a candidate
type ScheduleInterviewRequest struct {
	CandidateName  string    `json:"candidateName" validate:"required,min=1,max=255"`
	CandidateEmail string    `json:"candidateEmail" validate:"required,email"`
	Role           string    `json:"role" validate:"required,min=2,max=255"`
	Mode           string    `json:"mode" validate:"required,interview_mode"`
	Difficulty     string    `json:"difficulty" validate:"required,interview_difficulty"`
	ScheduledAt    time.Time `json:"scheduledAt" validate:"required"`
	Notes          string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
