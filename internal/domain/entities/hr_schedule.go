package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HrScheduleStatus tracks the lifecycle of a scheduled interview
type HrScheduleStatus string

const (
	HrScheduleStatusScheduled HrScheduleStatus = "scheduled"
	HrScheduleStatusCompleted HrScheduleStatus = "completed"
	HrScheduleStatusCancelled HrScheduleStatus = "cancelled"
)

// GuestAccessWindow is how long after the scheduled time an invitation link
// keeps working.
const GuestAccessWindow = 24 * time.Hour

// HrSchedule is an interview an HR user booked for an external candidate.
// The candidate joins through a tokenized invitation link without an
// existing account.
type HrSchedule struct {
	ID             uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HrUserID       uuid.UUID           `json:"hr_user_id" gorm:"type:uuid;not null;index"`
	CandidateName  string              `json:"candidate_name" gorm:"type:varchar(255);not null"`
	CandidateEmail string              `json:"candidate_email" gorm:"type:varchar(255);not null;index"`
	Role           string              `json:"role" gorm:"type:varchar(255);not null"`
	Mode           InterviewMode       `json:"mode" gorm:"type:varchar(20);not null"`
	Difficulty     InterviewDifficulty `json:"difficulty" gorm:"type:varchar(20);not null"`
	ScheduledAt    time.Time           `json:"scheduled_at" gorm:"type:timestamp;not null;index"`
	Notes          string              `json:"notes,omitempty" gorm:"type:varchar(1000)"`
	Status         HrScheduleStatus    `json:"status" gorm:"type:varchar(20);not null;default:'scheduled';index"`

	InviteToken      string     `json:"-" gorm:"type:varchar(128);uniqueIndex;not null"`
	InvitationSentAt *time.Time `json:"invitation_sent_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewHrSchedule creates a scheduled interview invitation
func NewHrSchedule(hrUserID uuid.UUID, candidateName, candidateEmail, role string, mode InterviewMode, difficulty InterviewDifficulty, scheduledAt time.Time, notes, inviteToken string) *HrSchedule {
	now := time.Now()
	return &HrSchedule{
		ID:             uuid.New(),
		HrUserID:       hrUserID,
		CandidateName:  candidateName,
		CandidateEmail: strings.ToLower(strings.TrimSpace(candidateEmail)),
		Role:           role,
		Mode:           mode,
		Difficulty:     difficulty,
		ScheduledAt:    scheduledAt,
		Notes:          notes,
		Status:         HrScheduleStatusScheduled,
		InviteToken:    inviteToken,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsExpired reports whether the guest-access window has closed
func (s *HrSchedule) IsExpired(now time.Time) bool {
	return now.After(s.ScheduledAt.Add(GuestAccessWindow))
}

// MatchesCandidate checks an email against the invited candidate,
// case-insensitively.
func (s *HrSchedule) MatchesCandidate(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), s.CandidateEmail)
}

// MarkCompleted flips the schedule to completed
func (s *HrSchedule) MarkCompleted() {
	s.Status = HrScheduleStatusCompleted
	s.UpdatedAt = time.Now()
}

// MarkInvitationSent records when the invitation email went out
func (s *HrSchedule) MarkInvitationSent(at time.Time) {
	s.InvitationSentAt = &at
	s.UpdatedAt = at
}

// TableName specifies the table name for GORM
func (HrSchedule) TableName() string {
	return "hr_schedules"
}
