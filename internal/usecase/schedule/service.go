package schedule

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/domain/repositories"
	"github.com/prevue-ai/interview-server/pkg/mailer"
)

// Service lets HR users schedule interviews for candidates and track
// whether the candidates completed them.
type Service struct {
	schedules  repositories.ScheduleRepository
	interviews repositories.InterviewRepository
	users      repositories.UserRepository
	mailer     *mailer.Mailer
	clientURL  string
	logger     *zap.Logger
}

// NewService creates a new schedule service
func NewService(
	schedules repositories.ScheduleRepository,
	interviews repositories.InterviewRepository,
	users repositories.UserRepository,
	mail *mailer.Mailer,
	clientURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		schedules:  schedules,
		interviews: interviews,
		users:      users,
		mailer:     mail,
		clientURL:  clientURL,
		logger:     logger,
	}
}

// ScheduleInput is the validated request to schedule an interview
type ScheduleInput struct {
	CandidateName  string
	CandidateEmail string
	Role           string
	Mode           entities.InterviewMode
	Difficulty     entities.InterviewDifficulty
	ScheduledAt    time.Time
	Notes          string
}

// ScheduleInterview creates the schedule and emails the candidate an
// invitation link. The email is best effort; a delivery failure leaves
// the schedule in place and is reported on the response instead.
func (s *Service) ScheduleInterview(ctx context.Context, hrUserID uuid.UUID, in ScheduleInput) (*entities.HrSchedule, error) {
	if !in.Mode.IsValid() {
		return nil, apperrors.ErrInvalidArgument("invalid interview mode")
	}
	if !in.Difficulty.IsValid() {
		return nil, apperrors.ErrInvalidArgument("invalid interview difficulty")
	}
	if in.ScheduledAt.Before(time.Now().Add(-time.Minute)) {
		return nil, apperrors.ErrInvalidArgument("scheduled time must be in the future")
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	schedule := entities.NewHrSchedule(hrUserID, in.CandidateName, in.CandidateEmail,
		in.Role, in.Mode, in.Difficulty, in.ScheduledAt, in.Notes, token)

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.logger.Info("interview scheduled",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("role", in.Role),
		zap.Time("scheduled_at", in.ScheduledAt))

	if err := s.sendInvitation(schedule); err != nil {
		s.logger.Error("failed to send invitation email",
			zap.String("schedule_id", schedule.ID.String()), zap.Error(err))
	} else {
		schedule.MarkInvitationSent(time.Now())
		if err := s.schedules.Update(ctx, schedule); err != nil {
			s.logger.Warn("failed to record invitation timestamp", zap.Error(err))
		}
	}

	return schedule, nil
}

// ScheduledInterview is a schedule enriched with completion state for
// the HR dashboard.
type ScheduledInterview struct {
	*entities.HrSchedule
	Completed bool `json:"completed"`
	Expired   bool `json:"expired"`
}

// ListForHR returns the HR user's schedules with a completion flag. A
// schedule counts as completed when the candidate finished a session
// for the same role and mode after the scheduled time. Opportunistic
// status writes keep the dashboard consistent across reloads.
func (s *Service) ListForHR(ctx context.Context, hrUserID uuid.UUID) ([]*ScheduledInterview, error) {
	schedules, err := s.schedules.ListByHrUser(ctx, hrUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	now := time.Now()
	out := make([]*ScheduledInterview, 0, len(schedules))
	for _, sched := range schedules {
		item := &ScheduledInterview{
			HrSchedule: sched,
			Completed:  sched.Status == entities.HrScheduleStatusCompleted,
			Expired:    sched.Status == entities.HrScheduleStatusScheduled && sched.IsExpired(now),
		}

		if !item.Completed && sched.Status == entities.HrScheduleStatusScheduled {
			if done := s.candidateCompleted(ctx, sched); done {
				item.Completed = true
				sched.MarkCompleted()
				if err := s.schedules.Update(ctx, sched); err != nil {
					s.logger.Warn("failed to mark schedule completed",
						zap.String("schedule_id", sched.ID.String()), zap.Error(err))
				}
			}
		}

		out = append(out, item)
	}
	return out, nil
}

// GetSchedule returns one schedule, restricted to its owner
func (s *Service) GetSchedule(ctx context.Context, hrUserID, scheduleID uuid.UUID) (*entities.HrSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if err == entities.ErrScheduleNotFound {
			return nil, apperrors.ErrScheduleNotFound()
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	if schedule.HrUserID != hrUserID {
		return nil, apperrors.ErrForbidden("schedule belongs to another user")
	}
	return schedule, nil
}

// CancelSchedule marks a pending schedule cancelled
func (s *Service) CancelSchedule(ctx context.Context, hrUserID, scheduleID uuid.UUID) error {
	schedule, err := s.GetSchedule(ctx, hrUserID, scheduleID)
	if err != nil {
		return err
	}
	if schedule.Status != entities.HrScheduleStatusScheduled {
		return apperrors.ErrInvalidArgument("only pending schedules can be cancelled")
	}

	schedule.Status = entities.HrScheduleStatusCancelled
	schedule.UpdatedAt = time.Now()
	return s.schedules.Update(ctx, schedule)
}

func (s *Service) candidateCompleted(ctx context.Context, sched *entities.HrSchedule) bool {
	candidate, err := s.users.FindByEmail(ctx, sched.CandidateEmail)
	if err != nil {
		return false
	}
	done, err := s.interviews.HasCompletedSince(ctx, candidate.ID, sched.Role, sched.Mode, sched.ScheduledAt)
	if err != nil {
		s.logger.Warn("failed to check schedule completion",
			zap.String("schedule_id", sched.ID.String()), zap.Error(err))
		return false
	}
	return done
}

func (s *Service) sendInvitation(schedule *entities.HrSchedule) error {
	link := fmt.Sprintf("%s/guest-access/%s", s.clientURL, schedule.InviteToken)
	body := fmt.Sprintf(
		"Hi %s,\n\nYou have been invited to a %s mock interview for the role of %s.\n\n"+
			"Scheduled for: %s\n\n"+
			"Join here: %s\n\n"+
			"The link stays valid for 24 hours after the scheduled time.\n",
		schedule.CandidateName, schedule.Mode, schedule.Role,
		schedule.ScheduledAt.Format("Mon, 2 Jan 2006 15:04 MST"), link)

	return s.mailer.Send(schedule.CandidateEmail, "Your PREVUE.AI interview invitation", body)
}

func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
