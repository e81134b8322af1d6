package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// GuestAccessResponse carries the signed-in guest plus the interview
// the invitation was for, so the client can start it directly.
type GuestAccessResponse struct {
	*AuthResponse
	Schedule *entities.HrSchedule `json:"schedule"`
}

// GuestAccess exchanges an invitation token for a signed-in session.
// Links stop working 24 hours after the scheduled time. When a signed-in
// user follows someone else's invitation the request is rejected rather
// than silently switching accounts.
func (s *Service) GuestAccess(ctx context.Context, inviteToken string, current *entities.User) (*GuestAccessResponse, error) {
	schedule, err := s.schedules.FindByInviteToken(ctx, inviteToken)
	if err != nil {
		if err == entities.ErrScheduleNotFound {
			return nil, apperrors.ErrScheduleNotFound()
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}

	if schedule.Status == entities.HrScheduleStatusCancelled || schedule.IsExpired(time.Now()) {
		return nil, apperrors.ErrScheduleExpired()
	}

	if current != nil && !schedule.MatchesCandidate(current.Email) {
		return nil, apperrors.ErrScheduleEmailMismatch()
	}

	user, err := s.users.FindByEmail(ctx, schedule.CandidateEmail)
	if err != nil {
		if err != entities.ErrUserNotFound {
			return nil, fmt.Errorf("failed to find candidate: %w", err)
		}
		user = entities.NewGuestUser(schedule.CandidateEmail, guestName(schedule))
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to provision guest user: %w", err)
		}
		s.logger.Info("guest user provisioned",
			zap.String("user_id", user.ID.String()),
			zap.String("schedule_id", schedule.ID.String()))
	}

	auth, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &GuestAccessResponse{AuthResponse: auth, Schedule: schedule}, nil
}

func guestName(schedule *entities.HrSchedule) string {
	if name := strings.TrimSpace(schedule.CandidateName); name != "" {
		return name
	}
	// fall back to the mailbox part of the address
	at := strings.IndexByte(schedule.CandidateEmail, '@')
	if at > 0 {
		return schedule.CandidateEmail[:at]
	}
	return "Guest"
}
