package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// FinalizeInterview closes out a session: stores the behavioral bundle,
// computes the blended total score and attaches the AI feedback summary.
// The summary is best effort; its failure never blocks finalization.
// A nil metrics bundle means the camera never produced a usable report and
// scores the behavioral component as zero.
func (s *Service) FinalizeInterview(ctx context.Context, userID, sessionID uuid.UUID, behavioral *entities.BehavioralMetrics) (*entities.InterviewSession, error) {
	session, err := s.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsFinalized() {
		return nil, entities.ErrInterviewFinalized
	}

	var bundle entities.BehavioralMetrics
	if behavioral != nil {
		bundle = *behavioral
	}
	session.Finalize(bundle, time.Now())

	if summary := s.generateFeedbackSummary(ctx, session); summary != nil {
		session.FeedbackSummary = summary
	}

	if err := s.interviews.Update(ctx, session); err != nil {
		return nil, err
	}

	s.completeMatchingSchedules(ctx, session)

	s.logger.Info("interview finalized",
		zap.String("session_id", session.ID.String()),
		zap.Float64("total_score", session.TotalScore))

	return session, nil
}

// generateFeedbackSummary asks the model for the pros/cons wrap-up. Any
// failure returns nil and the session ships without a summary.
func (s *Service) generateFeedbackSummary(ctx context.Context, session *entities.InterviewSession) *entities.FeedbackSummary {
	if len(session.Questions) == 0 {
		return nil
	}

	raw, err := s.llm.Generate(ctx, "summary", buildSummaryPrompt(session))
	if err != nil {
		s.logger.Warn("feedback summary generation failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil
	}

	summary, err := s.parser.ParseFeedbackSummary(raw)
	if err != nil {
		s.logger.Warn("feedback summary unparseable",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil
	}
	return summary
}

// completeMatchingSchedules soft joins the finished session back to any open
// HR invitation for the same candidate, role and mode. Best effort.
func (s *Service) completeMatchingSchedules(ctx context.Context, session *entities.InterviewSession) {
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		s.logger.Warn("schedule completion check skipped, user lookup failed",
			zap.String("session_id", session.ID.String()), zap.Error(err))
		return
	}

	schedules, err := s.schedules.ListScheduledByCandidate(ctx, user.Email)
	if err != nil {
		s.logger.Warn("schedule completion check failed", zap.Error(err))
		return
	}

	for _, sched := range schedules {
		if sched.Role != session.Role || sched.Mode != session.Mode {
			continue
		}
		if session.CreatedAt.Before(sched.ScheduledAt) {
			continue
		}
		sched.MarkCompleted()
		if err := s.schedules.Update(ctx, sched); err != nil {
			s.logger.Warn("failed to mark schedule completed",
				zap.String("schedule_id", sched.ID.String()), zap.Error(err))
			continue
		}
		s.logger.Info("schedule marked completed",
			zap.String("schedule_id", sched.ID.String()),
			zap.String("session_id", session.ID.String()))
	}
}
