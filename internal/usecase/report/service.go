package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/domain/repositories"
)

// Service renders feedback reports for finalized interviews
type Service struct {
	interviews repositories.InterviewRepository
	users      repositories.UserRepository
	logger     *zap.Logger
}

// NewService creates a new report service
func NewService(interviews repositories.InterviewRepository, users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{interviews: interviews, users: users, logger: logger}
}

// Report is a rendered PDF plus its download filename
type Report struct {
	PDF      []byte
	Filename string
}

// FeedbackReport renders the PDF for one finalized session. Sessions
// belonging to other users report not-found rather than forbidden so
// the endpoint does not confirm which IDs exist.
func (s *Service) FeedbackReport(ctx context.Context, userID, sessionID uuid.UUID) (*Report, error) {
	session, err := s.interviews.FindByID(ctx, sessionID)
	if err != nil {
		if err == entities.ErrInterviewNotFound {
			return nil, apperrors.ErrInterviewNotFound(sessionID.String())
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.UserID != userID {
		return nil, apperrors.ErrInterviewNotFound(sessionID.String())
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	pdf, err := renderFeedbackPDF(user, session)
	if err != nil {
		s.logger.Error("failed to render feedback report",
			zap.String("session_id", sessionID.String()), zap.Error(err))
		return nil, apperrors.ErrReportGenerationFailed(err)
	}

	return &Report{
		PDF:      pdf,
		Filename: reportFilename(user.Name, session),
	}, nil
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func reportFilename(name string, session *entities.InterviewSession) string {
	date := session.CreatedAt
	if session.FinalizedAt != nil {
		date = *session.FinalizedAt
	}
	clean := func(s string) string {
		return filenameSanitizer.ReplaceAllString(strings.TrimSpace(s), "_")
	}
	return fmt.Sprintf("%s_%s_%s.pdf", clean(name), clean(session.Role), date.Format("2-Jan-2006"))
}
