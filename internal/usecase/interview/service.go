package interview

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/domain/repositories"
	"github.com/prevue-ai/interview-server/pkg/config"
)

// Generator produces text from a prompt. kind labels the call in metrics.
type Generator interface {
	Generate(ctx context.Context, kind, prompt string) (string, error)
}

// Service runs the interview pipeline: question generation, the evaluation
// queue, finalization and analytics.
type Service struct {
	interviews repositories.InterviewRepository
	jobs       repositories.EvaluationJobRepository
	schedules  repositories.ScheduleRepository
	users      repositories.UserRepository
	llm        Generator
	parser     *Parser
	logger     *zap.Logger
	cfg        config.InterviewConfig

	workerStopChan chan struct{}
	workerWg       sync.WaitGroup
	workerMutex    sync.Mutex
}

// NewService creates the interview service
func NewService(
	interviews repositories.InterviewRepository,
	jobs repositories.EvaluationJobRepository,
	schedules repositories.ScheduleRepository,
	users repositories.UserRepository,
	llm Generator,
	cfg config.InterviewConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		interviews: interviews,
		jobs:       jobs,
		schedules:  schedules,
		users:      users,
		llm:        llm,
		parser:     NewParser(),
		logger:     logger,
		cfg:        cfg,
	}
}

// CreateInterview opens a new session for the user
func (s *Service) CreateInterview(ctx context.Context, userID uuid.UUID, role string, mode entities.InterviewMode, difficulty entities.InterviewDifficulty, resumeContext string) (*entities.InterviewSession, error) {
	if role == "" {
		return nil, entities.ErrInvalidRequest
	}
	if !mode.IsValid() {
		return nil, entities.ErrInvalidMode
	}
	if !difficulty.IsValid() {
		return nil, entities.ErrInvalidDifficulty
	}

	session := entities.NewInterviewSession(userID, role, mode, difficulty)
	session.ResumeContext = resumeContext
	if err := s.interviews.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	s.logger.Info("interview created",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", role),
		zap.String("mode", string(mode)))

	return session, nil
}

// GetSession loads a session and checks ownership
func (s *Service) GetSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error) {
	session, err := s.interviews.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, entities.ErrForbidden
	}
	return session, nil
}

// UserInterviews returns all of the user's sessions, newest first
func (s *Service) UserInterviews(ctx context.Context, userID uuid.UUID) ([]*entities.InterviewSession, error) {
	return s.interviews.ListByUser(ctx, userID, 0)
}

// TotalQuestions returns the configured interview length
func (s *Service) TotalQuestions() int {
	return s.cfg.TotalQuestions
}
