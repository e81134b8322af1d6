package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// EnqueueEvaluation validates the request, persists a pending job and
// returns. The caller gets an acknowledgement immediately; scoring happens
// in the worker pool.
func (s *Service) EnqueueEvaluation(ctx context.Context, userID, sessionID uuid.UUID, questionNumber int, question, answer string) (*entities.EvaluationJob, error) {
	if question == "" || answer == "" {
		return nil, entities.ErrInvalidRequest
	}
	if questionNumber < 1 || questionNumber > s.cfg.TotalQuestions {
		return nil, entities.ErrQuestionOutOfRange
	}

	session, err := s.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsFinalized() {
		return nil, entities.ErrInterviewFinalized
	}

	job := entities.NewEvaluationJob(sessionID, userID, questionNumber, question, answer)
	job.MaxRetries = s.cfg.EvalMaxRetries
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue evaluation: %w", err)
	}

	s.logger.Info("evaluation enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("session_id", sessionID.String()),
		zap.Int("question_number", questionNumber))

	return job, nil
}

// ProcessJob runs one evaluation end to end: ideal answer, scoring, record
// upsert, aggregate refresh. Exposed so tests can drive jobs synchronously;
// the worker pool is just a loop around it.
func (s *Service) ProcessJob(ctx context.Context, job *entities.EvaluationJob) error {
	session, err := s.interviews.FindByID(ctx, job.SessionID)
	if err != nil {
		return fmt.Errorf("session lookup failed: %w", err)
	}
	if session.IsFinalized() {
		// Finalized sessions are immutable; late jobs are dropped.
		return fmt.Errorf("invalid: session %s already finalized", session.ID)
	}

	idealAnswer, err := s.llm.Generate(ctx, "ideal_answer",
		buildIdealAnswerPrompt(session.Role, session.Mode, session.Difficulty, job.Question))
	if err != nil {
		return fmt.Errorf("ideal answer generation failed: %w", err)
	}

	rawEval, err := s.llm.Generate(ctx, "evaluation",
		buildEvaluationPrompt(job.Question, idealAnswer, job.Answer))
	if err != nil {
		return fmt.Errorf("evaluation generation failed: %w", err)
	}

	eval := s.parser.ParseEvaluation(rawEval)
	if eval.Correctness == nil {
		s.logger.Warn("evaluation reply was not parseable, storing raw feedback",
			zap.String("job_id", job.ID.String()))
	}

	now := time.Now()
	session.UpsertQuestion(entities.QuestionRecord{
		QuestionNumber: job.QuestionNumber,
		Question:       job.Question,
		Answer:         job.Answer,
		IdealAnswer:    idealAnswer,
		Correctness:    eval.Correctness,
		Depth:          eval.Depth,
		Structure:      eval.Structure,
		Feedback:       eval.Feedback,
		EvaluatedAt:    &now,
	})
	session.RecomputeVerbalAggregates()

	if err := s.interviews.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to store evaluation: %w", err)
	}

	return nil
}
