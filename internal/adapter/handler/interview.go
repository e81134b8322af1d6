package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/errors"
	interviewDTO "github.com/prevue-ai/interview-server/internal/adapter/dto/interview"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/usecase/behavior"
	"github.com/prevue-ai/interview-server/internal/usecase/interview"
	"github.com/prevue-ai/interview-server/internal/usecase/resume"
)

// Interview handles the interview lifecycle HTTP requests
type Interview struct {
	service *interview.Service
	resumes *resume.Service
	logger  *zap.Logger
}

// NewInterview creates a new interview handler
func NewInterview(service *interview.Service, resumes *resume.Service, logger *zap.Logger) *Interview {
	return &Interview{service: service, resumes: resumes, logger: logger}
}

// CreateInterview starts a new session
// POST /api/questions/create-interview
func (h *Interview) CreateInterview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req interviewDTO.CreateInterviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	session, err := h.service.CreateInterview(c.Request().Context(), userID,
		req.Role, entities.InterviewMode(req.Mode), entities.InterviewDifficulty(req.Difficulty), req.ResumeContext)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, session)
}

// NextQuestion generates the next interview question
// POST /api/questions/next-question
func (h *Interview) NextQuestion(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req interviewDTO.NextQuestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("invalid interview id"))
	}

	session, err := h.service.GetSession(c.Request().Context(), sessionID, userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	history := make([]interview.HistoryItem, 0, len(req.History))
	for _, item := range req.History {
		history = append(history, interview.HistoryItem{Question: item.Question, Answer: item.Answer})
	}

	question, err := h.service.NextQuestion(c.Request().Context(), interview.NextQuestionInput{
		Role:           session.Role,
		Mode:           session.Mode,
		Difficulty:     session.Difficulty,
		QuestionNumber: req.QuestionNumber,
		History:        history,
		LastQuestion:   req.LastQuestion,
		LastAnswer:     req.LastAnswer,
		ResumeContext:  session.ResumeContext,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return handleSuccess(c, h.logger, map[string]interface{}{
		"question":       question,
		"questionNumber": req.QuestionNumber,
		"totalQuestions": h.service.TotalQuestions(),
	})
}

// Evaluate queues an answer for asynchronous scoring. The response
// returns as soon as the job is stored; scores land on the session
// when a worker picks it up.
// POST /api/questions/evaluate
func (h *Interview) Evaluate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req interviewDTO.EvaluateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("invalid interview id"))
	}

	job, err := h.service.EnqueueEvaluation(c.Request().Context(), userID, sessionID,
		req.QuestionNumber, req.Question, req.Answer)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return handleSuccess(c, h.logger, map[string]interface{}{
		"jobId":  job.ID,
		"status": job.Status,
	})
}

// FinalizeInterview closes a session with its behavioral scores
// POST /api/questions/finalize-interview
func (h *Interview) FinalizeInterview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req interviewDTO.FinalizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}
	sessionID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("invalid interview id"))
	}

	bundle := behavioralBundle(&req)
	session, err := h.service.FinalizeInterview(c.Request().Context(), userID, sessionID, bundle)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, session)
}

// UserInterviews lists the caller's sessions, newest first
// GET /api/questions/user-interviews
func (h *Interview) UserInterviews(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	sessions, err := h.service.UserInterviews(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, sessions)
}

// Analytics aggregates the caller's finalized sessions
// GET /api/questions/analytics
func (h *Interview) Analytics(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	result, err := h.service.Analytics(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, result)
}

// ExtractRoleFromResume suggests an interview role from a resume upload
// POST /api/questions/extract-role-from-resume
func (h *Interview) ExtractRoleFromResume(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return handleError(c, h.logger, err)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("resume file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer file.Close()

	extraction, err := h.resumes.ExtractRole(c.Request().Context(), file,
		fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, extraction)
}

// behavioralBundle resolves the request to a metrics bundle. Raw frames
// take precedence so server-side aggregation stays authoritative when
// both are sent. Zero face frames in the sample means no report, which
// finalizes with all-zero behavioral scores.
func behavioralBundle(req *interviewDTO.FinalizeRequest) *entities.BehavioralMetrics {
	if len(req.Frames) > 0 {
		frames := make([]behavior.Frame, 0, len(req.Frames))
		for _, f := range req.Frames {
			frames = append(frames, behavior.Frame{
				Faces:       f.Faces,
				CenterX:     f.CenterX,
				CenterY:     f.CenterY,
				BoxWidth:    f.BoxWidth,
				EyeOpenness: f.EyeOpenness,
			})
		}
		report := behavior.Analyze(frames)
		if report == nil {
			return nil
		}
		metrics := report.ToMetrics()
		return &metrics
	}

	if req.Behavioral == nil {
		return nil
	}
	return &entities.BehavioralMetrics{
		EyeContact:      req.Behavioral.EyeContact,
		Confidence:      req.Behavioral.Confidence,
		Engagement:      req.Behavioral.Engagement,
		Professionalism: req.Behavioral.Professionalism,
		Stability:       req.Behavioral.Stability,
		FacePresence:    req.Behavioral.FacePresence,
		BlinkRate:       req.Behavioral.BlinkRate,
	}
}
