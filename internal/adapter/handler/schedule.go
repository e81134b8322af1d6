package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/errors"
	scheduleDTO "github.com/prevue-ai/interview-server/internal/adapter/dto/schedule"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/usecase/schedule"
)

// Schedule handles HR interview scheduling HTTP requests
type Schedule struct {
	service *schedule.Service
	logger  *zap.Logger
}

// NewSchedule creates a new schedule handler
func NewSchedule(service *schedule.Service, logger *zap.Logger) *Schedule {
	return &Schedule{service: service, logger: logger}
}

// ScheduleInterview books an interview and emails the candidate
// POST /api/questions/schedule-interview
func (h *Schedule) ScheduleInterview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req scheduleDTO.ScheduleInterviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	sched, err := h.service.ScheduleInterview(c.Request().Context(), userID, schedule.ScheduleInput{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Role:           req.Role,
		Mode:           entities.InterviewMode(req.Mode),
		Difficulty:     entities.InterviewDifficulty(req.Difficulty),
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, sched)
}

// ScheduledInterviews lists the HR user's schedules with completion state
// GET /api/questions/hr/scheduled-interviews
func (h *Schedule) ScheduledInterviews(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	items, err := h.service.ListForHR(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, items)
}

// CancelSchedule cancels a pending schedule
// DELETE /api/questions/hr/scheduled-interviews/:scheduleId
func (h *Schedule) CancelSchedule(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	scheduleID, err := uuid.Parse(c.Param("scheduleId"))
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("invalid schedule id"))
	}

	if err := h.service.CancelSchedule(c.Request().Context(), userID, scheduleID); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"message": "Schedule cancelled"})
}
