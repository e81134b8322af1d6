package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/usecase/report"
)

// Report handles PDF feedback report downloads
type Report struct {
	service *report.Service
	logger  *zap.Logger
}

// NewReport creates a new report handler
func NewReport(service *report.Service, logger *zap.Logger) *Report {
	return &Report{service: service, logger: logger}
}

// FeedbackReport streams the PDF for one finalized interview
// GET /api/pdf/feedback-report/:interviewId
func (h *Report) FeedbackReport(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	sessionID, err := uuid.Parse(c.Param("interviewId"))
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("invalid interview id"))
	}

	result, err := h.service.FeedbackReport(c.Request().Context(), userID, sessionID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	return c.Blob(http.StatusOK, "application/pdf", result.PDF)
}
