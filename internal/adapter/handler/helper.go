package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/infrastructure/http/middleware"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// handleSuccess writes a standardized success response
func handleSuccess(c echo.Context, logger *zap.Logger, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// domainError maps the domain sentinel errors the services return onto
// the HTTP error taxonomy. Anything unmapped renders as 500.
func domainError(err error) (errors.AppError, bool) {
	var appErr errors.AppError
	switch {
	case stdErrors.Is(err, entities.ErrInterviewNotFound):
		appErr = errors.ErrInterviewNotFound("")
	case stdErrors.Is(err, entities.ErrInterviewFinalized):
		appErr = errors.ErrInterviewFinalized("")
	case stdErrors.Is(err, entities.ErrForbidden):
		appErr = errors.ErrForbidden("You do not have access to this resource")
	case stdErrors.Is(err, entities.ErrUnauthorized):
		appErr = errors.ErrUnauthenticated()
	case stdErrors.Is(err, entities.ErrUserNotFound):
		appErr = errors.ErrUserNotFound()
	case stdErrors.Is(err, entities.ErrUserAlreadyExists):
		appErr = errors.ErrUserAlreadyExists("")
	case stdErrors.Is(err, entities.ErrScheduleNotFound):
		appErr = errors.ErrScheduleNotFound()
	case stdErrors.Is(err, entities.ErrScheduleExpired):
		appErr = errors.ErrScheduleExpired()
	case stdErrors.Is(err, entities.ErrInvalidToken):
		appErr = errors.ErrInvalidToken()
	case stdErrors.Is(err, entities.ErrInvalidRequest),
		stdErrors.Is(err, entities.ErrInvalidMode),
		stdErrors.Is(err, entities.ErrInvalidDifficulty),
		stdErrors.Is(err, entities.ErrQuestionOutOfRange),
		stdErrors.Is(err, entities.ErrInvalidEmail),
		stdErrors.Is(err, entities.ErrInvalidName),
		stdErrors.Is(err, entities.ErrInvalidRole),
		stdErrors.Is(err, entities.ErrInvalidPassword):
		appErr = errors.ErrInvalidArgument(err.Error())
	default:
		return errors.AppError{}, false
	}
	appErr.Raw = err
	return appErr, true
}

// handleError centralizes error handling and logging
func handleError(c echo.Context, logger *zap.Logger, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	ok := stdErrors.As(err, &appErr)
	if !ok {
		appErr, ok = domainError(err)
	}
	if ok {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}
		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    int(errors.ErrorCode_INTERNAL),
		Message: "Internal server error",
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// bindAndValidate decodes the JSON body and runs validator tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// currentUserID reads the user id the auth middleware stored
func currentUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated()
	}
	return id, nil
}

// setAuthCookie stores the JWT in the browser cookie the middleware reads
func setAuthCookie(c echo.Context, token string, maxAgeSeconds int64) {
	cookie := &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAgeSeconds),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	c.SetCookie(cookie)
}

// clearAuthCookie deletes the auth cookie
func clearAuthCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	c.SetCookie(cookie)
}
