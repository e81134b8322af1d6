package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if handlerErr := handleError(c, zap.NewNop(), err); handlerErr != nil {
		t.Fatalf("handleError returned %v", handlerErr)
	}
	return rec
}

func TestHandleError_DomainSentinelStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"interview not found", entities.ErrInterviewNotFound, http.StatusNotFound},
		{"already finalized", entities.ErrInterviewFinalized, http.StatusConflict},
		{"foreign session", entities.ErrForbidden, http.StatusForbidden},
		{"question out of range", entities.ErrQuestionOutOfRange, http.StatusBadRequest},
		{"invalid mode", entities.ErrInvalidMode, http.StatusBadRequest},
		{"invalid difficulty", entities.ErrInvalidDifficulty, http.StatusBadRequest},
		{"invalid request", entities.ErrInvalidRequest, http.StatusBadRequest},
		{"user not found", entities.ErrUserNotFound, http.StatusNotFound},
		{"duplicate user", entities.ErrUserAlreadyExists, http.StatusConflict},
		{"schedule not found", entities.ErrScheduleNotFound, http.StatusNotFound},
		{"schedule expired", entities.ErrScheduleExpired, http.StatusGone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := recordError(t, tc.err)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestHandleError_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("finalize interview: %w", entities.ErrInterviewFinalized)
	rec := recordError(t, err)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	rec := recordError(t, fmt.Errorf("connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
