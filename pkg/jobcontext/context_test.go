package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJobBeginCarriesMetadata(t *testing.T) {
	jobID := uuid.New()
	ctx, cancel := JobBegin(context.Background(), jobID, 3)
	defer cancel()

	gotID, ok := GetJobID(ctx)
	if !ok || gotID != jobID {
		t.Errorf("job id = %v (%v)", gotID, ok)
	}
	if GetWorkerID(ctx) != 3 {
		t.Errorf("worker id = %d", GetWorkerID(ctx))
	}
	if _, ok := GetJobStartTime(ctx); !ok {
		t.Error("start time missing")
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("context deadline exceeded"),
		errors.New("pq: deadlock detected"),
		errors.New("gemini: 429 too many requests"),
		errors.New("upstream returned internal server error"),
	}
	for _, err := range retryable {
		if !IsRetryableError(err) {
			t.Errorf("should retry: %v", err)
		}
	}

	terminal := []error{
		nil,
		errors.New("invalid: session already finalized"),
		errors.New("something else entirely"),
	}
	for _, err := range terminal {
		if IsRetryableError(err) {
			t.Errorf("should not retry: %v", err)
		}
	}
}

func TestIsNonRetryableError(t *testing.T) {
	if !IsNonRetryableError(errors.New("invalid: session already finalized")) {
		t.Error("invalid-prefixed errors are terminal")
	}
	if !IsNonRetryableError(errors.New("validation failed on field role")) {
		t.Error("validation errors are terminal")
	}
	if IsNonRetryableError(errors.New("connection refused")) {
		t.Error("network errors are not terminal")
	}
	if IsNonRetryableError(nil) {
		t.Error("nil is not an error at all")
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := time.Second
	if d := CalculateBackoff(0, base); d != time.Second {
		t.Errorf("attempt 0 = %v", d)
	}
	if d := CalculateBackoff(3, base); d != 8*time.Second {
		t.Errorf("attempt 3 = %v", d)
	}
	// Capped at one minute
	if d := CalculateBackoff(20, base); d != 60*time.Second {
		t.Errorf("attempt 20 = %v", d)
	}
	if d := CalculateBackoff(-1, base); d != time.Second {
		t.Errorf("negative attempt = %v", d)
	}
}
