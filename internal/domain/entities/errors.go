package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidPassword   = errors.New("invalid password")

	// Interview errors
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrInterviewFinalized  = errors.New("interview already finalized")
	ErrInvalidMode         = errors.New("invalid interview mode")
	ErrInvalidDifficulty   = errors.New("invalid interview difficulty")
	ErrQuestionOutOfRange  = errors.New("question number out of range")
	ErrEvaluationCancelled = errors.New("evaluation cancelled")

	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleExpired  = errors.New("schedule expired")
	ErrInvalidToken     = errors.New("invalid token")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
