package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the interview-specific
// validations registered.
func New() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("interview_mode", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Technical", "HR":
			return true
		}
		return false
	})

	_ = v.RegisterValidation("interview_difficulty", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Easy", "Medium", "Hard":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
