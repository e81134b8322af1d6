package auth

// SignUpRequest represents the request to register an account
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=candidate hr"`
}

// SignInRequest represents the request to sign in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents the request to start a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request to complete a password reset
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateProfileRequest represents the request to update the profile
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
