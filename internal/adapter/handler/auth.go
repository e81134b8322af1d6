package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/prevue-ai/interview-server/internal/adapter/dto/auth"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(service *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

// SignUp registers a new account
// POST /api/signup
func (h *Auth) SignUp(c echo.Context) error {
	var req authDTO.SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	role := entities.UserRole("")
	switch req.Role {
	case "hr":
		role = entities.RoleHR
	case "candidate":
		role = entities.RoleCandidate
	}

	resp, err := h.service.SignUp(c.Request().Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	setAuthCookie(c, resp.AccessToken, resp.ExpiresIn)
	return handleSuccess(c, h.logger, toAuthResponse(resp))
}

// SignIn authenticates with email and password
// POST /api/signin
func (h *Auth) SignIn(c echo.Context) error {
	var req authDTO.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	resp, err := h.service.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	setAuthCookie(c, resp.AccessToken, resp.ExpiresIn)
	return handleSuccess(c, h.logger, toAuthResponse(resp))
}

// Logout clears the auth cookie
// GET /api/logout
func (h *Auth) Logout(c echo.Context) error {
	clearAuthCookie(c)
	return handleSuccess(c, h.logger, map[string]string{"message": "Logged out"})
}

// ForgotPassword starts a password reset
// POST /api/forgot-password
func (h *Auth) ForgotPassword(c echo.Context) error {
	var req authDTO.ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword completes a password reset
// POST /api/reset-password/:token
func (h *Auth) ResetPassword(c echo.Context) error {
	var req authDTO.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"message": "Password updated"})
}

// Profile returns the signed-in user
// GET /api/profile
func (h *Auth) Profile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	user, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, authDTO.ToUserResponse(user))
}

// UpdateProfile changes the display name
// PUT /api/profile
func (h *Auth) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req authDTO.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, req.Name)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, authDTO.ToUserResponse(user))
}

// UploadProfileImage stores a new profile image
// POST /api/upload-profile-image
func (h *Auth) UploadProfileImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handleError(c, h.logger, err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer file.Close()

	user, err := h.service.UploadProfileImage(c.Request().Context(), userID,
		file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, authDTO.ToUserResponse(user))
}

// DeleteProfileImage removes the stored profile image
// DELETE /api/delete-profile-image
func (h *Auth) DeleteProfileImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.DeleteProfileImage(c.Request().Context(), userID); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"message": "Profile image removed"})
}

// GuestAccess exchanges an invitation token for a signed-in session
// POST /api/guest-access/:token
func (h *Auth) GuestAccess(c echo.Context) error {
	// the route is public, so the current user is only set when a
	// signed-in person follows the link
	current, _ := c.Get("user").(*entities.User)

	resp, err := h.service.GuestAccess(c.Request().Context(), c.Param("token"), current)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	setAuthCookie(c, resp.AccessToken, resp.ExpiresIn)
	return handleSuccess(c, h.logger, map[string]interface{}{
		"auth":     toAuthResponse(resp.AuthResponse),
		"schedule": resp.Schedule,
	})
}

func toAuthResponse(resp *auth.AuthResponse) *authDTO.AuthResponse {
	return &authDTO.AuthResponse{
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
		TokenType:   "Bearer",
		User:        authDTO.ToUserResponse(resp.User),
	}
}
