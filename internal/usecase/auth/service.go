package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/domain/repositories"
	"github.com/prevue-ai/interview-server/internal/infrastructure/external/tokens"
	"github.com/prevue-ai/interview-server/pkg/jwt"
	"github.com/prevue-ai/interview-server/pkg/mailer"
)

// Service handles email/password authentication and account management
type Service struct {
	users      repositories.UserRepository
	schedules  repositories.ScheduleRepository
	jwtManager *jwt.Manager
	tokens     *tokens.Store
	mailer     *mailer.Mailer
	storage    ObjectStore
	clientURL  string
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(
	users repositories.UserRepository,
	schedules repositories.ScheduleRepository,
	jwtManager *jwt.Manager,
	tokenStore *tokens.Store,
	mail *mailer.Mailer,
	store ObjectStore,
	clientURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:      users,
		schedules:  schedules,
		jwtManager: jwtManager,
		tokens:     tokenStore,
		mailer:     mail,
		storage:    store,
		clientURL:  clientURL,
		logger:     logger,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User        *entities.PublicUser `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresIn   int64                `json:"expires_in"`
}

// SignUp registers a new candidate or HR account
func (s *Service) SignUp(ctx context.Context, name, email, password string, role entities.UserRole) (*AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(email)
	} else if err != entities.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.NewUser(email, name)
	user.PasswordHash = string(hash)
	if role != "" {
		user.Role = role
	}
	if err := user.Validate(); err != nil {
		return nil, apperrors.ErrInvalidArgument(err.Error())
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.issueTokens(user)
}

// SignIn authenticates with email and password. Both an unknown email
// and a wrong password return the same not-found error so the endpoint
// cannot be used to probe which addresses have accounts.
func (s *Service) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, apperrors.ErrInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	return s.issueTokens(user)
}

// ValidateToken resolves a JWT to its user. Implements the validator
// contract the auth middleware expects.
func (s *Service) ValidateToken(c echo.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Profile returns the current user with a fresh profile image URL
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	s.attachProfileImageURL(ctx, user)
	return user.ToPublic(), nil
}

// UpdateProfile changes the display name
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*entities.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Name = name
	if err := user.Validate(); err != nil {
		return nil, apperrors.ErrInvalidArgument(err.Error())
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.attachProfileImageURL(ctx, user)
	return user.ToPublic(), nil
}

func (s *Service) issueTokens(user *entities.User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user.ToPublic(),
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
