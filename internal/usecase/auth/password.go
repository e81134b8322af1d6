package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/infrastructure/external/tokens"
)

// ForgotPassword issues a single-use reset token and mails the reset
// link. An unknown email returns success without sending anything so
// the endpoint cannot be used to probe which addresses have accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == entities.ErrUserNotFound {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, tokens.PurposePasswordReset, user.ID.String(), tokens.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your PREVUE.AI password.\n\n"+
			"Reset it here: %s\n\n"+
			"The link expires in %d minutes. If you did not request this, you can ignore this email.\n",
		user.Name, link, int(tokens.ResetTokenTTL.Minutes()))

	if err := s.mailer.Send(user.Email, "Reset your PREVUE.AI password", body); err != nil {
		s.logger.Error("failed to send reset email", zap.Error(err))
		return apperrors.ErrMailFailed(err)
	}

	s.logger.Info("password reset email sent", zap.String("user_id", user.ID.String()))
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The
// token is consumed on first use whether or not the update succeeds.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	subject, ok, err := s.tokens.Redeem(ctx, tokens.PurposePasswordReset, token)
	if err != nil {
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}
	if !ok {
		return apperrors.ErrResetTokenInvalid()
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return apperrors.ErrResetTokenInvalid()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if err == entities.ErrUserNotFound {
			return apperrors.ErrResetTokenInvalid()
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset completed", zap.String("user_id", userID.String()))
	return nil
}
