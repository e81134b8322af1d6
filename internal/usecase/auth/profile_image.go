package auth

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// ObjectStore is the slice of blob storage the auth service needs for
// profile images.
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	DeleteFile(ctx context.Context, objectName string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

const (
	profileImagePrefix    = "profile-images/"
	profileImageURLExpiry = 24 * time.Hour
	maxProfileImageSize   = 5 << 20
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadProfileImage stores the image and records its object key on the
// user. A re-upload overwrites under a new key and removes the old one.
func (s *Service) UploadProfileImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (*entities.PublicUser, error) {
	if size > maxProfileImageSize {
		return nil, apperrors.ErrInvalidArgument("profile image exceeds 5MB limit")
	}
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, apperrors.ErrInvalidArgument("profile image must be JPEG, PNG or WebP")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	key := profileImagePrefix + userID.String() + "-" + uuid.NewString()[:8] + ext
	if err := s.storage.UploadFile(ctx, key, reader, size, contentType); err != nil {
		return nil, apperrors.ErrStorageFailed("upload profile image", err)
	}

	oldKey := user.ProfileImageKey
	user.ProfileImageKey = &key
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.storage.DeleteFile(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete old profile image",
				zap.String("key", *oldKey), zap.Error(err))
		}
	}

	s.attachProfileImageURL(ctx, user)
	return user.ToPublic(), nil
}

// DeleteProfileImage removes the stored image and clears the key
func (s *Service) DeleteProfileImage(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.ProfileImageKey == nil || *user.ProfileImageKey == "" {
		return nil
	}

	if err := s.storage.DeleteFile(ctx, *user.ProfileImageKey); err != nil {
		return apperrors.ErrStorageFailed("delete profile image", err)
	}

	user.ProfileImageKey = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *Service) attachProfileImageURL(ctx context.Context, user *entities.User) {
	if user.ProfileImageKey == nil || *user.ProfileImageKey == "" || s.storage == nil {
		return
	}
	url, err := s.storage.GetFileURL(ctx, *user.ProfileImageKey, profileImageURLExpiry)
	if err != nil {
		s.logger.Warn("failed to presign profile image",
			zap.String("key", path.Base(*user.ProfileImageKey)), zap.Error(err))
		return
	}
	user.ProfileImageURL = &url
}
