package user

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

const avatarFolder = "avatars"

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var allowedAvatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UpdateProfileInput represents the input for a profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   *string
	Phone  *string
	Avatar *adapter.FileUpload
}

// UpdateProfileOutput represents the output of a profile update.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase updates the name, phone and avatar of the signed-in user.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
	storage  adapter.FileStorage
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository, storage adapter.FileStorage) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		storage:  storage,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name cannot be empty",
				nil,
			)
		}
		user.Name = name
	}

	if input.Phone != nil {
		phone := strings.ReplaceAll(strings.TrimSpace(*input.Phone), " ", "")
		if phone != "" && !phoneRegex.MatchString(phone) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidPhone,
				"phone number must have 10 to 15 digits",
				domainerror.ErrInvalidPhone,
			)
		}
		user.Phone = phone
	}

	previousAvatar := ""
	if input.Avatar != nil {
		ext := strings.ToLower(filepath.Ext(input.Avatar.Filename))
		if !allowedAvatarExtensions[ext] {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidAvatar,
				"avatar must be a png, jpg, gif or webp image",
				nil,
			)
		}

		path, err := uc.storage.Save(ctx, avatarFolder, uuid.NewString()+ext, input.Avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		previousAvatar, user.Avatar = user.Avatar, path
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if previousAvatar != "" {
		if err := uc.storage.Remove(ctx, previousAvatar); err != nil {
			slog.Warn("Failed to remove previous avatar", "path", previousAvatar, "error", err)
		}
	}

	return &UpdateProfileOutput{
		User: user,
	}, nil
}
