package services

import (
	"context"
	"strings"

	"electronics-store/libs"
	"electronics-store/models"

	"go.uber.org/zap"
)

type ProfileService struct {
	tx     Transactor
	users  UserStore
	images libs.ImageStore
	logger *zap.Logger
}

func NewProfileService(tx Transactor, users UserStore, images libs.ImageStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{tx: tx, users: users, images: images, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, ident models.Identity) (*models.UserWithProfile, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}
	return s.users.GetUserWithProfile(ctx, ident.UserID)
}

// UpdateProfile saves the account and profile fields together. A non-empty pictureURL
// replaces the stored picture, and the old file is removed once the update commits.
func (s *ProfileService) UpdateProfile(ctx context.Context, ident models.Identity, req models.UpdateProfileRequest, pictureURL string) (*models.UserWithProfile, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}

	var oldPicture string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByID(ctx, ident.UserID)
		if err != nil {
			return err
		}
		user.FirstName = strings.TrimSpace(req.FirstName)
		user.LastName = strings.TrimSpace(req.LastName)
		user.Email = strings.TrimSpace(req.Email)
		if err := s.users.UpdateNames(ctx, user); err != nil {
			return err
		}

		profile, err := s.users.GetProfile(ctx, ident.UserID)
		if err != nil {
			return err
		}
		profile.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
		profile.Address = strings.TrimSpace(req.Address)
		if pictureURL != "" {
			oldPicture = profile.ProfilePicture
			profile.ProfilePicture = pictureURL
		}
		return s.users.UpdateProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	if oldPicture != "" && oldPicture != pictureURL && s.images != nil {
		if err := s.images.Delete(ctx, oldPicture); err != nil {
			s.logger.Warn("Failed to delete old profile picture", zap.String("url", oldPicture), zap.Error(err))
		}
	}

	return s.users.GetUserWithProfile(ctx, ident.UserID)
}
