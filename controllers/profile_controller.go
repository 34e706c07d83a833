package controllers

import (
	"errors"
	"net/http"

	"electronics-store/libs"
	"electronics-store/models"
	"electronics-store/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const profilePictureFolder = "profiles"

type ProfileController struct {
	profiles      ProfileUseCase
	images        libs.ImageStore
	maxUploadSize int64
	logger        *zap.Logger
}

func NewProfileController(profiles ProfileUseCase, images libs.ImageStore, maxUploadSize int64, logger *zap.Logger) *ProfileController {
	return &ProfileController{profiles: profiles, images: images, maxUploadSize: maxUploadSize, logger: logger}
}

// GetProfile godoc
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.UserWithProfile}
// @Router /profile [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	profile, err := ctrl.profiles.GetProfile(c.Request.Context(), ident)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param email formData string false "Email"
// @Param phone_number formData string false "Phone number"
// @Param address formData string false "Address"
// @Param profile_picture formData file false "Profile picture"
// @Success 200 {object} models.Response{data=models.UserWithProfile}
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [post]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var pictureURL string
	file, err := c.FormFile("profile_picture")
	switch {
	case err == nil:
		if err := utils.ValidateImage(file, ctrl.maxUploadSize); err != nil {
			respondError(c, ctrl.logger, err)
			return
		}
		if pictureURL, err = ctrl.images.Save(c.Request.Context(), file, profilePictureFolder); err != nil {
			respondError(c, ctrl.logger, err)
			return
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		respondBindError(c, err)
		return
	}

	profile, err := ctrl.profiles.UpdateProfile(c.Request.Context(), ident, req, pictureURL)
	if err != nil {
		if pictureURL != "" {
			if derr := ctrl.images.Delete(c.Request.Context(), pictureURL); derr != nil {
				ctrl.logger.Warn("Failed to delete profile picture", zap.String("url", pictureURL), zap.Error(derr))
			}
		}
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Your profile has been updated!", profile)
}
