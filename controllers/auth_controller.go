package controllers

import (
	"net/http"

	"electronics-store/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	auth   AuthUseCase
	logger *zap.Logger
}

func NewAuthController(auth AuthUseCase, logger *zap.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account and sign it in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response{data=models.LoginResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "Registration successful!", resp)
}

// Login godoc
// @Summary Login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response{data=models.LoginResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", resp)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the bearer token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	if err := ctrl.auth.Logout(c.Request.Context(), ident); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "You have been logged out.", nil)
}
