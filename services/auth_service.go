package services

import (
	"context"
	"strings"
	"time"

	"electronics-store/models"
	"electronics-store/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	tx      Transactor
	users   UserStore
	tokens  *utils.TokenIssuer
	revoker TokenRevoker
	logger  *zap.Logger
}

func NewAuthService(tx Transactor, users UserStore, tokens *utils.TokenIssuer, revoker TokenRevoker, logger *zap.Logger) *AuthService {
	return &AuthService{tx: tx, users: users, tokens: tokens, revoker: revoker, logger: logger}
}

// Register creates a customer with an empty profile and signs them in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, models.NewValidationError("username", "is required")
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("username", "Username already exists!")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: hashedPassword,
		Role:     models.RoleCustomer,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		return s.users.CreateProfile(ctx, &models.UserProfile{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return s.signIn(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		return nil, models.NewValidationError("", "invalid username or password")
	}
	return s.signIn(ctx, user)
}

func (s *AuthService) signIn(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	userWithProfile, err := s.users.GetUserWithProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  *userWithProfile,
	}, nil
}

// Logout revokes the caller's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, ident models.Identity) error {
	if err := requireUser(ident); err != nil {
		return err
	}
	return s.revoker.RevokeToken(ctx, ident.TokenID, time.Until(ident.ExpiresAt))
}

// Authenticate resolves a bearer token into the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.Identity{}, models.ErrUnauthorized
	}

	revoked, err := s.revoker.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("Token denylist lookup failed", zap.Error(err))
	}
	if revoked {
		return models.Identity{}, models.ErrUnauthorized
	}
	return claims.Identity(), nil
}
