package services

import (
	"context"
	"errors"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"
	"lexcase/internal/pkg/jwt"
	"lexcase/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// AuthService handles sign in and password management
type AuthService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	resetRepo   repositories.PasswordResetRepository
	emailSvc    *EmailService
	jwtCfg      config.JWTConfig
	baseURL     string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	resetRepo repositories.PasswordResetRepository,
	emailSvc *EmailService,
	jwtCfg config.JWTConfig,
	baseURL string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		emailSvc:    emailSvc,
		jwtCfg:      jwtCfg,
		baseURL:     baseURL,
	}
}

// LoginInput is a sign in request
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token and the signed in account
type LoginResult struct {
	AccessToken string               `json:"access_token"`
	User        *models.UserResponse `json:"user"`
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.RuleErrorf("this account has been deactivated")
	}
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, s.jwtCfg.Secret, s.jwtCfg.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	if profile, err := s.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		resp.FullName = profile.FullName
	}

	zap.S().Infow("user signed in", "user_id", user.ID, "role", user.Role)
	return &LoginResult{AccessToken: token, User: resp}, nil
}

// ChangePasswordInput is a password change request
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword replaces the password of a signed in user
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if !password.Verify(input.CurrentPassword, user.Password) {
		return domain.ErrInvalidPassword
	}
	if !password.Validate(input.NewPassword) {
		return domain.RuleErrorf("the new password must be at least 8 characters")
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// ForgotPassword issues a reset token by email. The response does not
// reveal whether the email has an account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := uuid.New().String()
	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	name := user.Email
	if profile, err := s.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		name = profile.FullName
	}
	s.emailSvc.SendPasswordReset(name, user.Email, s.baseURL+"/reset-password?token="+token)
	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}
	if reset.IsExpired() {
		return domain.ErrTokenExpired
	}
	if !password.Validate(newPassword) {
		return domain.RuleErrorf("the new password must be at least 8 characters")
	}

	user, err := s.userRepo.GetByID(ctx, reset.UserID)
	if err != nil {
		return err
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.resetRepo.MarkUsed(ctx, reset.ID)
}
