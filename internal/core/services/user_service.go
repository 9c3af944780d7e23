package services

import (
	"context"
	"errors"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"
	"lexcase/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles account administration and profile access
type UserService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	caseRepo    *repositories.CaseRepository
	emailSvc    *EmailService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	caseRepo *repositories.CaseRepository,
	emailSvc *EmailService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		caseRepo:    caseRepo,
		emailSvc:    emailSvc,
	}
}

// LawyerSummary is a directory entry used when assigning cases
type LawyerSummary struct {
	UserID         uint   `json:"user_id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
	OpenCases      int64  `json:"open_cases"`
}

// ListLawyers returns the lawyer directory with current workloads
func (s *UserService) ListLawyers(ctx context.Context) ([]*LawyerSummary, error) {
	profiles, err := s.profileRepo.ListByRole(ctx, models.RoleLawyer)
	if err != nil {
		return nil, err
	}

	summaries := make([]*LawyerSummary, 0, len(profiles))
	for _, p := range profiles {
		open, err := s.caseRepo.CountOpenByLawyer(ctx, nil, p.UserID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &LawyerSummary{
			UserID:         p.UserID,
			FullName:       p.FullName,
			Specialization: p.Specialization,
			OpenCases:      open,
		})
	}
	return summaries, nil
}

// CreateLawyerInput is an admin's direct lawyer account request
type CreateLawyerInput struct {
	FullName       string `json:"full_name" validate:"required,max=250"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"max=50"`
	Specialization string `json:"specialization" validate:"required,max=100"`
}

// CreateLawyer creates a lawyer account directly, bypassing the
// registration queue. The generated temporary password is delivered
// by email.
func (s *UserService) CreateLawyer(ctx context.Context, input CreateLawyerInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	tempPassword := password.GenerateTemporary()
	hashed, err := password.Hash(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleLawyer,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.UserProfile{
		UserID:         user.ID,
		FullName:       input.FullName,
		Phone:          input.Phone,
		Role:           models.RoleLawyer,
		Specialization: input.Specialization,
		DateOfJoining:  &now,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	zap.S().Infow("lawyer account created", "email", user.Email, "specialization", input.Specialization)
	s.emailSvc.SendLawyerWelcome(input.FullName, input.Email, tempPassword)
	return user, nil
}

// ListByRole lists accounts with a given role
func (s *UserService) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	return s.userRepo.ListByRole(ctx, role)
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfileInput is a profile edit request
type UpdateProfileInput struct {
	FullName       string `json:"full_name" validate:"required,max=250"`
	Phone          string `json:"phone" validate:"max=50"`
	Address        string `json:"address" validate:"max=1000"`
	AdditionalInfo string `json:"additional_info" validate:"max=2000"`
}

// UpdateProfile edits the editable fields of a profile. Role and
// specialization are not client editable.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = input.FullName
	profile.Phone = input.Phone
	profile.Address = input.Address
	profile.AdditionalInfo = input.AdditionalInfo
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AdminUpdateUserInput is an admin's edit of another user's profile
type AdminUpdateUserInput struct {
	FullName       string `json:"full_name" validate:"required,max=250"`
	Phone          string `json:"phone" validate:"max=50"`
	Address        string `json:"address" validate:"max=1000"`
	AdditionalInfo string `json:"additional_info" validate:"max=2000"`
	Specialization string `json:"specialization" validate:"max=100"`
}

// AdminUpdateUser edits any user's profile. The specialization field
// only applies to lawyers and is rejected for other roles.
func (s *UserService) AdminUpdateUser(ctx context.Context, userID uint, input AdminUpdateUserInput) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Specialization != "" && profile.Role != models.RoleLawyer {
		return nil, domain.RuleErrorf("only lawyer profiles carry a specialization")
	}

	profile.FullName = input.FullName
	profile.Phone = input.Phone
	profile.Address = input.Address
	profile.AdditionalInfo = input.AdditionalInfo
	if profile.Role == models.RoleLawyer && input.Specialization != "" {
		profile.Specialization = input.Specialization
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetActive enables or disables an account. An admin cannot
// deactivate their own account.
func (s *UserService) SetActive(ctx context.Context, userID, actorID uint, active bool) (*models.User, error) {
	if userID == actorID && !active {
		return nil, domain.RuleErrorf("you cannot deactivate your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account and its profile. A lawyer with open cases
// cannot be removed.
func (s *UserService) Delete(ctx context.Context, userID, actorID uint) error {
	if userID == actorID {
		return domain.RuleErrorf("you cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Role == models.RoleLawyer {
		open, err := s.caseRepo.CountOpenByLawyer(ctx, nil, userID)
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.RuleErrorf("the lawyer still has %d open cases and cannot be removed", open)
		}
	}

	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
