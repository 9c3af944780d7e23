package services

import (
	"context"
	"errors"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"
	"lexcase/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegistrationService handles the registration request flow, from
// public submission to the admin's approve or reject decision
type RegistrationService struct {
	pendingRepo     repositories.PendingUserRepository
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	emailSvc        *EmailService
	notificationSvc *NotificationService
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	pendingRepo repositories.PendingUserRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailSvc *EmailService,
	notificationSvc *NotificationService,
) *RegistrationService {
	return &RegistrationService{
		pendingRepo:     pendingRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		emailSvc:        emailSvc,
		notificationSvc: notificationSvc,
	}
}

// RegisterInput is a public registration request
type RegisterInput struct {
	FullName       string `json:"full_name" validate:"required,max=250"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"max=50"`
	Address        string `json:"address" validate:"max=1000"`
	AdditionalInfo string `json:"additional_info" validate:"max=2000"`
	Role           string `json:"role" validate:"required,oneof=Client Lawyer"`
	Specialization string `json:"specialization" validate:"max=100"`
}

// Submit files a registration request for admin review. An email with
// an open request is checked before the account table so the requester
// gets the more specific message.
func (s *RegistrationService) Submit(ctx context.Context, input RegisterInput) (*models.PendingUser, error) {
	pendingExists, err := s.pendingRepo.ExistsUnprocessedByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if pendingExists {
		return nil, domain.RuleErrorf("a registration request for this email is already awaiting review")
	}

	accountExists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if accountExists {
		return nil, domain.ErrUserAlreadyExists
	}

	if input.Role == models.RoleLawyer && input.Specialization == "" {
		return nil, domain.RuleErrorf("a lawyer registration must state a specialization")
	}

	pending := &models.PendingUser{
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		AdditionalInfo: input.AdditionalInfo,
		Role:           input.Role,
		Specialization: input.Specialization,
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, err
	}

	s.emailSvc.SendRegistrationReceived(pending.FullName, pending.Email)
	s.emailSvc.SendRegistrationAlert(pending.FullName, pending.Role)
	s.notificationSvc.NotifyAdmins(ctx, "New Registration Request",
		pending.FullName+" requested a "+pending.Role+" account and is awaiting review.")

	return pending, nil
}

// ListPending lists unprocessed registration requests
func (s *RegistrationService) ListPending(ctx context.Context) ([]*models.PendingUser, error) {
	return s.pendingRepo.ListUnprocessed(ctx)
}

// Approve turns a pending request into a live account with a generated
// temporary password, delivered by email
func (s *RegistrationService) Approve(ctx context.Context, id uuid.UUID, note string) (*models.User, error) {
	pending, err := s.getUnprocessed(ctx, id)
	if err != nil {
		return nil, err
	}

	// The email may have been taken since the request was filed
	accountExists, err := s.userRepo.ExistsByEmail(ctx, pending.Email)
	if err != nil {
		return nil, err
	}
	if accountExists {
		return nil, domain.ErrUserAlreadyExists
	}

	tempPassword := password.GenerateTemporary()
	hashed, err := password.Hash(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    pending.Email,
		Password: hashed,
		Role:     pending.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:         user.ID,
		FullName:       pending.FullName,
		Phone:          pending.Phone,
		Address:        pending.Address,
		AdditionalInfo: pending.AdditionalInfo,
		Role:           pending.Role,
	}
	if pending.Role == models.RoleLawyer {
		profile.Specialization = pending.Specialization
		now := time.Now()
		profile.DateOfJoining = &now
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	pending.IsProcessed = true
	pending.AdminNote = note
	if err := s.pendingRepo.Update(ctx, pending); err != nil {
		return nil, err
	}

	zap.S().Infow("registration approved", "email", user.Email, "role", user.Role)
	s.emailSvc.SendApproval(pending.FullName, pending.Email, tempPassword)

	return user, nil
}

// Reject closes a pending request with a reason, delivered by email
func (s *RegistrationService) Reject(ctx context.Context, id uuid.UUID, note string) error {
	pending, err := s.getUnprocessed(ctx, id)
	if err != nil {
		return err
	}

	pending.IsProcessed = true
	pending.AdminNote = note
	if err := s.pendingRepo.Update(ctx, pending); err != nil {
		return err
	}

	zap.S().Infow("registration rejected", "email", pending.Email)
	s.emailSvc.SendRejection(pending.FullName, pending.Email, note)
	return nil
}

func (s *RegistrationService) getUnprocessed(ctx context.Context, id uuid.UUID) (*models.PendingUser, error) {
	pending, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if pending.IsProcessed {
		return nil, domain.RuleErrorf("this registration request was already processed")
	}
	return pending, nil
}
