package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CaseService owns case assignment and the case lifecycle
type CaseService struct {
	caseRepo        repositories.CaseStore
	hearingRepo     repositories.HearingStore
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	notificationSvc Notifier
	policy          config.PolicyConfig
}

// NewCaseService creates a new case service
func NewCaseService(
	caseRepo repositories.CaseStore,
	hearingRepo repositories.HearingStore,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationSvc Notifier,
	policy config.PolicyConfig,
) *CaseService {
	return &CaseService{
		caseRepo:        caseRepo,
		hearingRepo:     hearingRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		notificationSvc: notificationSvc,
		policy:          policy,
	}
}

// CreateCaseInput is the case filing request
type CreateCaseInput struct {
	CaseTitle            string  `json:"case_title" validate:"required,max=200"`
	CaseType             string  `json:"case_type" validate:"required,max=50"`
	Description          string  `json:"description" validate:"max=5000"`
	ClientID             uint    `json:"client_id" validate:"required"`
	LawyerID             uint    `json:"lawyer_id" validate:"required"`
	AdminSharePercentage float64 `json:"admin_share_percentage" validate:"gte=0,lte=100"`
}

// CheckAssignment validates that a lawyer may take a case of the given
// type under the current workload. openCases is the lawyer's count of
// pending and active cases.
func CheckAssignment(profile *models.UserProfile, caseType string, openCases int64, ceiling int) error {
	if profile.Role != models.RoleLawyer {
		return domain.RuleErrorf("user %q is not a lawyer", profile.FullName)
	}
	if !strings.EqualFold(profile.Specialization, caseType) {
		return domain.RuleErrorf(
			"lawyer specialization %q does not match case type %q",
			profile.Specialization, caseType,
		)
	}
	if openCases >= int64(ceiling) {
		return domain.RuleErrorf(
			"lawyer already has %d open cases, the limit is %d",
			openCases, ceiling,
		)
	}
	return nil
}

// CreateCase files a new case. Specialization and workload are checked
// against a locked lawyer profile row so two concurrent filings cannot
// both pass a stale workload count. The total fee comes from the fee
// schedule, never from the caller.
func (s *CaseService) CreateCase(ctx context.Context, input CreateCaseInput) (*models.Case, error) {
	client, err := s.userRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client: %w", domain.ErrUserNotFound)
		}
		return nil, err
	}
	if client.Role != models.RoleClient {
		return nil, domain.RuleErrorf("user %q is not a client", client.Email)
	}

	newCase := &models.Case{
		CaseTitle:            input.CaseTitle,
		CaseType:             input.CaseType,
		Description:          input.Description,
		Status:               models.CasePending,
		StartDate:            time.Now(),
		TotalFee:             domain.FeeForCaseType(input.CaseType),
		PaymentStatus:        models.PaymentUnpaid,
		AdminSharePercentage: input.AdminSharePercentage,
		ClientID:             input.ClientID,
		LawyerID:             input.LawyerID,
	}

	err = s.caseRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the lawyer's profile row to serialize concurrent
		// assignments against the same lawyer
		profile, err := s.profileRepo.LockByUserID(ctx, tx, input.LawyerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RuleErrorf("the selected lawyer has no profile")
			}
			return err
		}

		openCases, err := s.caseRepo.CountOpenByLawyer(ctx, tx, input.LawyerID)
		if err != nil {
			return err
		}
		if err := CheckAssignment(profile, input.CaseType, openCases, s.policy.WorkloadCeiling); err != nil {
			return err
		}

		return s.caseRepo.CreateTx(ctx, tx, newCase)
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infow("case created",
		"case_id", newCase.ID,
		"case_type", newCase.CaseType,
		"lawyer_id", newCase.LawyerID,
		"total_fee", newCase.TotalFee,
	)
	s.notificationSvc.NotifyUser(ctx, newCase.LawyerID, "New Case Assigned",
		fmt.Sprintf("You have been assigned the case %q. Review it and accept or decline.", newCase.CaseTitle))

	return newCase, nil
}

// AcceptCase moves a pending case to active. Only the assigned lawyer
// may accept, and only after the client has paid the advance.
func (s *CaseService) AcceptCase(ctx context.Context, caseID uuid.UUID, lawyerID uint) (*models.Case, error) {
	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.LawyerID != lawyerID {
		return nil, domain.ErrAccessDenied
	}
	if c.Status != models.CasePending {
		return nil, domain.RuleErrorf("only a pending case can be accepted, current status is %s", c.Status)
	}
	if c.PaymentStatus == models.PaymentUnpaid {
		return nil, domain.RuleErrorf("the client has not paid the advance yet, the case cannot be accepted")
	}

	c.Status = models.CaseActive
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyUser(ctx, c.ClientID, "Case Accepted",
		fmt.Sprintf("Your case %q has been accepted by your lawyer and is now active.", c.CaseTitle))
	s.notificationSvc.NotifyAdmins(ctx, "Case Activated",
		fmt.Sprintf("The case %q has been accepted and is now active.", c.CaseTitle))
	s.notificationSvc.NotifyUser(ctx, lawyerID, "Case Accepted",
		fmt.Sprintf("You accepted the case %q. It is now active.", c.CaseTitle))

	return c, nil
}

// RejectCase declines a pending case
func (s *CaseService) RejectCase(ctx context.Context, caseID uuid.UUID, lawyerID uint) (*models.Case, error) {
	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.LawyerID != lawyerID {
		return nil, domain.ErrAccessDenied
	}
	if c.Status != models.CasePending {
		return nil, domain.RuleErrorf("only a pending case can be declined, current status is %s", c.Status)
	}

	c.Status = models.CaseRejected
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyAdmins(ctx, "Case Declined - Action Required",
		fmt.Sprintf("The case %q was declined by the assigned lawyer. Please reassign it.", c.CaseTitle))
	s.notificationSvc.NotifyUser(ctx, c.ClientID, "Case Declined",
		fmt.Sprintf("Your case %q was declined by the assigned lawyer. Our administration will follow up.", c.CaseTitle))
	s.notificationSvc.NotifyUser(ctx, lawyerID, "Case Declined",
		fmt.Sprintf("You declined the case %q.", c.CaseTitle))

	return c, nil
}

// UpdateStatus is the generic lifecycle transition, restricted to
// admins and the case's own lawyer. Closing requires the configured
// minimum hearing count and stamps the end date, every other target
// clears it.
func (s *CaseService) UpdateStatus(ctx context.Context, caseID uuid.UUID, newStatus models.CaseStatus, actorID uint, role string) (*models.Case, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}

	if newStatus == models.CaseClosed {
		hearings, err := s.hearingRepo.CountByCase(ctx, nil, caseID)
		if err != nil {
			return nil, err
		}
		if hearings < int64(s.policy.MinHearingsToClose) {
			return nil, domain.RuleErrorf(
				"the case has %d hearings, at least %d are required before closing",
				hearings, s.policy.MinHearingsToClose,
			)
		}
		now := time.Now()
		c.EndDate = &now
	} else {
		c.EndDate = nil
	}

	c.Status = newStatus
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyUser(ctx, c.ClientID, "Case Status Updated",
		fmt.Sprintf("The status of your case %q is now %s.", c.CaseTitle, c.Status))

	return c, nil
}

// GetCase returns a case visible to the acting user
func (s *CaseService) GetCase(ctx context.Context, caseID uuid.UUID, actorID uint, role string) (*models.Case, error) {
	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCases returns cases scoped to the acting user's role. Admins see
// everything and may narrow to one lawyer's history with lawyerID,
// lawyers and clients only see their own cases.
func (s *CaseService) ListCases(ctx context.Context, actorID uint, role, status, caseType string, lawyerID uint, offset, limit int) ([]*models.Case, int64, error) {
	switch role {
	case models.RoleAdmin:
		if lawyerID != 0 {
			cases, err := s.caseRepo.ListByLawyer(ctx, lawyerID)
			return cases, int64(len(cases)), err
		}
		return s.caseRepo.List(ctx, status, caseType, offset, limit)
	case models.RoleLawyer:
		cases, err := s.caseRepo.ListByLawyer(ctx, actorID)
		return cases, int64(len(cases)), err
	default:
		cases, err := s.caseRepo.ListByClient(ctx, actorID)
		return cases, int64(len(cases)), err
	}
}

// FeeSchedule returns the fixed fee per case type
func (s *CaseService) FeeSchedule() map[string]float64 {
	schedule := make(map[string]float64)
	for _, t := range domain.CaseTypes() {
		schedule[t] = domain.FeeForCaseType(t)
	}
	return schedule
}

func (s *CaseService) getCase(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// authorizeCaseAccess checks that the actor is the case's client, its
// lawyer, or an admin
func authorizeCaseAccess(c *models.Case, actorID uint, role string) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleLawyer:
		if c.LawyerID == actorID {
			return nil
		}
	case models.RoleClient:
		if c.ClientID == actorID {
			return nil
		}
	}
	return domain.ErrAccessDenied
}
