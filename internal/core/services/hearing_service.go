package services

import (
	"context"
	"errors"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HearingService manages hearing scheduling for cases
type HearingService struct {
	hearingRepo     repositories.HearingStore
	caseRepo        repositories.CaseStore
	profileRepo     repositories.ProfileRepository
	notificationSvc Notifier
}

// NewHearingService creates a new hearing service
func NewHearingService(
	hearingRepo repositories.HearingStore,
	caseRepo repositories.CaseStore,
	profileRepo repositories.ProfileRepository,
	notificationSvc Notifier,
) *HearingService {
	return &HearingService{
		hearingRepo:     hearingRepo,
		caseRepo:        caseRepo,
		profileRepo:     profileRepo,
		notificationSvc: notificationSvc,
	}
}

// HearingInput is a hearing create or edit request
type HearingInput struct {
	HearingDate time.Time `json:"hearing_date" validate:"required"`
	CourtName   string    `json:"court_name" validate:"required,max=150"`
	Notes       string    `json:"notes" validate:"max=2000"`
}

// AddHearing schedules a hearing on a case for an admin or the case's
// own lawyer. The conflict check and the insert run in one transaction
// holding the case row and both parties' profile rows, so concurrent
// schedulings on any cases sharing the lawyer or the client cannot
// both pass a stale conflict check.
func (s *HearingService) AddHearing(ctx context.Context, caseID uuid.UUID, input HearingInput, actorID uint, role string) (*models.Hearing, error) {
	hearing := &models.Hearing{
		CaseID:      caseID,
		HearingDate: input.HearingDate,
		CourtName:   input.CourtName,
		Notes:       input.Notes,
	}

	var c *models.Case
	err := s.caseRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		c, err = s.caseRepo.GetByIDForUpdate(ctx, tx, caseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := authorizeCaseAccess(c, actorID, role); err != nil {
			return err
		}
		if c.Status == models.CaseClosed {
			return domain.RuleErrorf("the case is closed, hearings can no longer be changed")
		}

		if err := s.lockParties(ctx, tx, c); err != nil {
			return err
		}
		conflicts, err := s.hearingRepo.CountConflicts(ctx, tx, c.LawyerID, c.ClientID, input.HearingDate, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.RuleErrorf("the lawyer or the client already has a hearing at that exact date and time")
		}

		return s.hearingRepo.CreateTx(ctx, tx, hearing)
	})
	if err != nil {
		return nil, err
	}

	s.notificationSvc.NotifyUser(ctx, c.ClientID, "Hearing Scheduled",
		"A hearing on your case "+c.CaseTitle+" was scheduled at "+input.CourtName+" on "+
			input.HearingDate.Format("02 Jan 2006 15:04")+".")

	return hearing, nil
}

// EditHearing reschedules or annotates a hearing for an admin or the
// case's own lawyer. The hearing being edited is excluded from the
// conflict check. A reschedule resets the reminder flag so the new
// slot gets its own reminder.
func (s *HearingService) EditHearing(ctx context.Context, hearingID uint, input HearingInput, actorID uint, role string) (*models.Hearing, error) {
	hearing, err := s.hearingRepo.GetByID(ctx, hearingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	err = s.caseRepo.Transaction(ctx, func(tx *gorm.DB) error {
		c, err := s.caseRepo.GetByIDForUpdate(ctx, tx, hearing.CaseID)
		if err != nil {
			return err
		}
		if err := authorizeCaseAccess(c, actorID, role); err != nil {
			return err
		}
		if c.Status == models.CaseClosed {
			return domain.RuleErrorf("the case is closed, hearings can no longer be changed")
		}

		if err := s.lockParties(ctx, tx, c); err != nil {
			return err
		}
		conflicts, err := s.hearingRepo.CountConflicts(ctx, tx, c.LawyerID, c.ClientID, input.HearingDate, hearing.ID)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.RuleErrorf("the lawyer or the client already has a hearing at that exact date and time")
		}

		if !hearing.HearingDate.Equal(input.HearingDate) {
			hearing.ReminderSent = false
		}
		hearing.HearingDate = input.HearingDate
		hearing.CourtName = input.CourtName
		hearing.Notes = input.Notes
		return s.hearingRepo.UpdateTx(ctx, tx, hearing)
	})
	if err != nil {
		return nil, err
	}
	return hearing, nil
}

// DeleteHearing removes a hearing from an open case
func (s *HearingService) DeleteHearing(ctx context.Context, hearingID uint, actorID uint, role string) error {
	hearing, err := s.hearingRepo.GetByID(ctx, hearingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	c, err := s.caseRepo.GetByID(ctx, hearing.CaseID)
	if err != nil {
		return err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return err
	}
	if c.Status == models.CaseClosed {
		return domain.RuleErrorf("the case is closed, hearings can no longer be changed")
	}

	return s.hearingRepo.Delete(ctx, hearingID)
}

// lockParties takes FOR UPDATE locks on the lawyer's and the client's
// profile rows inside tx. The conflict check spans every case of both
// parties, so the case row alone is not a wide enough lock, two
// schedulings through different cases of the same lawyer or client
// must serialize on the shared person.
func (s *HearingService) lockParties(ctx context.Context, tx *gorm.DB, c *models.Case) error {
	if _, err := s.profileRepo.LockByUserID(ctx, tx, c.LawyerID); err != nil {
		return err
	}
	if _, err := s.profileRepo.LockByUserID(ctx, tx, c.ClientID); err != nil {
		return err
	}
	return nil
}

// ListByCase lists the hearings of a case visible to the acting user
func (s *HearingService) ListByCase(ctx context.Context, caseID uuid.UUID, actorID uint, role string) ([]*models.Hearing, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}
	return s.hearingRepo.ListByCase(ctx, caseID)
}
