package services

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService sends hearing reminders one day ahead. A daily cron
// sweep picks up every hearing scheduled for the next day that has not
// been reminded yet.
type ReminderService struct {
	hearingRepo     *repositories.HearingRepository
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	notificationSvc *NotificationService
	emailSvc        *EmailService
	cron            *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	hearingRepo *repositories.HearingRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
) *ReminderService {
	return &ReminderService{
		hearingRepo:     hearingRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		cron:            cron.New(),
	}
}

// Start schedules the daily sweep at 07:00 server time
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("0 7 * * *", func() {
		if err := s.Sweep(context.Background()); err != nil {
			zap.S().Errorw("hearing reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	zap.S().Info("hearing reminder scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep reminds every party of tomorrow's hearings and marks them so
// a rerun does not remind twice
func (s *ReminderService) Sweep(ctx context.Context) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	hearings, err := s.hearingRepo.ListUpcomingUnreminded(ctx, from, to)
	if err != nil {
		return err
	}
	if len(hearings) == 0 {
		return nil
	}

	zap.S().Infow("sending hearing reminders", "count", len(hearings))
	for _, h := range hearings {
		s.remind(ctx, h)
		if err := s.hearingRepo.MarkReminderSent(ctx, h.ID); err != nil {
			zap.S().Errorw("failed to mark reminder sent", "hearing_id", h.ID, "error", err)
		}
	}
	return nil
}

func (s *ReminderService) remind(ctx context.Context, h *models.Hearing) {
	when := h.HearingDate.Format("02 Jan 2006 15:04")
	message := "Reminder: the case " + h.Case.CaseTitle + " has a hearing at " +
		h.CourtName + " on " + when + "."

	for _, userID := range []uint{h.Case.ClientID, h.Case.LawyerID} {
		if userID == 0 {
			continue
		}
		s.notificationSvc.NotifyUser(ctx, userID, "Hearing Tomorrow", message)

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			continue
		}
		name := user.Email
		if profile, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
			name = profile.FullName
		}
		s.emailSvc.SendHearingReminder(name, user.Email, h.Case.CaseTitle, h.CourtName, when)
	}
}
