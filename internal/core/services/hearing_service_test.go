package services

import (
	"context"
	"testing"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHearingServiceForTest(hearings *fakeHearingStore, cases *fakeCaseStore, profiles *fakeProfileRepo, notes *fakeNotifier) *HearingService {
	return NewHearingService(hearings, cases, profiles, notes)
}

func caseParties() []*models.UserProfile {
	return []*models.UserProfile{
		{UserID: 7, FullName: "Adv. Rahim Uddin", Role: models.RoleLawyer, Specialization: "Civil"},
		{UserID: 3, FullName: "Mina Rahman", Role: models.RoleClient},
	}
}

func TestAddHearing(t *testing.T) {
	ctx := context.Background()
	slot := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	input := HearingInput{HearingDate: slot, CourtName: "Dhaka Judge Court"}

	t.Run("scheduling locks both parties before the conflict check", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		profiles := newFakeProfileRepo(caseParties()...)
		notes := &fakeNotifier{}
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), profiles, notes)

		hearing, err := svc.AddHearing(ctx, c.ID, input, 7, models.RoleLawyer)
		require.NoError(t, err)
		assert.Equal(t, []uint{7, 3}, profiles.locked, "lawyer and client rows must both be held")
		assert.Len(t, hearings.created, 1)
		assert.Equal(t, c.ID, hearing.CaseID)
		assert.NotEmpty(t, notes.sent)
	})

	t.Run("conflicting slot is rejected", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		hearings.conflicts = 1
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), newFakeProfileRepo(caseParties()...), &fakeNotifier{})

		_, err := svc.AddHearing(ctx, c.ID, input, 7, models.RoleLawyer)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, hearings.created)
	})

	t.Run("a lawyer from another case cannot schedule", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), newFakeProfileRepo(caseParties()...), &fakeNotifier{})

		_, err := svc.AddHearing(ctx, c.ID, input, 99, models.RoleLawyer)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Empty(t, hearings.created)
	})

	t.Run("an admin can schedule on any case", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), newFakeProfileRepo(caseParties()...), &fakeNotifier{})

		_, err := svc.AddHearing(ctx, c.ID, input, 1, models.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("closed case rejects scheduling", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CaseClosed
		svc := newHearingServiceForTest(newFakeHearingStore(), newFakeCaseStore(c), newFakeProfileRepo(caseParties()...), &fakeNotifier{})

		_, err := svc.AddHearing(ctx, c.ID, input, 1, models.RoleAdmin)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("unknown case", func(t *testing.T) {
		svc := newHearingServiceForTest(newFakeHearingStore(), newFakeCaseStore(), newFakeProfileRepo(), &fakeNotifier{})
		_, err := svc.AddHearing(ctx, activeCase().ID, input, 1, models.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEditHearing(t *testing.T) {
	ctx := context.Background()
	oldSlot := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	newSlot := oldSlot.Add(48 * time.Hour)

	setup := func(c *models.Case) (*fakeHearingStore, *fakeProfileRepo, *HearingService, *models.Hearing) {
		hearing := &models.Hearing{
			ID:           11,
			CaseID:       c.ID,
			HearingDate:  oldSlot,
			CourtName:    "Dhaka Judge Court",
			ReminderSent: true,
		}
		hearings := newFakeHearingStore(hearing)
		profiles := newFakeProfileRepo(caseParties()...)
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), profiles, &fakeNotifier{})
		return hearings, profiles, svc, hearing
	}

	t.Run("reschedule resets the reminder and excludes itself from the conflict scan", func(t *testing.T) {
		c := activeCase()
		hearings, profiles, svc, hearing := setup(c)

		updated, err := svc.EditHearing(ctx, hearing.ID, HearingInput{HearingDate: newSlot, CourtName: "Dhaka Judge Court"}, 7, models.RoleLawyer)
		require.NoError(t, err)
		assert.False(t, updated.ReminderSent)
		assert.True(t, updated.HearingDate.Equal(newSlot))
		assert.Equal(t, hearing.ID, hearings.lastExclude)
		assert.Equal(t, []uint{7, 3}, profiles.locked)
	})

	t.Run("same slot keeps the reminder flag", func(t *testing.T) {
		c := activeCase()
		_, _, svc, hearing := setup(c)

		updated, err := svc.EditHearing(ctx, hearing.ID, HearingInput{HearingDate: oldSlot, CourtName: "Chattogram District Court"}, 7, models.RoleLawyer)
		require.NoError(t, err)
		assert.True(t, updated.ReminderSent)
		assert.Equal(t, "Chattogram District Court", updated.CourtName)
	})

	t.Run("a lawyer from another case cannot edit", func(t *testing.T) {
		c := activeCase()
		hearings, _, svc, hearing := setup(c)

		_, err := svc.EditHearing(ctx, hearing.ID, HearingInput{HearingDate: newSlot, CourtName: "Dhaka Judge Court"}, 99, models.RoleLawyer)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Empty(t, hearings.saved)
	})
}

func TestDeleteHearing(t *testing.T) {
	ctx := context.Background()

	setup := func(c *models.Case) (*fakeHearingStore, *HearingService) {
		hearing := &models.Hearing{ID: 11, CaseID: c.ID, HearingDate: time.Now().Add(72 * time.Hour)}
		hearings := newFakeHearingStore(hearing)
		svc := newHearingServiceForTest(hearings, newFakeCaseStore(c), newFakeProfileRepo(caseParties()...), &fakeNotifier{})
		return hearings, svc
	}

	t.Run("the assigned lawyer removes a hearing", func(t *testing.T) {
		hearings, svc := setup(activeCase())
		require.NoError(t, svc.DeleteHearing(ctx, 11, 7, models.RoleLawyer))
		assert.Equal(t, []uint{11}, hearings.deleted)
	})

	t.Run("a lawyer from another case cannot delete", func(t *testing.T) {
		hearings, svc := setup(activeCase())
		err := svc.DeleteHearing(ctx, 11, 99, models.RoleLawyer)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Empty(t, hearings.deleted)
	})

	t.Run("closed case keeps its hearings", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CaseClosed
		hearings, svc := setup(c)
		err := svc.DeleteHearing(ctx, 11, 1, models.RoleAdmin)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, hearings.deleted)
	})
}
