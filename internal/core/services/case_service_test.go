package services

import (
	"context"
	"testing"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lawyerProfile(specialization string) *models.UserProfile {
	return &models.UserProfile{
		UserID:         7,
		FullName:       "Adv. Rahim Uddin",
		Role:           models.RoleLawyer,
		Specialization: specialization,
	}
}

func TestCheckAssignment(t *testing.T) {
	t.Run("matching specialization under the ceiling", func(t *testing.T) {
		err := CheckAssignment(lawyerProfile("Criminal"), "Criminal", 3, 5)
		assert.NoError(t, err)
	})

	t.Run("specialization match is case insensitive", func(t *testing.T) {
		err := CheckAssignment(lawyerProfile("criminal"), "Criminal", 0, 5)
		assert.NoError(t, err)
	})

	t.Run("not a lawyer", func(t *testing.T) {
		p := lawyerProfile("Civil")
		p.Role = models.RoleClient
		err := CheckAssignment(p, "Civil", 0, 5)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("specialization mismatch names both sides", func(t *testing.T) {
		err := CheckAssignment(lawyerProfile("Family"), "Corporate", 0, 5)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Contains(t, err.Error(), "Family")
		assert.Contains(t, err.Error(), "Corporate")
	})

	t.Run("workload at the ceiling", func(t *testing.T) {
		err := CheckAssignment(lawyerProfile("Civil"), "Civil", 5, 5)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Contains(t, err.Error(), "5 open cases")
	})

	t.Run("workload just under the ceiling", func(t *testing.T) {
		err := CheckAssignment(lawyerProfile("Civil"), "Civil", 4, 5)
		assert.NoError(t, err)
	})
}

func TestAuthorizeCaseAccess(t *testing.T) {
	c := &models.Case{ClientID: 10, LawyerID: 20}

	assert.NoError(t, authorizeCaseAccess(c, 99, models.RoleAdmin))
	assert.NoError(t, authorizeCaseAccess(c, 10, models.RoleClient))
	assert.NoError(t, authorizeCaseAccess(c, 20, models.RoleLawyer))

	assert.ErrorIs(t, authorizeCaseAccess(c, 11, models.RoleClient), domain.ErrAccessDenied)
	assert.ErrorIs(t, authorizeCaseAccess(c, 21, models.RoleLawyer), domain.ErrAccessDenied)
	// parties do not gain access through the other party's role
	assert.ErrorIs(t, authorizeCaseAccess(c, 20, models.RoleClient), domain.ErrAccessDenied)
}

func TestCaseStatusValid(t *testing.T) {
	assert.True(t, models.CasePending.Valid())
	assert.True(t, models.CaseActive.Valid())
	assert.True(t, models.CaseRejected.Valid())
	assert.True(t, models.CaseClosed.Valid())
	assert.False(t, models.CaseStatus("Archived").Valid())
	assert.False(t, models.CaseStatus("").Valid())
}

func newCaseServiceForTest(cases *fakeCaseStore, hearings *fakeHearingStore, users *fakeUserRepo, profiles *fakeProfileRepo, notes *fakeNotifier) *CaseService {
	return NewCaseService(cases, hearings, users, profiles, notes, config.PolicyConfig{
		AdvancePercent:     50,
		MinHearingsToClose: 1,
		WorkloadCeiling:    5,
	})
}

func activeCase() *models.Case {
	return &models.Case{
		ID:            uuid.New(),
		CaseTitle:     "Rahman vs Chowdhury",
		CaseType:      "Civil",
		Status:        models.CaseActive,
		PaymentStatus: models.PaymentAdvancePaid,
		TotalFee:      50000,
		ClientID:      3,
		LawyerID:      7,
	}
}

func TestCreateCase(t *testing.T) {
	ctx := context.Background()
	client := &models.User{ID: 3, Email: "client@example.com", Role: models.RoleClient, IsActive: true}
	input := CreateCaseInput{
		CaseTitle:            "Rahman vs Chowdhury",
		CaseType:             "Civil",
		ClientID:             3,
		LawyerID:             7,
		AdminSharePercentage: 10,
	}

	t.Run("files the case with the scheduled fee under a locked profile", func(t *testing.T) {
		cases := newFakeCaseStore()
		profiles := newFakeProfileRepo(lawyerProfile("Civil"))
		svc := newCaseServiceForTest(cases, newFakeHearingStore(), newFakeUserRepo(client), profiles, &fakeNotifier{})

		created, err := svc.CreateCase(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, []uint{7}, profiles.locked)
		assert.Equal(t, models.CasePending, created.Status)
		assert.Equal(t, models.PaymentUnpaid, created.PaymentStatus)
		assert.Equal(t, 50000.0, created.TotalFee)
		assert.Len(t, cases.created, 1)
	})

	t.Run("workload at the ceiling blocks the filing", func(t *testing.T) {
		cases := newFakeCaseStore()
		cases.open = 5
		svc := newCaseServiceForTest(cases, newFakeHearingStore(), newFakeUserRepo(client), newFakeProfileRepo(lawyerProfile("Civil")), &fakeNotifier{})

		_, err := svc.CreateCase(ctx, input)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, cases.created)
	})

	t.Run("the assignee must be a client", func(t *testing.T) {
		lawyerAccount := &models.User{ID: 3, Email: "client@example.com", Role: models.RoleLawyer, IsActive: true}
		svc := newCaseServiceForTest(newFakeCaseStore(), newFakeHearingStore(), newFakeUserRepo(lawyerAccount), newFakeProfileRepo(lawyerProfile("Civil")), &fakeNotifier{})

		_, err := svc.CreateCase(ctx, input)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})
}

func TestAcceptCase(t *testing.T) {
	ctx := context.Background()

	t.Run("unpaid case cannot be accepted", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CasePending
		c.PaymentStatus = models.PaymentUnpaid
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.AcceptCase(ctx, c.ID, 7)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Equal(t, models.CasePending, c.Status)
	})

	t.Run("only the assigned lawyer may accept", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CasePending
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.AcceptCase(ctx, c.ID, 9)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("paid pending case activates and notifies both sides", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CasePending
		notes := &fakeNotifier{}
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), notes)

		updated, err := svc.AcceptCase(ctx, c.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, models.CaseActive, updated.Status)
		assert.NotEmpty(t, notes.sent)
		assert.NotEmpty(t, notes.broadcasts)
	})

	t.Run("an active case cannot be accepted again", func(t *testing.T) {
		c := activeCase()
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.AcceptCase(ctx, c.ID, 7)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("closing without the minimum hearings is blocked", func(t *testing.T) {
		c := activeCase()
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.UpdateStatus(ctx, c.ID, models.CaseClosed, 1, models.RoleAdmin)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Equal(t, models.CaseActive, c.Status)
	})

	t.Run("closing with enough hearings stamps the end date", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		hearings.perCase = 1
		svc := newCaseServiceForTest(newFakeCaseStore(c), hearings, newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		updated, err := svc.UpdateStatus(ctx, c.ID, models.CaseClosed, 7, models.RoleLawyer)
		require.NoError(t, err)
		assert.Equal(t, models.CaseClosed, updated.Status)
		assert.NotNil(t, updated.EndDate)
	})

	t.Run("moving off closed clears the end date", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CaseClosed
		now := time.Now()
		c.EndDate = &now
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		updated, err := svc.UpdateStatus(ctx, c.ID, models.CaseActive, 1, models.RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, updated.EndDate)
	})

	t.Run("a lawyer from another case cannot move it", func(t *testing.T) {
		c := activeCase()
		hearings := newFakeHearingStore()
		hearings.perCase = 3
		svc := newCaseServiceForTest(newFakeCaseStore(c), hearings, newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.UpdateStatus(ctx, c.ID, models.CaseClosed, 99, models.RoleLawyer)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Equal(t, models.CaseActive, c.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		c := activeCase()
		svc := newCaseServiceForTest(newFakeCaseStore(c), newFakeHearingStore(), newFakeUserRepo(), newFakeProfileRepo(), &fakeNotifier{})

		_, err := svc.UpdateStatus(ctx, c.ID, models.CaseStatus("Archived"), 1, models.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
