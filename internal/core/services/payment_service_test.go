package services

import (
	"context"
	"testing"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPayable(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		requestFull bool
		wantStage   string
		wantAmount  float64
	}{
		{"unpaid advance", models.PaymentUnpaid, false, domain.StageAdvance, 25000},
		{"unpaid full", models.PaymentUnpaid, true, domain.StageFull, 50000},
		{"advance paid", models.PaymentAdvancePaid, false, domain.StageFinal, 25000},
		{"advance paid ignores full request", models.PaymentAdvancePaid, true, domain.StageFinal, 25000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, amount, err := NextPayable(tt.status, tt.requestFull, 50000, 50)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStage, stage)
			assert.InDelta(t, tt.wantAmount, amount, 0.001)
		})
	}

	t.Run("fully paid case rejects further payment", func(t *testing.T) {
		_, _, err := NextPayable(models.PaymentFullyPaid, false, 50000, 50)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("unknown status is invalid input", func(t *testing.T) {
		_, _, err := NextPayable("Refunded", false, 50000, 50)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.False(t, domain.IsBusinessRule(err))
	})

	t.Run("advance percent drives the installment sizes", func(t *testing.T) {
		stage, amount, err := NextPayable(models.PaymentUnpaid, false, 80000, 25)
		require.NoError(t, err)
		assert.Equal(t, domain.StageAdvance, stage)
		assert.InDelta(t, 20000, amount, 0.001)

		stage, amount, err = NextPayable(models.PaymentAdvancePaid, false, 80000, 25)
		require.NoError(t, err)
		assert.Equal(t, domain.StageFinal, stage)
		assert.InDelta(t, 60000, amount, 0.001)
	})
}

func newPaymentServiceForTest(payments *fakePaymentStore, cases *fakeCaseStore, notes *fakeNotifier) *PaymentService {
	return NewPaymentService(payments, cases, newFakeProfileRepo(), newFakeUserRepo(), notes, nil, config.PolicyConfig{
		AdvancePercent:     50,
		MinHearingsToClose: 1,
		WorkloadCeiling:    5,
	}, "http://localhost:3000")
}

func TestHandleSuccess(t *testing.T) {
	ctx := context.Background()

	unpaidCase := func() *models.Case {
		c := activeCase()
		c.Status = models.CasePending
		c.PaymentStatus = models.PaymentUnpaid
		c.AdminSharePercentage = 10
		return c
	}

	t.Run("advance callback posts the record and flips the case", func(t *testing.T) {
		c := unpaidCase()
		payments := newFakePaymentStore()
		notes := &fakeNotifier{}
		svc := newPaymentServiceForTest(payments, newFakeCaseStore(c), notes)

		payment, err := svc.HandleSuccess(ctx, CallbackInput{
			TransactionID: "LEX-TEST0001",
			Amount:        25000,
			CaseID:        c.ID.String(),
			Stage:         domain.StageAdvance,
			CardType:      "VISA",
		})
		require.NoError(t, err)
		assert.Equal(t, 25000.0, payment.Amount)
		assert.Equal(t, 0.0, payment.AdminShare)
		assert.Equal(t, 25000.0, payment.LawyerShare)
		assert.Equal(t, models.PaymentAdvancePaid, c.PaymentStatus)
		assert.NotEmpty(t, notes.broadcasts)
	})

	t.Run("replayed callback returns the original record and writes nothing", func(t *testing.T) {
		c := unpaidCase()
		payments := newFakePaymentStore()
		svc := newPaymentServiceForTest(payments, newFakeCaseStore(c), &fakeNotifier{})
		cb := CallbackInput{
			TransactionID: "LEX-TEST0002",
			Amount:        25000,
			CaseID:        c.ID.String(),
			Stage:         domain.StageAdvance,
		}

		first, err := svc.HandleSuccess(ctx, cb)
		require.NoError(t, err)
		require.Len(t, payments.created, 1)

		replayed, err := svc.HandleSuccess(ctx, cb)
		require.NoError(t, err)
		assert.Equal(t, first.TransactionID, replayed.TransactionID)
		assert.Len(t, payments.created, 1, "a replay must not post a second record")
		assert.Equal(t, models.PaymentAdvancePaid, c.PaymentStatus)
	})

	t.Run("final stage on an unpaid case is rejected", func(t *testing.T) {
		c := unpaidCase()
		payments := newFakePaymentStore()
		svc := newPaymentServiceForTest(payments, newFakeCaseStore(c), &fakeNotifier{})

		_, err := svc.HandleSuccess(ctx, CallbackInput{
			TransactionID: "LEX-TEST0003",
			Amount:        25000,
			CaseID:        c.ID.String(),
			Stage:         domain.StageFinal,
		})
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, payments.created)
		assert.Equal(t, models.PaymentUnpaid, c.PaymentStatus)
	})

	t.Run("a second advance under a fresh transaction id is rejected", func(t *testing.T) {
		c := unpaidCase()
		c.PaymentStatus = models.PaymentAdvancePaid
		payments := newFakePaymentStore()
		svc := newPaymentServiceForTest(payments, newFakeCaseStore(c), &fakeNotifier{})

		_, err := svc.HandleSuccess(ctx, CallbackInput{
			TransactionID: "LEX-TEST0004",
			Amount:        25000,
			CaseID:        c.ID.String(),
			Stage:         domain.StageAdvance,
		})
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, payments.created)
	})

	t.Run("missing amount falls back to the installment due", func(t *testing.T) {
		c := unpaidCase()
		payments := newFakePaymentStore()
		svc := newPaymentServiceForTest(payments, newFakeCaseStore(c), &fakeNotifier{})

		payment, err := svc.HandleSuccess(ctx, CallbackInput{
			TransactionID: "LEX-TEST0005",
			CaseID:        c.ID.String(),
			Stage:         domain.StageFull,
		})
		require.NoError(t, err)
		assert.Equal(t, 50000.0, payment.Amount)
		assert.Equal(t, models.PaymentFullyPaid, c.PaymentStatus)
	})

	t.Run("missing transaction id", func(t *testing.T) {
		svc := newPaymentServiceForTest(newFakePaymentStore(), newFakeCaseStore(), &fakeNotifier{})
		_, err := svc.HandleSuccess(ctx, CallbackInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
