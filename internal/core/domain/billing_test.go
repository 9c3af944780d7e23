package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeForCaseType(t *testing.T) {
	assert.Equal(t, float64(50000), FeeForCaseType("Civil"))
	assert.Equal(t, float64(80000), FeeForCaseType("Criminal"))
	assert.Equal(t, float64(30000), FeeForCaseType("Family"))
	assert.Equal(t, float64(120000), FeeForCaseType("Corporate"))
	assert.Equal(t, float64(60000), FeeForCaseType("Property"))
	assert.Equal(t, float64(0), FeeForCaseType("Maritime"))
	assert.Equal(t, float64(0), FeeForCaseType(""))
}

func TestCaseTypes(t *testing.T) {
	types := CaseTypes()
	assert.Len(t, types, 5)
	for _, ct := range types {
		assert.Greater(t, FeeForCaseType(ct), float64(0))
	}
}

func TestPayableAmount(t *testing.T) {
	tests := []struct {
		stage          string
		totalFee       float64
		advancePercent float64
		want           float64
	}{
		{StageAdvance, 50000, 50, 25000},
		{StageFinal, 50000, 50, 25000},
		{StageFull, 50000, 50, 50000},
		{StageAdvance, 80000, 25, 20000},
		{StageFinal, 80000, 25, 60000},
		{StageAdvance, 30000, 100, 30000},
		{StageFinal, 30000, 100, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%.0f_at_%.0f", tt.stage, tt.totalFee, tt.advancePercent), func(t *testing.T) {
			got := PayableAmount(tt.totalFee, tt.advancePercent, tt.stage)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestSplitInstallment(t *testing.T) {
	t.Run("advance goes entirely to the lawyer", func(t *testing.T) {
		admin, lawyer := SplitInstallment(25000, 50000, 10, StageAdvance)
		assert.Equal(t, float64(0), admin)
		assert.Equal(t, float64(25000), lawyer)
	})

	t.Run("final settles the firm cut on the whole fee", func(t *testing.T) {
		admin, lawyer := SplitInstallment(25000, 50000, 10, StageFinal)
		assert.InDelta(t, 5000, admin, 0.001)
		assert.InDelta(t, 20000, lawyer, 0.001)
	})

	t.Run("full payment splits on the collected amount", func(t *testing.T) {
		admin, lawyer := SplitInstallment(50000, 50000, 10, StageFull)
		assert.InDelta(t, 5000, admin, 0.001)
		assert.InDelta(t, 45000, lawyer, 0.001)
	})

	t.Run("installments of a split case sum to the full split", func(t *testing.T) {
		advAdmin, advLawyer := SplitInstallment(25000, 50000, 10, StageAdvance)
		finAdmin, finLawyer := SplitInstallment(25000, 50000, 10, StageFinal)
		fullAdmin, fullLawyer := SplitInstallment(50000, 50000, 10, StageFull)
		assert.InDelta(t, fullAdmin, advAdmin+finAdmin, 0.001)
		assert.InDelta(t, fullLawyer, advLawyer+finLawyer, 0.001)
	})

	t.Run("final cut above the installment drives the lawyer share negative", func(t *testing.T) {
		// 60% of the whole fee is settled at final while only the
		// remaining 50% of the fee is collected there.
		admin, lawyer := SplitInstallment(25000, 50000, 60, StageFinal)
		assert.InDelta(t, 30000, admin, 0.001)
		assert.InDelta(t, -5000, lawyer, 0.001)
	})

	t.Run("zero share rate", func(t *testing.T) {
		admin, lawyer := SplitInstallment(25000, 50000, 0, StageFinal)
		assert.Equal(t, float64(0), admin)
		assert.Equal(t, float64(25000), lawyer)
	})
}

func TestBusinessRuleError(t *testing.T) {
	err := RuleErrorf("lawyer already has %d open cases, the limit is %d", 5, 5)
	assert.True(t, IsBusinessRule(err))
	assert.Equal(t, "lawyer already has 5 open cases, the limit is 5", err.Error())

	wrapped := fmt.Errorf("creating case: %w", err)
	assert.True(t, IsBusinessRule(wrapped))

	assert.False(t, IsBusinessRule(ErrNotFound))
	assert.False(t, IsBusinessRule(errors.New("plain")))
	assert.False(t, IsBusinessRule(nil))
}
