package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToResponseHidesPassword(t *testing.T) {
	u := &User{
		ID:       1,
		Email:    "karim@example.com",
		Password: "$2a$12$secret",
		Role:     RoleClient,
		IsActive: true,
	}

	resp := u.ToResponse()
	assert.Equal(t, u.Email, resp.Email)
	assert.Equal(t, u.Role, resp.Role)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestCaseToResponse(t *testing.T) {
	id := uuid.New()
	c := &Case{
		ID:                   id,
		CaseTitle:            "Ahmed vs Rahman",
		CaseType:             "Civil",
		Status:               CaseActive,
		TotalFee:             50000,
		PaymentStatus:        PaymentAdvancePaid,
		AdminSharePercentage: 10,
		ClientID:             10,
		LawyerID:             20,
	}

	resp := c.ToResponse()
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, CaseActive, resp.Status)
	assert.Equal(t, float64(50000), resp.TotalFee)
	assert.Equal(t, PaymentAdvancePaid, resp.PaymentStatus)
	assert.Nil(t, resp.EndDate)
}

func TestPasswordResetIsExpired(t *testing.T) {
	fresh := &PasswordReset{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, fresh.IsExpired())

	stale := &PasswordReset{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, stale.IsExpired())
}
