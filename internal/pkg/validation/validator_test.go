package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"required,max=10"`
	Share    float64 `json:"share" validate:"gte=0,lte=100"`
	Role     string  `json:"role" validate:"omitempty,oneof=Client Lawyer"`
}

func TestValidate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs, err := Validate(sampleInput{
			Email:    "karim@example.com",
			FullName: "Karim",
			Share:    10,
			Role:     "Client",
		})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("field names come from json tags", func(t *testing.T) {
		errs, err := Validate(sampleInput{Email: "not-an-email"})
		require.NoError(t, err)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "full_name")
		assert.NotContains(t, errs, "FullName")
	})

	t.Run("messages per rule", func(t *testing.T) {
		errs, err := Validate(sampleInput{
			Email:    "karim@example.com",
			FullName: "name longer than ten",
			Share:    150,
			Role:     "Judge",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Must be at most 10 characters"}, errs["full_name"])
		assert.Equal(t, []string{"Must be less than or equal to 100"}, errs["share"])
		assert.Equal(t, []string{"Value is not allowed"}, errs["role"])
	})
}
