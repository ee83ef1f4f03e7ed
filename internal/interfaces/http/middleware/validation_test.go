package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/interfaces/http/dto"
)

type validationProbe struct {
	Items   []string `json:"items" binding:"required,min=1"`
	Country string   `json:"country" binding:"required"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("reports fields by their JSON names", func(t *testing.T) {
		err := v.Struct(validationProbe{})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-42")
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Equal(t, "req-42", resp.Error.RequestID)

		fields := make([]string, 0, len(resp.Details))
		for _, d := range resp.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"items", "country"}, fields)
	})

	t.Run("min on a slice names the item count", func(t *testing.T) {
		err := v.Struct(validationProbe{Items: []string{}, Country: "US"})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "")
		require.Len(t, resp.Details, 1)
		assert.Contains(t, resp.Details[0].Message, "at least 1 items")
	})

	t.Run("non-validator errors carry no details", func(t *testing.T) {
		resp := FormatValidationErrors(errors.New("not a binding error"), "")
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Details)
	})
}
