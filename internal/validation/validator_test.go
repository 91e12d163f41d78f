package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/gongyuapp/gongyu-server/internal/errors"
)

type createRequest struct {
	URL   string `json:"url" validate:"required,url,max=2048"`
	Title string `json:"title" validate:"max=500"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, v.Validate(createRequest{URL: "https://example.com", Title: "Fine"}))
	})

	t.Run("missing url", func(t *testing.T) {
		err := v.Validate(createRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("not a url", func(t *testing.T) {
		err := v.Validate(createRequest{URL: "definitely not"})
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("url too long", func(t *testing.T) {
		err := v.Validate(createRequest{URL: "https://example.com/" + strings.Repeat("x", 2048)})
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("details use json field names", func(t *testing.T) {
		err := v.Validate(createRequest{URL: "https://example.com", Title: strings.Repeat("t", 501)})
		require.Error(t, err)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		details, ok := domainErr.Details.(map[string]string)
		require.True(t, ok)
		assert.Contains(t, details, "title")
	})
}
