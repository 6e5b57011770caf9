package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/steamtrack/steamtrack/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "game",
			ID:       "620",
		}
		assert.Equal(t, "game with ID 620 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("deal", "portal-2")
		assert.Equal(t, "deal with ID portal-2 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("game", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "app_id",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field app_id: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Provider:   "steamspy",
			StatusCode: 429,
			Message:    "rate limit exceeded",
		}
		assert.Contains(t, err.Error(), "steamspy")
		assert.Contains(t, err.Error(), "429")
		assert.True(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("server errors map to unavailable", func(t *testing.T) {
		err := pkgerrors.NewAPIError("steam_store", 503, "bad gateway")
		assert.True(t, pkgerrors.IsProviderUnavailable(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.WrapAPI("protondb", 0, base)
		assert.True(t, errors.Is(err, base))
	})
}

func TestNoDataError(t *testing.T) {
	t.Run("with failures", func(t *testing.T) {
		err := pkgerrors.NewNoDataError("620", map[string]error{
			"steam_store": errors.New("timeout"),
			"steamspy":    errors.New("bad payload"),
		})
		assert.Contains(t, err.Error(), "620")
		assert.True(t, errors.Is(err, pkgerrors.ErrNoData))
		assert.True(t, pkgerrors.IsNoData(err))
	})

	t.Run("without failures", func(t *testing.T) {
		err := pkgerrors.NewNoDataError("440", nil)
		assert.Equal(t, "no provider returned data for app 440", err.Error())
	})
}

func TestTimeoutError(t *testing.T) {
	err := pkgerrors.NewTimeoutError("fetch", "30s", "provider hung")
	assert.Contains(t, err.Error(), "30s")
	assert.True(t, pkgerrors.IsTimeout(err))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapParse("json", "payload", nil))
		assert.Nil(t, pkgerrors.WrapIO("read", "/tmp/pins.yaml", nil))
		assert.Nil(t, pkgerrors.WrapAPI("steamspy", 0, nil))
	})

	t.Run("parse wrap", func(t *testing.T) {
		base := errors.New("unexpected end of input")
		err := pkgerrors.WrapParse("json", "appdetails response", base)
		assert.Contains(t, err.Error(), "appdetails response")
		assert.True(t, errors.Is(err, base))
	})
}
