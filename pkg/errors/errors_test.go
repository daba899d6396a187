package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors(t *testing.T) {
	t.Run("ConfigError", func(t *testing.T) {
		err := NewConfigError("size", "must be positive", -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "-1")

		var cfg *ConfigError
		require.True(t, As(err, &cfg))
		assert.Equal(t, "size", cfg.Param)
	})

	t.Run("DimensionError", func(t *testing.T) {
		err := NewDimensionError("Fit", 10, 7, 0)
		assert.Contains(t, err.Error(), "rows")
		assert.Contains(t, err.Error(), "Expected 10, got 7")

		err = NewDimensionError("Fit", 5, 3, 1)
		assert.Contains(t, err.Error(), "columns")
	})

	t.Run("MissingContainerError", func(t *testing.T) {
		err := NewMissingContainerError("/tmp/data", "test")
		var missing *MissingContainerError
		require.True(t, As(err, &missing))
		assert.Equal(t, "test", missing.Group)
		assert.Contains(t, err.Error(), "Create()")
	})

	t.Run("NotFoundError with and without array", func(t *testing.T) {
		err := NewNotFoundError("/tmp/data", "train", "X")
		assert.Contains(t, err.Error(), "train/X")

		err = NewNotFoundError("/tmp/data", "train", "")
		assert.Contains(t, err.Error(), "group 'train'")
	})

	t.Run("ConflictError", func(t *testing.T) {
		err := NewConflictError("/tmp/data", "train", "y")
		var conflict *ConflictError
		require.True(t, As(err, &conflict))
		assert.Contains(t, err.Error(), "already populated")
	})

	t.Run("NotFittedError", func(t *testing.T) {
		err := NewNotFittedError("linear.Regression", "Predict")
		assert.Contains(t, err.Error(), "not fitted")
		assert.Contains(t, err.Error(), "Predict()")
	})
}

func TestWrappers(t *testing.T) {
	t.Run("wrap preserves the cause", func(t *testing.T) {
		base := New("base failure")
		wrapped := Wrapf(Wrap(base, "outer"), "layer %d", 2)

		assert.True(t, Is(wrapped, base))
		assert.Contains(t, wrapped.Error(), "layer 2")
		assert.Contains(t, wrapped.Error(), "outer")
	})

	t.Run("typed errors survive wrapping", func(t *testing.T) {
		err := Wrap(NewConfigError("obs", "must be positive", 0), "building generator")

		var cfg *ConfigError
		assert.True(t, As(err, &cfg))
	})

	t.Run("sentinels", func(t *testing.T) {
		assert.True(t, Is(Wrap(ErrStoreClosed, "write"), ErrStoreClosed))
		assert.False(t, Is(ErrEmptyData, ErrSingularMatrix))
	})
}
