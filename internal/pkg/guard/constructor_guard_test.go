package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("entity not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_their_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errLineNotConstructed := errors.New("line must be created via newLine")

	type line struct {
		sku      string
		quantity int
		guard    guard.ConstructorGuard
	}

	newLine := func(sku string, quantity int) (line, error) {
		if sku == "" {
			return line{}, errors.New("sku is required")
		}
		if quantity <= 0 {
			return line{}, errors.New("quantity must be positive")
		}
		return line{sku: sku, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		l, err := newLine("SKU-1", 2)

		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("literal_value_fails_validation", func(t *testing.T) {
		l := line{sku: "SKU-1", quantity: 2}

		assert.Equal(t, errLineNotConstructed, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("constructor_rejects_bad_input", func(t *testing.T) {
		_, err := newLine("", 1)
		require.EqualError(t, err, "sku is required")

		_, err = newLine("SKU-1", 0)
		require.EqualError(t, err, "quantity must be positive")
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})

	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 200 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}
	for range 50 {
		<-done
	}
}
