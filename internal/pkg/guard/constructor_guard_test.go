package guard_test

import (
	"errors"
	"testing"

	"shipping/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type reviewToken struct {
		value string
		guard guard.ConstructorGuard
	}

	var errTokenNotConstructed = errors.New("ReviewToken must be created via NewReviewToken")

	newReviewToken := func(value string) (reviewToken, error) {
		if value == "" {
			return reviewToken{}, errors.New("value is required")
		}
		return reviewToken{
			value: value,
			guard: guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		token, err := newReviewToken("opaque-token")

		require.NoError(t, err)
		require.NoError(t, token.guard.Validate(errTokenNotConstructed))
		assert.Equal(t, "opaque-token", token.value)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var token reviewToken // zero value

		err := token.guard.Validate(errTokenNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errTokenNotConstructed, err)
	})
}

func TestConstructorGuardCanBePassedByValue(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	guardCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, guardCopy.Validate(testError))
}
