package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", 0, "must be at least 1")

		assert.Contains(t, err.Error(), "tablegen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "value: 0")
		assert.Contains(t, err.Error(), "must be at least 1")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Hooks", nil, "hook cannot be nil")

		assert.Contains(t, err.Error(), "Hooks")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := NewConfigError("Feature", "x", "unknown")
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		assert.True(t, IsConfigError(NewConfigError("Feature", "x", "unknown")))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestConfigurationError(t *testing.T) {
	t.Run("single problem", func(t *testing.T) {
		err := &ConfigurationError{Context: "main", Problems: []string{"missing target project"}}
		assert.Equal(t, `tablegen: configuration error in context "main": missing target project`, err.Error())
	})

	t.Run("several problems", func(t *testing.T) {
		err := &ConfigurationError{Problems: []string{"a", "b"}}
		assert.Contains(t, err.Error(), "2 problems")
		assert.Contains(t, err.Error(), "\n\ta")
		assert.Contains(t, err.Error(), "\n\tb")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := fmt.Errorf("load: %w", &ConfigurationError{Problems: []string{"a"}})
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.True(t, IsConfigurationError(err))
		assert.False(t, IsConfigurationError(errors.New("other")))
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewReferenceError("orders", "user_id", "user", "column not found", cause)

		assert.Contains(t, err.Error(), "tablegen: reference error")
		assert.Contains(t, err.Error(), "relation user")
		assert.Contains(t, err.Error(), "table orders")
		assert.Contains(t, err.Error(), "column user_id")
		assert.Contains(t, err.Error(), "column not found")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with table only", func(t *testing.T) {
		err := &ReferenceError{Table: "orders"}
		assert.Contains(t, err.Error(), "table orders")
		assert.NotContains(t, err.Error(), "column")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		err := NewReferenceError("orders", "", "", "", ErrInvalidRelation)
		assert.Equal(t, ErrInvalidRelation, err.Unwrap())
		assert.ErrorIs(t, err, ErrInvalidRelation)
		assert.ErrorIs(t, err, ErrUnresolvedReference)
	})

	t.Run("IsReferenceError helper", func(t *testing.T) {
		assert.True(t, IsReferenceError(&TableError{Table: "x", Err: NewReferenceError("x", "", "", "", nil)}))
		assert.False(t, IsReferenceError(errors.New("other")))
	})
}

func TestResolveErrors(t *testing.T) {
	ref := NewReferenceError("ghost", "", "ghost", "table not found", nil)
	err := &ResolveErrors{Errors: []*TableError{
		{Table: "orders", Err: ref},
		{Table: "payments", Err: errors.New("boom")},
	}}

	assert.Contains(t, err.Error(), "2 table(s) failed")
	assert.Contains(t, err.Error(), "table orders")
	assert.Equal(t, []string{"orders", "payments"}, err.Tables())
	assert.ErrorIs(t, err, ErrResolveFailed)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.True(t, IsResolveErrors(err))
	assert.False(t, IsResolveErrors(ref))

	var got *ReferenceError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "ghost", got.Table)
}
