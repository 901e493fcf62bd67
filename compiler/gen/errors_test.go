package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relgen/schema"
	"github.com/syssam/relgen/schema/field"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("User", "email", "invalid format", cause)

		assert.Contains(t, err.Error(), "relgen: plan error")
		assert.Contains(t, err.Error(), "class User")
		assert.Contains(t, err.Error(), "field email")
		assert.Contains(t, err.Error(), "invalid format")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with class only", func(t *testing.T) {
		err := &SchemaError{Type: "User"}
		assert.Contains(t, err.Error(), "class User")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("User", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Prefix differs from declaration errors", func(t *testing.T) {
		m := schema.NewManager()
		_, _ = m.RegisterClass("User", schema.Scalar("name", field.TypeString), schema.Scalar("name", field.TypeInt))
		_, err := NewGraph(MustNewConfig(), m)
		var se *SchemaError
		assert.ErrorAs(t, err, &se)
		assert.True(t, schema.IsSchemaError(err))
		assert.True(t, strings.HasPrefix(err.Error(), "relgen: plan error: "))
		assert.Contains(t, err.Error(), ": relgen: schema error on class User")
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("User", "", "", nil)
		assert.ErrorIs(t, err, ErrInvalidSchema)
		assert.NotErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError("User", "email", "test", nil)
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "workers cannot be negative")
		assert.Equal(t, `relgen: config error for "Workers" (value: -1): workers cannot be negative`, err.Error())
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.Equal(t, `relgen: config error for "Target": missing`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(NewSchemaError("User", "", "", nil)))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "/tmp/user.go", "", cause)

		assert.Contains(t, err.Error(), "in phase write")
		assert.Contains(t, err.Error(), "(file: /tmp/user.go)")
		assert.Contains(t, err.Error(), "disk full")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("render", "", "bad code", nil)
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
