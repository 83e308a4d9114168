package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Validation("LogMeal", "portion multiplier must be positive, got %v", -1.0))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "LogMeal: portion multiplier must be positive, got -1")
}

func TestPersistenceWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence("meal_logs.create", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "meal_logs.create: persistence error: connection refused", err.Error())
}

func TestPersistenceKeepsExistingKind(t *testing.T) {
	notFound := NotFound("water.delete", "entry %s", "abc")

	err := Persistence("water.delete", notFound)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrPersistence)
	assert.Nil(t, Persistence("noop", nil))
}
