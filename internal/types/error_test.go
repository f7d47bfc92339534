package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasErrorCode(t *testing.T) {
	serviceErr := NewUnauthorizedError(errors.New("not the admin"))

	assert.True(t, HasErrorCode(serviceErr, Unauthorized))
	assert.False(t, HasErrorCode(serviceErr, PreconditionFailed))

	// Wrapping keeps the code reachable.
	wrapped := fmt.Errorf("queue rejected: %w", serviceErr)
	assert.True(t, HasErrorCode(wrapped, Unauthorized))

	assert.False(t, HasErrorCode(errors.New("plain"), Unauthorized))
	assert.False(t, HasErrorCode(nil, Unauthorized))
}
