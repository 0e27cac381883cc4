package scout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("message includes cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewTransientError("chat failed", 503, cause)

		assert.Equal(t, "chat failed: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.True(t, err.Transient())
		assert.Equal(t, 503, err.StatusCode())
	})

	t.Run("message without cause", func(t *testing.T) {
		err := NewPermanentError("bad key", 401, nil)
		assert.Equal(t, "bad key", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.False(t, err.Transient())
	})
}

func TestCategoryHelpers(t *testing.T) {
	transient := fmt.Errorf("wrapped: %w", NewTransientError("x", 429, nil))
	permanent := NewPermanentError("x", 403, nil)
	userInput := NewUserInputError("x", 400, nil)
	plain := errors.New("plain")

	assert.True(t, IsTransient(transient))
	assert.False(t, IsPermanent(transient))
	assert.True(t, IsPermanent(permanent))
	assert.True(t, IsUserInput(userInput))

	assert.False(t, IsTransient(plain))
	assert.Equal(t, ErrorCategory(""), CategoryOf(plain))

	assert.Equal(t, 429, StatusCodeOf(transient))
	assert.Equal(t, 0, StatusCodeOf(plain))
}

func TestCategorizeStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCategory
	}{
		{429, ErrorTransient},
		{500, ErrorTransient},
		{503, ErrorTransient},
		{529, ErrorTransient},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{400, ErrorUserInput},
		{404, ErrorUserInput},
		{422, ErrorUserInput},
		{418, ErrorPermanent},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeStatusCode(tt.code))
			assert.Equal(t, tt.want, NewStatusError("x", tt.code, nil).Category())
		})
	}
}
