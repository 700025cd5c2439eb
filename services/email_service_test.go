package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendError_JoinsSubErrors(t *testing.T) {
	err := &SendError{Errors: []string{"sender not verified", "quota exceeded"}}
	assert.Equal(t, "sender not verified; quota exceeded", err.Error())
}

func TestSendErrorMessage(t *testing.T) {
	assert.Equal(t, "a; b", sendErrorMessage(&SendError{Errors: []string{"a", "b"}}))
	assert.Equal(t, "dial tcp: timeout", sendErrorMessage(errors.New("dial tcp: timeout")))
}
