package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeAuth, 100, "Invalid API Key (%s)", "Key has invalid format")
	assert.Equal(t, "auth error (code 100): Invalid API Key (Key has invalid format)", err.Error())
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("load licenses: %w", New(ErrorTypeNetwork, 0, "connection refused"))

	assert.True(t, IsType(err, ErrorTypeNetwork))
	assert.False(t, IsType(err, ErrorTypeAuth))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeNetwork))
}

func TestTypeForAPICode(t *testing.T) {
	tests := []struct {
		code int
		want ErrorType
	}{
		{100, ErrorTypeAuth},
		{96, ErrorTypeAuth},
		{97, ErrorTypeAuth},
		{1, ErrorTypeNotFound},
		{3, ErrorTypeAPI},
		{105, ErrorTypeAPI},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeForAPICode(tt.code), "code %d", tt.code)
	}
}

func TestTypeForStatusCode(t *testing.T) {
	assert.Equal(t, ErrorTypeAuth, TypeForStatusCode(403))
	assert.Equal(t, ErrorTypeNotFound, TypeForStatusCode(404))
	assert.Equal(t, ErrorTypeRateLimit, TypeForStatusCode(429))
	assert.Equal(t, ErrorTypeServerError, TypeForStatusCode(502))
	assert.Equal(t, ErrorTypeUnknown, TypeForStatusCode(418))
}
