package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "NotFound", err: NewBusiness("Product not found", CodeNotFound), want: http.StatusNotFound},
		{name: "Conflict", err: NewBusiness("dup", CodeConflict), want: http.StatusConflict},
		{name: "Unauthorized", err: NewBusiness("no session", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "Forbidden", err: NewBusiness("nope", CodeForbidden), want: http.StatusForbidden},
		{name: "InvalidFormat", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "InvalidInput", err: NewInvalidInput(nil, "quantity", "bad"), want: http.StatusUnprocessableEntity},
		{name: "OddPairs", err: NewInvalidInput(nil, "quantity"), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewFieldErrors(t *testing.T) {
	fields := map[string]string{"email": "Invalid email format"}

	err := NewFieldErrors(fields)
	fields["email"] = "changed"

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, TypeValidation, gerr.Type())
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, "Validation error", gerr.Msg())
	assert.Equal(t, map[string]string{"email": "Invalid email format"}, gerr.Fields())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("db down")
	err := NewServer(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "db down", err.Error())
	assert.Contains(t, err.(*Error).String(), "ERROR_TYPE_SERVER")
}
