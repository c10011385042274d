package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", 400, `{"detail":"Username already registered"}`, "Username already registered"},
		{"empty string detail", 400, `{"detail":""}`, "Error: 400"},
		{"list of msgs", 422, `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, "field required, too short"},
		{"list item without msg", 422, `{"detail":[{"loc":["body","title"]}, {"msg":"bad"}]}`, `{"loc":["body","title"]}, bad`},
		{"empty list", 422, `{"detail":[]}`, "[]"},
		{"object detail", 409, `{"detail": {"code": 7}}`, `{"code":7}`},
		{"number detail", 500, `{"detail":42}`, "42"},
		{"null detail", 500, `{"detail":null}`, "Error: 500"},
		{"zero detail", 500, `{"detail":0}`, "Error: 500"},
		{"float zero detail", 500, `{"detail":0.0}`, "Error: 500"},
		{"false detail", 400, `{"detail":false}`, "Error: 400"},
		{"true detail", 400, `{"detail":true}`, "true"},
		{"no detail", 404, `{"error":"nope"}`, "Error: 404"},
		{"not json", 502, `<html>bad gateway</html>`, "Error: 502"},
		{"empty body", 503, ``, "Error: 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detailMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestNewStatusError_Classification(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{400, ErrValidation},
		{422, ErrValidation},
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{409, ErrServer},
		{500, ErrServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := newStatusError(tt.status, nil)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := newTransportError(cause)

	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, NetworkErrorMessage, err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))

	apiErr := newStatusError(400, []byte(`{"detail":"Title is required."}`))
	assert.Equal(t, "Title is required.", Message(fmt.Errorf("create post: %w", apiErr)))
}
