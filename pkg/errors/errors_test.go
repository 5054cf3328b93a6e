package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromResponseMessagePrecedence(t *testing.T) {
	transport := errors.New("connection reset")

	cases := []struct {
		name     string
		status   int
		body     string
		err      error
		fallback string
		want     string
	}{
		{"server message wins", 400, `{"message":"phone already taken","error":"bad request"}`, transport, "could not save", "phone already taken"},
		{"error field second", 400, `{"error":"bad request"}`, transport, "could not save", "bad request"},
		{"nested data message", 422, `{"data":{"message":"group is full"}}`, nil, "could not save", "group is full"},
		{"transport third", 0, "", transport, "could not save", "connection reset"},
		{"fallback last", 500, `{}`, nil, "could not save", "could not save"},
		{"non-json body ignored", 502, `<html>bad gateway</html>`, nil, "could not save", "could not save"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromResponse(tc.status, []byte(tc.body), tc.err, tc.fallback)
			assert.Equal(t, tc.want, got.Message)
		})
	}
}

func TestFromResponseStatusMapping(t *testing.T) {
	assert.Equal(t, ErrUnauthorized.Code, FromResponse(http.StatusUnauthorized, nil, nil, "x").Code)
	assert.Equal(t, ErrNotFound.Code, FromResponse(http.StatusNotFound, nil, nil, "x").Code)
	assert.Equal(t, ErrTransport.Code, FromResponse(0, nil, errors.New("dial tcp"), "x").Code)
	assert.Equal(t, ErrTransport.Status, FromResponse(0, nil, errors.New("dial tcp"), "x").Status)
}

func TestFromErrorPassthrough(t *testing.T) {
	orig := Clone(ErrConflict, "already enrolled")
	assert.Same(t, orig, FromError(orig))

	wrapped := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, wrapped.Code)
}
