package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

type mockLoginClient struct {
	token  string
	err    error
	calls  int
	lastIn dto.LoginRequest
}

func (m *mockLoginClient) Post(_ context.Context, _ string, body, out interface{}, _ string) error {
	m.calls++
	if req, ok := body.(dto.LoginRequest); ok {
		m.lastIn = req
	}
	if m.err != nil {
		return m.err
	}
	raw, _ := json.Marshal(dto.LoginResponse{Token: m.token})
	return json.Unmarshal(raw, out)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "admin"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestLoginSourceCachesToken(t *testing.T) {
	client := &mockLoginClient{token: signedToken(t, time.Now().Add(time.Hour))}
	source := NewLoginSource(client, "admin@example.com", "secret")

	first, err := source.Token(context.Background())
	require.NoError(t, err)
	second, err := source.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "admin@example.com", client.lastIn.Email)
}

func TestLoginSourceReloginsNearExpiry(t *testing.T) {
	client := &mockLoginClient{token: signedToken(t, time.Now().Add(10*time.Second))}
	source := NewLoginSource(client, "admin@example.com", "secret")

	_, err := source.Token(context.Background())
	require.NoError(t, err)
	_, err = source.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
}

func TestLoginSourcePropagatesFailure(t *testing.T) {
	client := &mockLoginClient{err: appErrors.Clone(appErrors.ErrUnauthorized, "bad credentials")}
	source := NewLoginSource(client, "admin@example.com", "wrong")

	_, err := source.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, "bad credentials", appErrors.FromError(err).Message)
}

func TestLoginSourceRejectsEmptyToken(t *testing.T) {
	client := &mockLoginClient{token: ""}
	source := NewLoginSource(client, "admin@example.com", "secret")

	_, err := source.Token(context.Background())
	require.Error(t, err)
}
