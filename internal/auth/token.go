package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

// expiryLeeway re-logins slightly before the token actually expires.
const expiryLeeway = time.Minute

// StaticToken is a TokenSource wrapping a pre-issued credential.
type StaticToken string

// Token returns the wrapped credential.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// loginClient is the slice of the gateway used to obtain a token.
type loginClient interface {
	Post(ctx context.Context, path string, body, out interface{}, fallback string) error
}

// LoginSource obtains a bearer token via the auth collaborator's login endpoint
// and re-logins once the token is about to expire. Auth policy beyond that is
// the collaborator's concern.
type LoginSource struct {
	client   loginClient
	email    string
	password string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewLoginSource constructs a LoginSource. The client must be unauthenticated
// to avoid recursing into this source.
func NewLoginSource(client loginClient, email, password string) *LoginSource {
	return &LoginSource{client: client, email: email, password: password}
}

// Token returns a cached token, logging in when none is held or expiry is near.
func (s *LoginSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && !s.expiresSoon() {
		return s.token, nil
	}

	var resp dto.LoginResponse
	if err := s.client.Post(ctx, "/auth/login", dto.LoginRequest{Email: s.email, Password: s.password}, &resp, "login failed"); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "login returned no token")
	}

	s.token = resp.Token
	s.expiresAt = tokenExpiry(resp.Token)
	return s.token, nil
}

func (s *LoginSource) expiresSoon() bool {
	if s.expiresAt.IsZero() {
		return false
	}
	return time.Now().Add(expiryLeeway).After(s.expiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature; verification
// is the server's job, the client only needs a refresh hint.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
