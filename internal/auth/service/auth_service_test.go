package service

import (
	"context"
	"errors"
	"testing"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type fakeUsers struct {
	byID       map[int64]*usersdomain.User
	byUsername map[string]*usersdomain.User
	byUID      map[string]*usersdomain.User
	err        error
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*usersdomain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, usersdomain.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*usersdomain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, usersdomain.ErrUserNotFound
}

func (f *fakeUsers) GetByFirebaseUID(_ context.Context, uid string) (*usersdomain.User, error) {
	if u, ok := f.byUID[uid]; ok {
		return u, nil
	}
	return nil, usersdomain.ErrUserNotFound
}

type fakeTokens map[string]int64

func (f fakeTokens) Resolve(_ context.Context, key string) (int64, error) {
	if id, ok := f[key]; ok {
		return id, nil
	}
	return 0, domain.ErrInvalidToken
}

func (f fakeTokens) Revoke(_ context.Context, key string) error {
	if _, ok := f[key]; !ok {
		return domain.ErrInvalidToken
	}
	delete(f, key)
	return nil
}

var alice = &usersdomain.User{ID: 1, Username: "alice", Email: "alice@example.com"}

func TestTokenAuthenticator(t *testing.T) {
	users := &fakeUsers{byID: map[int64]*usersdomain.User{1: alice}}
	tokens := fakeTokens{"good": 1, "orphan": 99}
	a := NewTokenAuthenticator(tokens, users)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		u, err := a.Authenticate(ctx, "good")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("missing credential", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "bad")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "orphan")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("revoke", func(t *testing.T) {
		require.NoError(t, a.Revoke(ctx, "good"))
		_, err := a.Authenticate(ctx, "good")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("storage failure is not an auth error", func(t *testing.T) {
		broken := NewTokenAuthenticator(fakeTokens{"x": 1}, &fakeUsers{err: errors.New("db down")})
		_, err := broken.Authenticate(ctx, "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func signHS256(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTAuthenticator(t *testing.T) {
	users := &fakeUsers{byUsername: map[string]*usersdomain.User{"alice": alice}}
	a := NewJWTAuthenticator("s3cret", "clientdesk", users)
	ctx := context.Background()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("valid token", func(t *testing.T) {
		token := signHS256(t, "s3cret", jwt.RegisteredClaims{Subject: "alice", Issuer: "clientdesk", ExpiresAt: exp})
		u, err := a.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	tests := []struct {
		name   string
		secret string
		claims jwt.RegisteredClaims
	}{
		{"wrong secret", "other", jwt.RegisteredClaims{Subject: "alice", Issuer: "clientdesk", ExpiresAt: exp}},
		{"wrong issuer", "s3cret", jwt.RegisteredClaims{Subject: "alice", Issuer: "evil", ExpiresAt: exp}},
		{"expired", "s3cret", jwt.RegisteredClaims{Subject: "alice", Issuer: "clientdesk", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}},
		{"no expiry", "s3cret", jwt.RegisteredClaims{Subject: "alice", Issuer: "clientdesk"}},
		{"no subject", "s3cret", jwt.RegisteredClaims{Issuer: "clientdesk", ExpiresAt: exp}},
		{"unknown user", "s3cret", jwt.RegisteredClaims{Subject: "mallory", Issuer: "clientdesk", ExpiresAt: exp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(ctx, signHS256(t, tt.secret, tt.claims))
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	uid, ok := f[idToken]
	if !ok {
		return nil, errors.New("ID token has invalid signature")
	}
	return &firebaseauth.Token{UID: uid}, nil
}

func TestFirebaseAuthenticator(t *testing.T) {
	users := &fakeUsers{byUID: map[string]*usersdomain.User{"fb-alice": alice}}
	a := NewFirebaseAuthenticator(fakeVerifier{"id-token": "fb-alice", "stranger": "fb-unknown"}, users)
	ctx := context.Background()

	u, err := a.Authenticate(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = a.Authenticate(ctx, "forged")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = a.Authenticate(ctx, "stranger")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = a.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSignToken(t *testing.T) {
	users := &fakeUsers{byUsername: map[string]*usersdomain.User{"alice": alice}}
	a := NewJWTAuthenticator("s3cret", "clientdesk", users)

	token, err := SignToken("s3cret", "clientdesk", "alice", time.Hour)
	require.NoError(t, err)

	u, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}
