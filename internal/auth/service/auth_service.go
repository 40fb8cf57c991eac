package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

// UserLookup is the subset of the user repository the authenticators need.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*usersdomain.User, error)
	GetByUsername(ctx context.Context, username string) (*usersdomain.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*usersdomain.User, error)
}

// TokenStore resolves and revokes opaque API tokens.
type TokenStore interface {
	Resolve(ctx context.Context, key string) (int64, error)
	Revoke(ctx context.Context, key string) error
}

// resolveUser turns a missing user into ErrInvalidToken so that a credential
// for a deleted account is rejected with 401.
func resolveUser(user *usersdomain.User, err error) (*usersdomain.User, error) {
	if errors.Is(err, usersdomain.ErrUserNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// TokenAuthenticator accepts opaque tokens stored in Redis.
type TokenAuthenticator struct {
	tokens TokenStore
	users  UserLookup
}

func NewTokenAuthenticator(tokens TokenStore, users UserLookup) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, users: users}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, credential string) (*usersdomain.User, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := a.tokens.Resolve(ctx, credential)
	if err != nil {
		return nil, err
	}
	return resolveUser(a.users.GetByID(ctx, userID))
}

// Revoke invalidates the presented token.
func (a *TokenAuthenticator) Revoke(ctx context.Context, credential string) error {
	return a.tokens.Revoke(ctx, credential)
}

// JWTAuthenticator accepts HS256 tokens whose subject is a username.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	users  UserLookup
}

func NewJWTAuthenticator(secret, issuer string, users UserLookup) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), issuer: issuer, users: users}
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, credential string) (*usersdomain.User, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	username := strings.TrimSpace(claims.Subject)
	if username == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return resolveUser(a.users.GetByUsername(ctx, username))
}

// IDTokenVerifier is satisfied by *auth.Client from the Firebase Admin SDK.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseAuthenticator accepts Firebase ID tokens and maps their UID to a
// local user.
type FirebaseAuthenticator struct {
	verifier IDTokenVerifier
	users    UserLookup
}

func NewFirebaseAuthenticator(verifier IDTokenVerifier, users UserLookup) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier, users: users}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, credential string) (*usersdomain.User, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	decoded, err := a.verifier.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return resolveUser(a.users.GetByFirebaseUID(ctx, decoded.UID))
}

// SignToken mints an HS256 token accepted by JWTAuthenticator.
func SignToken(secret, issuer, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
