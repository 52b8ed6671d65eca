package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workoutapp/backend/internal/config"
	"github.com/workoutapp/backend/internal/db"
	"github.com/workoutapp/backend/internal/model"
)

var (
	ErrInvalidToken  = errors.New("token expired or invalid")
	ErrMisconfigured = errors.New("auth config invalid")
)

type TokenStore interface {
	SaveToken(ctx context.Context, hash []byte, userID int64, scope string, expiry time.Time) error
	FindUserIDByTokenHash(ctx context.Context, hash []byte, scope string, now time.Time) (int64, error)
	DeleteTokensForUser(ctx context.Context, userID int64, scope string) error
}

// TokenService is the only component that mints or validates tokens.
type TokenService struct {
	store TokenStore
	codec TokenCodec
	ttl   time.Duration
}

func NewTokenService(store TokenStore, codec TokenCodec, cfg config.AuthConfig) (*TokenService, error) {
	ttl, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_TOKEN_TTL", ErrMisconfigured)
	}

	return &TokenService{
		store: store,
		codec: codec,
		ttl:   ttl,
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a token for the user under the "authentication" scope. The
// returned plaintext exists nowhere else: only its hash is persisted, and a
// failed save means no token was issued.
func (s *TokenService) Issue(ctx context.Context, userID int64) (string, time.Time, error) {
	plaintext, hash, err := s.codec.Generate()
	if err != nil {
		return "", time.Time{}, err
	}

	expiry := time.Now().Add(s.ttl)
	if err := s.store.SaveToken(ctx, hash, userID, model.ScopeAuthentication, expiry); err != nil {
		return "", time.Time{}, err
	}

	return plaintext, expiry, nil
}

// Resolve maps a client-supplied plaintext to its owning user id. Unknown and
// expired tokens both come back as ErrInvalidToken.
func (s *TokenService) Resolve(ctx context.Context, plaintext, scope string) (int64, error) {
	hash := s.codec.Hash(plaintext)

	userID, err := s.store.FindUserIDByTokenHash(ctx, hash, scope, time.Now())
	if err != nil {
		if db.IsNoRows(err) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	return userID, nil
}

// RevokeAll deletes every token the user holds under the scope.
func (s *TokenService) RevokeAll(ctx context.Context, userID int64, scope string) error {
	return s.store.DeleteTokensForUser(ctx, userID, scope)
}
