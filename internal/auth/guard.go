// internal/auth/guard.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/model"
	"github.com/dangerclosesec/directory/internal/repository"
)

// Scheme names how a deployment expects callers to present their credential.
type Scheme string

const (
	SchemeBearer Scheme = "token"
	SchemeAPIKey Scheme = "apikey"
)

// Guard decides whether a presented credential is acceptable. Every failure
// wraps domain.ErrUnauthorized.
type Guard interface {
	Scheme() Scheme
	Authorize(ctx context.Context, credential string) (*model.Principal, error)
}

// TokenGuard accepts signed tokens whose subject is a known, enabled principal.
type TokenGuard struct {
	tokens     *TokenManager
	principals repository.PrincipalRepositoryIface
}

func NewTokenGuard(tokens *TokenManager, principals repository.PrincipalRepositoryIface) *TokenGuard {
	return &TokenGuard{
		tokens:     tokens,
		principals: principals,
	}
}

func (g *TokenGuard) Scheme() Scheme {
	return SchemeBearer
}

func (g *TokenGuard) Authorize(ctx context.Context, credential string) (*model.Principal, error) {
	if credential == "" {
		return nil, fmt.Errorf("missing token: %w", domain.ErrUnauthorized)
	}

	claims, err := g.tokens.Validate(credential)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}

	principal, err := g.principals.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown principal %q: %w", claims.Subject, domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolving principal: %w", err)
	}

	if principal.Disabled {
		return nil, fmt.Errorf("principal %q disabled: %w", principal.Username, domain.ErrUnauthorized)
	}

	return principal, nil
}

// APIKeyGuard accepts exactly one configured static key.
type APIKeyGuard struct {
	key []byte
}

func NewAPIKeyGuard(key string) *APIKeyGuard {
	return &APIKeyGuard{key: []byte(key)}
}

func (g *APIKeyGuard) Scheme() Scheme {
	return SchemeAPIKey
}

func (g *APIKeyGuard) Authorize(ctx context.Context, credential string) (*model.Principal, error) {
	// An unset key must never match an empty header.
	if len(g.key) == 0 || credential == "" {
		return nil, fmt.Errorf("missing api key: %w", domain.ErrUnauthorized)
	}

	if subtle.ConstantTimeCompare([]byte(credential), g.key) != 1 {
		return nil, fmt.Errorf("api key mismatch: %w", domain.ErrUnauthorized)
	}

	return &model.Principal{Username: model.APIKeyPrincipal}, nil
}
