// internal/service/token.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/directory/internal/auth"
	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/repository"
	"github.com/go-playground/validator/v10"
)

type TokenService struct {
	principals     repository.PrincipalRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewTokenService(
	principals repository.PrincipalRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *TokenService {
	return &TokenService{
		principals:     principals,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       newValidator(),
	}
}

type TokenInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IssueToken exchanges a username and password for a signed bearer token.
func (s *TokenService) IssueToken(ctx context.Context, input TokenInput) (*TokenOutput, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	principal, err := s.principals.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding principal: %w", err)
	}

	verified, err := s.passwordHasher.Verify(input.Password, principal.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !verified {
		return nil, domain.ErrInvalidCredentials
	}

	if principal.Disabled {
		return nil, domain.ErrInactivePrincipal
	}

	token, err := s.tokenManager.Generate(principal.Username)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &TokenOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenManager.ExpiryPeriod().Seconds()),
	}, nil
}
