// internal/repository/principal.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/model"
)

type PrincipalRepositoryIface interface {
	FindByUsername(ctx context.Context, username string) (*model.Principal, error)
}

// PrincipalRepository is the lookup table of identities allowed to obtain tokens.
// It is resolved once at startup.
type PrincipalRepository struct {
	principals map[string]model.Principal
}

func NewPrincipalRepository(principals ...model.Principal) (*PrincipalRepository, error) {
	r := &PrincipalRepository{principals: make(map[string]model.Principal, len(principals))}
	for _, p := range principals {
		if p.Username == "" {
			return nil, fmt.Errorf("principal without username: %w", domain.ErrInvalidInput)
		}
		if _, ok := r.principals[p.Username]; ok {
			return nil, fmt.Errorf("principal %q: %w", p.Username, ErrDuplicateID)
		}
		r.principals[p.Username] = p
	}
	return r, nil
}

func (r *PrincipalRepository) FindByUsername(ctx context.Context, username string) (*model.Principal, error) {
	p, ok := r.principals[username]
	if !ok {
		return nil, fmt.Errorf("principal %q: %w", username, domain.ErrNotFound)
	}
	return &p, nil
}
