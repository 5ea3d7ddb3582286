package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// UserRepository wraps the store's auth plugin. Users do not share the CRUD
// contract of content collections: their endpoints answer with bare records
// instead of the data envelope, so this repository stays narrow.
type UserRepository struct {
	client strapi.Client
}

// NewUserRepository creates a repository bound to one client handle.
func NewUserRepository(client strapi.Client) *UserRepository {
	return &UserRepository{client: client}
}

// Login exchanges credentials for a session token plus the user record.
func (r *UserRepository) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	session, err := r.client.Login(ctx, identifier, password)
	if err != nil {
		return nil, "", err
	}
	user, err := mapper.MapUser(session.User)
	if err != nil {
		return nil, "", err
	}
	return &user, session.Token, nil
}

// CurrentUser resolves the client's bearer token to its user record.
func (r *UserRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	raw, err := r.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	user, err := mapper.MapUser(raw)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
