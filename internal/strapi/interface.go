package strapi

import (
	"context"
	"encoding/json"
)

// Client defines the interface for interacting with the content store API.
// This allows for mock implementations to be used in tests.
//
// Documents are returned raw; the mapper package turns them into domain
// entities. FindOne reports a missing document as (nil, nil): not-found is a
// normal lookup outcome at this layer, never an error.
type Client interface {
	Find(ctx context.Context, collection string, q Query) (*DocumentList, error)
	FindOne(ctx context.Context, collection, documentID string, q Query) (json.RawMessage, error)
	Create(ctx context.Context, collection string, data any) (json.RawMessage, error)
	Update(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, documentID string) error
	Upload(ctx context.Context, req UploadRequest) ([]UploadedFile, error)
	Login(ctx context.Context, identifier, password string) (*AuthSession, error)
	Me(ctx context.Context) (json.RawMessage, error)

	// WithToken derives a client bound to one user's bearer token. Tokens are
	// request-scoped: an authenticated client is never shared across users.
	WithToken(token string) Client
}
