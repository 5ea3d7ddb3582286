package strapi

import (
	"context"
	"encoding/json"
	"sync"
)

// Mock is a mock implementation of the Client interface for testing.
// It is safe for concurrent use. Behavior is customized by assigning the
// per-method Func fields; every call is recorded.
type Mock struct {
	mu sync.Mutex

	FindFunc    func(ctx context.Context, collection string, q Query) (*DocumentList, error)
	FindOneFunc func(ctx context.Context, collection, documentID string, q Query) (json.RawMessage, error)
	CreateFunc  func(ctx context.Context, collection string, data any) (json.RawMessage, error)
	UpdateFunc  func(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error)
	DeleteFunc  func(ctx context.Context, collection, documentID string) error
	UploadFunc  func(ctx context.Context, req UploadRequest) ([]UploadedFile, error)
	LoginFunc   func(ctx context.Context, identifier, password string) (*AuthSession, error)
	MeFunc      func(ctx context.Context) (json.RawMessage, error)

	FindCalls []struct {
		Collection string
		Query      Query
	}
	FindOneCalls []struct {
		Collection string
		DocumentID string
		Query      Query
	}
	CreateCalls []struct {
		Collection string
		Data       any
	}
	UpdateCalls []struct {
		Collection string
		DocumentID string
		Data       any
	}
	DeleteCalls []struct {
		Collection string
		DocumentID string
	}
	UploadCalls []UploadRequest
	LoginCalls  []string
	MeCalls     int
	Tokens      []string
}

var _ Client = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Find(ctx context.Context, collection string, q Query) (*DocumentList, error) {
	m.mu.Lock()
	m.FindCalls = append(m.FindCalls, struct {
		Collection string
		Query      Query
	}{collection, q})
	fn := m.FindFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, collection, q)
	}
	return &DocumentList{}, nil
}

func (m *Mock) FindOne(ctx context.Context, collection, documentID string, q Query) (json.RawMessage, error) {
	m.mu.Lock()
	m.FindOneCalls = append(m.FindOneCalls, struct {
		Collection string
		DocumentID string
		Query      Query
	}{collection, documentID, q})
	fn := m.FindOneFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, collection, documentID, q)
	}
	return nil, nil
}

func (m *Mock) Create(ctx context.Context, collection string, data any) (json.RawMessage, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, struct {
		Collection string
		Data       any
	}{collection, data})
	fn := m.CreateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, collection, data)
	}
	return json.RawMessage(`{}`), nil
}

func (m *Mock) Update(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		Collection string
		DocumentID string
		Data       any
	}{collection, documentID, data})
	fn := m.UpdateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, collection, documentID, data)
	}
	return json.RawMessage(`{}`), nil
}

func (m *Mock) Delete(ctx context.Context, collection, documentID string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, struct {
		Collection string
		DocumentID string
	}{collection, documentID})
	fn := m.DeleteFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, collection, documentID)
	}
	return nil
}

func (m *Mock) Upload(ctx context.Context, req UploadRequest) ([]UploadedFile, error) {
	m.mu.Lock()
	m.UploadCalls = append(m.UploadCalls, req)
	fn := m.UploadFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return nil, nil
}

func (m *Mock) Login(ctx context.Context, identifier, password string) (*AuthSession, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, identifier)
	fn := m.LoginFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, identifier, password)
	}
	return &AuthSession{Token: "mock-token"}, nil
}

func (m *Mock) Me(ctx context.Context) (json.RawMessage, error) {
	m.mu.Lock()
	m.MeCalls++
	fn := m.MeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, nil
}

func (m *Mock) WithToken(token string) Client {
	m.mu.Lock()
	m.Tokens = append(m.Tokens, token)
	m.mu.Unlock()
	return m
}
