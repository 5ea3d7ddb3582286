package service

import (
	"context"
	"strings"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/result"
)

// Session is a successful login: the user record plus the bearer token the
// client sends on subsequent requests.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService exposes credential exchange and token resolution.
type AuthService struct {
	repo *repository.UserRepository
}

// NewAuthService creates a service bound to one repository handle.
func NewAuthService(repo *repository.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) result.Result[Session] {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return result.Err[Session](apperr.Validation("Udfyld venligst brugernavn og adgangskode."))
	}

	user, token, err := s.repo.Login(ctx, identifier, password)
	if err != nil {
		return result.Err[Session](apperr.From(err))
	}
	if user.Blocked {
		return result.Err[Session](apperr.Forbidden("Din konto er blokeret."))
	}
	return result.Ok(Session{User: *user, Token: token})
}

// CurrentUser resolves the caller's bearer token to its user record.
func (s *AuthService) CurrentUser(ctx context.Context) result.Result[domain.User] {
	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return result.Err[domain.User](apperr.From(err))
	}
	return result.Ok(*user)
}
