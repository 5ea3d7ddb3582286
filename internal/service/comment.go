package service

import (
	"context"
	"strings"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/notifier"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/result"
)

// CommentService exposes comment threads per owning entity and the write
// pipeline. Comments carry no file uploads, so writes return plain results.
type CommentService struct {
	repo     *repository.CommentRepository
	notifier notifier.Notifier
}

// NewCommentService creates a service bound to one repository handle.
func NewCommentService(repo *repository.CommentRepository, n notifier.Notifier) *CommentService {
	return &CommentService{repo: repo, notifier: n}
}

func (s *CommentService) GetByID(ctx context.Context, id string) result.Result[domain.Comment] {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Err[domain.Comment](apperr.From(err))
	}
	if comment == nil {
		return result.Err[domain.Comment](apperr.NotFound("Kommentaren blev ikke fundet."))
	}
	return result.Ok(*comment)
}

// GetThread lists the top-level comments of one owning entity with direct
// replies. parentField is "matchResult", "tournament", or "event".
func (s *CommentService) GetThread(ctx context.Context, parentField, parentID string) result.Result[[]domain.Comment] {
	comments, err := s.repo.FindByParent(ctx, parentField, parentID)
	if err != nil {
		return result.Err[[]domain.Comment](apperr.From(err))
	}
	return result.Ok(comments)
}

// validateComment rejects blank content and enforces that exactly one owning
// entity is referenced. It runs before any store call.
func validateComment(data repository.CommentData) *apperr.Error {
	if strings.TrimSpace(data.Content) == "" {
		return apperr.Validation("En kommentar kan ikke være tom.")
	}
	parents := 0
	for _, ref := range []*string{data.MatchResultID, data.TournamentID, data.EventID} {
		if ref != nil {
			parents++
		}
	}
	if parents != 1 {
		return apperr.Validation("En kommentar skal høre til præcis ét kampresultat, stævne eller arrangement.").
			WithDetails(map[string]any{"parentRefs": parents})
	}
	return nil
}

func (s *CommentService) Create(ctx context.Context, data repository.CommentData) result.Result[domain.Comment] {
	if err := validateComment(data); err != nil {
		return result.Err[domain.Comment](err)
	}

	comment, err := s.repo.Create(ctx, data)
	if err != nil {
		return result.Err[domain.Comment](apperr.From(err))
	}

	notifyAsync("comment-created", func() error {
		return s.notifier.SendCommentCreated(comment)
	})
	return result.Ok(*comment)
}

func (s *CommentService) Update(ctx context.Context, id string, patch repository.CommentPatch) result.Result[domain.Comment] {
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return result.Err[domain.Comment](apperr.Validation("En kommentar kan ikke være tom."))
	}
	comment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return result.Err[domain.Comment](apperr.From(err))
	}
	return result.Ok(*comment)
}

func (s *CommentService) Delete(ctx context.Context, id string) result.Result[struct{}] {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Err[struct{}](apperr.From(err))
	}
	return result.Ok(struct{}{})
}
