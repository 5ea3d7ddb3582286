package service

import (
	"context"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/notifier"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/result"
)

// MatchResultService exposes match-result reads and the write pipeline
// (persist, attach media best-effort, refetch, notify).
type MatchResultService struct {
	repo     *repository.MatchResultRepository
	notifier notifier.Notifier
	metrics  metrics.Metrics
}

// NewMatchResultService creates a service bound to one repository handle.
func NewMatchResultService(repo *repository.MatchResultRepository, n notifier.Notifier, m metrics.Metrics) *MatchResultService {
	return &MatchResultService{repo: repo, notifier: n, metrics: m}
}

// GetByID promotes a missing record to a not-found failure: unlike the
// repository, a direct lookup means the caller expects the record to exist.
func (s *MatchResultService) GetByID(ctx context.Context, id string) result.Result[domain.MatchResult] {
	match, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Err[domain.MatchResult](apperr.From(err))
	}
	if match == nil {
		return result.Err[domain.MatchResult](apperr.NotFound("Kampresultatet blev ikke fundet."))
	}
	return result.Ok(*match)
}

func (s *MatchResultService) GetAll(ctx context.Context, opts repository.ListOptions) result.Result[[]domain.MatchResult] {
	matches, err := s.repo.FindAll(ctx, opts)
	if err != nil {
		return result.Err[[]domain.MatchResult](apperr.From(err))
	}
	return result.Ok(matches)
}

func (s *MatchResultService) GetPaginated(ctx context.Context, opts repository.ListOptions) result.Result[repository.Page[domain.MatchResult]] {
	page, err := s.repo.FindPaginated(ctx, opts)
	if err != nil {
		return result.Err[repository.Page[domain.MatchResult]](apperr.From(err))
	}
	return result.Ok(*page)
}

// GetByUser scopes the fetch to one member's submissions.
func (s *MatchResultService) GetByUser(ctx context.Context, userID string) result.Result[[]domain.MatchResult] {
	matches, err := s.repo.FindAll(ctx, repository.ListOptions{UserID: userID})
	if err != nil {
		return result.Err[[]domain.MatchResult](apperr.From(err))
	}
	return result.Ok(matches)
}

func validateMatchResult(data repository.MatchResultData) *apperr.Error {
	if missing := requireText(map[string]string{
		"homeTeam":  data.HomeTeam,
		"awayTeam":  data.AwayTeam,
		"matchDate": data.MatchDate,
	}); len(missing) > 0 {
		return apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing})
	}
	if data.HomeScore < 0 || data.AwayScore < 0 {
		return apperr.Validation("En score kan ikke være negativ.")
	}
	return nil
}

// Create persists the result, attaches media best-effort, and announces the
// new result in the club channel without awaiting delivery.
func (s *MatchResultService) Create(ctx context.Context, data repository.MatchResultData, files repository.FilesByField) result.WithWarnings[domain.MatchResult] {
	if err := validateMatchResult(data); err != nil {
		return result.ErrWith[domain.MatchResult](err)
	}

	match, uploads, err := s.repo.CreateWithFiles(ctx, data, files)
	if err != nil {
		return result.ErrWith[domain.MatchResult](apperr.From(err))
	}

	notifyAsync("match-result-created", func() error {
		return s.notifier.SendMatchResultCreated(match)
	})
	return result.OkWith(*match, uploadWarnings(uploads, s.metrics))
}

// Update applies a partial payload. Categories, when present, replace the
// record's full category set.
func (s *MatchResultService) Update(ctx context.Context, id string, patch repository.MatchResultPatch, files repository.FilesByField) result.WithWarnings[domain.MatchResult] {
	if missing := requirePatchText(map[string]*string{
		"homeTeam":  patch.HomeTeam,
		"awayTeam":  patch.AwayTeam,
		"matchDate": patch.MatchDate,
	}); len(missing) > 0 {
		return result.ErrWith[domain.MatchResult](apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing}))
	}
	if (patch.HomeScore != nil && *patch.HomeScore < 0) || (patch.AwayScore != nil && *patch.AwayScore < 0) {
		return result.ErrWith[domain.MatchResult](apperr.Validation("En score kan ikke være negativ."))
	}

	match, uploads, err := s.repo.UpdateWithFiles(ctx, id, patch, files)
	if err != nil {
		return result.ErrWith[domain.MatchResult](apperr.From(err))
	}

	notifyAsync("match-result-updated", func() error {
		return s.notifier.SendMatchResultUpdated(match)
	})
	return result.OkWith(*match, uploadWarnings(uploads, s.metrics))
}

func (s *MatchResultService) Delete(ctx context.Context, id string) result.Result[struct{}] {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Err[struct{}](apperr.From(err))
	}
	return result.Ok(struct{}{})
}
