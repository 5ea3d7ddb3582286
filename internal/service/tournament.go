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

// TournamentService exposes tournament reads, the write pipeline, and the
// sequential creation of a tournament's matches.
type TournamentService struct {
	repo      *repository.TournamentRepository
	matchRepo *repository.TournamentMatchRepository
	notifier  notifier.Notifier
	metrics   metrics.Metrics
}

// NewTournamentService creates a service bound to one repository handle.
func NewTournamentService(repo *repository.TournamentRepository, matchRepo *repository.TournamentMatchRepository, n notifier.Notifier, m metrics.Metrics) *TournamentService {
	return &TournamentService{repo: repo, matchRepo: matchRepo, notifier: n, metrics: m}
}

func (s *TournamentService) GetByID(ctx context.Context, id string) result.Result[domain.Tournament] {
	tournament, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Err[domain.Tournament](apperr.From(err))
	}
	if tournament == nil {
		return result.Err[domain.Tournament](apperr.NotFound("Stævnet blev ikke fundet."))
	}
	return result.Ok(*tournament)
}

func (s *TournamentService) GetAll(ctx context.Context, opts repository.ListOptions) result.Result[[]domain.Tournament] {
	tournaments, err := s.repo.FindAll(ctx, opts)
	if err != nil {
		return result.Err[[]domain.Tournament](apperr.From(err))
	}
	return result.Ok(tournaments)
}

func (s *TournamentService) GetPaginated(ctx context.Context, opts repository.ListOptions) result.Result[repository.Page[domain.Tournament]] {
	page, err := s.repo.FindPaginated(ctx, opts)
	if err != nil {
		return result.Err[repository.Page[domain.Tournament]](apperr.From(err))
	}
	return result.Ok(*page)
}

func (s *TournamentService) GetByUser(ctx context.Context, userID string) result.Result[[]domain.Tournament] {
	tournaments, err := s.repo.FindAll(ctx, repository.ListOptions{UserID: userID})
	if err != nil {
		return result.Err[[]domain.Tournament](apperr.From(err))
	}
	return result.Ok(tournaments)
}

// GetMatches fetches a tournament's matches separately from the parent, for
// callers that did not load the tournament itself.
func (s *TournamentService) GetMatches(ctx context.Context, tournamentID string) result.Result[[]domain.TournamentMatch] {
	matches, err := s.matchRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		return result.Err[[]domain.TournamentMatch](apperr.From(err))
	}
	return result.Ok(matches)
}

func validateTournament(data repository.TournamentData) *apperr.Error {
	if missing := requireText(map[string]string{
		"name":     data.Name,
		"dateFrom": data.DateFrom,
	}); len(missing) > 0 {
		return apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

func (s *TournamentService) Create(ctx context.Context, data repository.TournamentData, files repository.FilesByField) result.WithWarnings[domain.Tournament] {
	if err := validateTournament(data); err != nil {
		return result.ErrWith[domain.Tournament](err)
	}

	tournament, uploads, err := s.repo.CreateWithFiles(ctx, data, files)
	if err != nil {
		return result.ErrWith[domain.Tournament](apperr.From(err))
	}

	notifyAsync("tournament-created", func() error {
		return s.notifier.SendTournamentCreated(tournament)
	})
	return result.OkWith(*tournament, uploadWarnings(uploads, s.metrics))
}

// CreateMatches persists matches one at a time so a failure partway leaves a
// deterministic prefix. The successfully created prefix is reported in the
// failure details so the caller can show what went through.
func (s *TournamentService) CreateMatches(ctx context.Context, tournamentID string, matches []repository.TournamentMatchData) result.Result[[]domain.TournamentMatch] {
	for i := range matches {
		matches[i].TournamentID = tournamentID
		if missing := requireText(map[string]string{
			"homeTeam": matches[i].HomeTeam,
			"awayTeam": matches[i].AwayTeam,
		}); len(missing) > 0 {
			return result.Err[[]domain.TournamentMatch](apperr.Validation("Udfyld venligst alle påkrævede felter for hver kamp.").
				WithDetails(map[string]any{"match": i, "missing": missing}))
		}
		if matches[i].HomeScore < 0 || matches[i].AwayScore < 0 {
			return result.Err[[]domain.TournamentMatch](apperr.Validation("En score kan ikke være negativ.").
				WithDetails(map[string]any{"match": i}))
		}
	}

	created, err := s.matchRepo.CreateMany(ctx, matches)
	if err != nil {
		return result.Err[[]domain.TournamentMatch](apperr.From(err).
			WithDetails(map[string]any{"createdCount": len(created)}))
	}
	return result.Ok(created)
}

// UpdateMatch patches a single match; the owning tournament never changes.
func (s *TournamentService) UpdateMatch(ctx context.Context, id string, patch repository.TournamentMatchPatch) result.Result[domain.TournamentMatch] {
	if missing := requirePatchText(map[string]*string{
		"homeTeam": patch.HomeTeam,
		"awayTeam": patch.AwayTeam,
	}); len(missing) > 0 {
		return result.Err[domain.TournamentMatch](apperr.Validation("Udfyld venligst alle påkrævede felter for hver kamp.").
			WithDetails(map[string]any{"missing": missing}))
	}
	if (patch.HomeScore != nil && *patch.HomeScore < 0) || (patch.AwayScore != nil && *patch.AwayScore < 0) {
		return result.Err[domain.TournamentMatch](apperr.Validation("En score kan ikke være negativ."))
	}
	match, err := s.matchRepo.Update(ctx, id, patch)
	if err != nil {
		return result.Err[domain.TournamentMatch](apperr.From(err))
	}
	return result.Ok(*match)
}

func (s *TournamentService) DeleteMatch(ctx context.Context, id string) result.Result[struct{}] {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return result.Err[struct{}](apperr.From(err))
	}
	return result.Ok(struct{}{})
}

func (s *TournamentService) Update(ctx context.Context, id string, patch repository.TournamentPatch, files repository.FilesByField) result.WithWarnings[domain.Tournament] {
	if missing := requirePatchText(map[string]*string{
		"name":     patch.Name,
		"dateFrom": patch.DateFrom,
	}); len(missing) > 0 {
		return result.ErrWith[domain.Tournament](apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing}))
	}

	tournament, uploads, err := s.repo.UpdateWithFiles(ctx, id, patch, files)
	if err != nil {
		return result.ErrWith[domain.Tournament](apperr.From(err))
	}

	notifyAsync("tournament-updated", func() error {
		return s.notifier.SendTournamentUpdated(tournament)
	})
	return result.OkWith(*tournament, uploadWarnings(uploads, s.metrics))
}

func (s *TournamentService) Delete(ctx context.Context, id string) result.Result[struct{}] {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Err[struct{}](apperr.From(err))
	}
	return result.Ok(struct{}{})
}
