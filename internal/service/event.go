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

// EventService exposes event reads and the write pipeline.
type EventService struct {
	repo     *repository.EventRepository
	notifier notifier.Notifier
	metrics  metrics.Metrics
}

// NewEventService creates a service bound to one repository handle.
func NewEventService(repo *repository.EventRepository, n notifier.Notifier, m metrics.Metrics) *EventService {
	return &EventService{repo: repo, notifier: n, metrics: m}
}

func (s *EventService) GetByID(ctx context.Context, id string) result.Result[domain.Event] {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Err[domain.Event](apperr.From(err))
	}
	if event == nil {
		return result.Err[domain.Event](apperr.NotFound("Arrangementet blev ikke fundet."))
	}
	return result.Ok(*event)
}

func (s *EventService) GetAll(ctx context.Context, opts repository.ListOptions) result.Result[[]domain.Event] {
	events, err := s.repo.FindAll(ctx, opts)
	if err != nil {
		return result.Err[[]domain.Event](apperr.From(err))
	}
	return result.Ok(events)
}

func (s *EventService) GetPaginated(ctx context.Context, opts repository.ListOptions) result.Result[repository.Page[domain.Event]] {
	page, err := s.repo.FindPaginated(ctx, opts)
	if err != nil {
		return result.Err[repository.Page[domain.Event]](apperr.From(err))
	}
	return result.Ok(*page)
}

func (s *EventService) GetByUser(ctx context.Context, userID string) result.Result[[]domain.Event] {
	events, err := s.repo.FindAll(ctx, repository.ListOptions{UserID: userID})
	if err != nil {
		return result.Err[[]domain.Event](apperr.From(err))
	}
	return result.Ok(events)
}

func validateEvent(data repository.EventData) *apperr.Error {
	if missing := requireText(map[string]string{
		"name":     data.Name,
		"dateFrom": data.DateFrom,
	}); len(missing) > 0 {
		return apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing})
	}
	if data.Type != domain.EventUpcoming && data.Type != domain.EventPast {
		return apperr.Validation("Arrangementstypen skal være 'upcoming' eller 'past'.")
	}
	if data.DateTo != nil && *data.DateTo < data.DateFrom {
		return apperr.Validation("Slutdatoen kan ikke ligge før startdatoen.")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, data repository.EventData, files repository.FilesByField) result.WithWarnings[domain.Event] {
	if err := validateEvent(data); err != nil {
		return result.ErrWith[domain.Event](err)
	}

	event, uploads, err := s.repo.CreateWithFiles(ctx, data, files)
	if err != nil {
		return result.ErrWith[domain.Event](apperr.From(err))
	}

	notifyAsync("event-created", func() error {
		return s.notifier.SendEventCreated(event)
	})
	return result.OkWith(*event, uploadWarnings(uploads, s.metrics))
}

// validatePatchedDates checks the date-range invariant against the merged
// record. A patch touching only one end is compared to the stored other end;
// persisting an inverted range would leave a record every read rejects.
func (s *EventService) validatePatchedDates(ctx context.Context, id string, patch repository.EventPatch) *apperr.Error {
	if patch.DateFrom == nil && patch.DateTo == nil {
		return nil
	}
	dateFrom, dateTo := patch.DateFrom, patch.DateTo
	if dateFrom == nil || dateTo == nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return apperr.From(err)
		}
		if current == nil {
			return apperr.NotFound("Arrangementet blev ikke fundet.")
		}
		if dateFrom == nil {
			dateFrom = &current.DateFrom
		}
		if dateTo == nil {
			dateTo = current.DateTo
		}
	}
	if dateTo != nil && *dateTo < *dateFrom {
		return apperr.Validation("Slutdatoen kan ikke ligge før startdatoen.")
	}
	return nil
}

func (s *EventService) Update(ctx context.Context, id string, patch repository.EventPatch, files repository.FilesByField) result.WithWarnings[domain.Event] {
	if missing := requirePatchText(map[string]*string{
		"name":     patch.Name,
		"dateFrom": patch.DateFrom,
	}); len(missing) > 0 {
		return result.ErrWith[domain.Event](apperr.Validation("Udfyld venligst alle påkrævede felter.").
			WithDetails(map[string]any{"missing": missing}))
	}
	if patch.Type != nil && *patch.Type != domain.EventUpcoming && *patch.Type != domain.EventPast {
		return result.ErrWith[domain.Event](apperr.Validation("Arrangementstypen skal være 'upcoming' eller 'past'."))
	}
	if err := s.validatePatchedDates(ctx, id, patch); err != nil {
		return result.ErrWith[domain.Event](err)
	}

	event, uploads, err := s.repo.UpdateWithFiles(ctx, id, patch, files)
	if err != nil {
		return result.ErrWith[domain.Event](apperr.From(err))
	}

	notifyAsync("event-updated", func() error {
		return s.notifier.SendEventUpdated(event)
	})
	return result.OkWith(*event, uploadWarnings(uploads, s.metrics))
}

func (s *EventService) Delete(ctx context.Context, id string) result.Result[struct{}] {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Err[struct{}](apperr.From(err))
	}
	return result.Ok(struct{}{})
}
