package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// EventData is the full create payload for an event.
type EventData struct {
	Name               string
	Type               domain.EventType
	DateFrom           string
	DateTo             *string
	TimeFrom           *string
	TimeTo             *string
	PublishBy          *string
	Description        *string
	PhotographerNeeded bool
	AuthorID           *string
}

// EventPatch is a partial update payload; nil fields are left untouched.
type EventPatch struct {
	Name               *string
	Type               *domain.EventType
	DateFrom           *string
	DateTo             *string
	TimeFrom           *string
	TimeTo             *string
	PublishBy          *string
	Description        *string
	PhotographerNeeded *bool
}

// EventRepository wraps event CRUD and uploads.
type EventRepository struct {
	repo entityRepo[domain.Event]
}

// NewEventRepository creates a repository bound to one client handle.
func NewEventRepository(client strapi.Client) *EventRepository {
	return &EventRepository{repo: entityRepo[domain.Event]{
		client:      client,
		collection:  CollectionEvents,
		uid:         uidEvent,
		populate:    []string{"images", "files", "author"},
		defaultSort: []string{"dateFrom:desc"},
		mapOne:      mapper.MapEvent,
		safeOne:     mapper.SafeMapEvent,
		docID:       func(e domain.Event) string { return e.ID },
	}}
}

func (d EventData) payload() map[string]any {
	payload := map[string]any{
		"name":               d.Name,
		"type":               string(d.Type),
		"dateFrom":           d.DateFrom,
		"photographerNeeded": d.PhotographerNeeded,
	}
	if d.DateTo != nil {
		payload["dateTo"] = *d.DateTo
	}
	if d.TimeFrom != nil {
		payload["timeFrom"] = *d.TimeFrom
	}
	if d.TimeTo != nil {
		payload["timeTo"] = *d.TimeTo
	}
	if d.PublishBy != nil {
		payload["publishBy"] = *d.PublishBy
	}
	if d.Description != nil {
		payload["description"] = *d.Description
	}
	if d.AuthorID != nil {
		payload["author"] = *d.AuthorID
	}
	return payload
}

func (p EventPatch) payload() map[string]any {
	payload := map[string]any{}
	if p.Name != nil {
		payload["name"] = *p.Name
	}
	if p.Type != nil {
		payload["type"] = string(*p.Type)
	}
	if p.DateFrom != nil {
		payload["dateFrom"] = *p.DateFrom
	}
	if p.DateTo != nil {
		payload["dateTo"] = *p.DateTo
	}
	if p.TimeFrom != nil {
		payload["timeFrom"] = *p.TimeFrom
	}
	if p.TimeTo != nil {
		payload["timeTo"] = *p.TimeTo
	}
	if p.PublishBy != nil {
		payload["publishBy"] = *p.PublishBy
	}
	if p.Description != nil {
		payload["description"] = *p.Description
	}
	if p.PhotographerNeeded != nil {
		payload["photographerNeeded"] = *p.PhotographerNeeded
	}
	return payload
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *EventRepository) FindAll(ctx context.Context, opts ListOptions) ([]domain.Event, error) {
	return r.repo.FindAll(ctx, opts)
}

func (r *EventRepository) FindPaginated(ctx context.Context, opts ListOptions) (*Page[domain.Event], error) {
	return r.repo.FindPaginated(ctx, opts)
}

func (r *EventRepository) Create(ctx context.Context, data EventData) (*domain.Event, error) {
	return r.repo.create(ctx, data.payload())
}

func (r *EventRepository) Update(ctx context.Context, id string, patch EventPatch) (*domain.Event, error) {
	return r.repo.update(ctx, id, patch.payload())
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

func (r *EventRepository) UploadFiles(ctx context.Context, id string, files FilesByField) (UploadResults, error) {
	return r.repo.UploadFiles(ctx, id, files)
}

func (r *EventRepository) CreateWithFiles(ctx context.Context, data EventData, files FilesByField) (*domain.Event, UploadResults, error) {
	return r.repo.createWithFiles(ctx, data.payload(), files)
}

func (r *EventRepository) UpdateWithFiles(ctx context.Context, id string, patch EventPatch, files FilesByField) (*domain.Event, UploadResults, error) {
	return r.repo.updateWithFiles(ctx, id, patch.payload(), files)
}
