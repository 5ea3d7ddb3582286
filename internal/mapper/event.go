package mapper

import (
	"encoding/json"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/strapi"
)

type rawEvent struct {
	ID                 int                           `json:"id" validate:"required"`
	DocumentID         string                        `json:"documentId" validate:"required"`
	Name               string                        `json:"name" validate:"required"`
	Type               string                        `json:"type" validate:"required,oneof=upcoming past"`
	DateFrom           string                        `json:"dateFrom" validate:"required"`
	DateTo             *string                       `json:"dateTo"`
	TimeFrom           *string                       `json:"timeFrom"`
	TimeTo             *string                       `json:"timeTo"`
	PublishBy          *string                       `json:"publishBy"`
	Description        *string                       `json:"description"`
	PhotographerNeeded *bool                         `json:"photographerNeeded"`
	Images             strapi.RelationList[rawImage] `json:"images"`
	Files              strapi.RelationList[rawFile]  `json:"files"`
	Author             strapi.Relation[rawAuthor]    `json:"author"`
	CreatedAt          string                        `json:"createdAt" validate:"required"`
	UpdatedAt          string                        `json:"updatedAt"`
}

// MapEvent validates a raw store document and returns the domain entity.
// A dateTo earlier than dateFrom is a schema-drift condition and fails.
func MapEvent(raw json.RawMessage) (domain.Event, error) {
	wire, err := decode[rawEvent](raw)
	if err != nil {
		return domain.Event{}, err
	}

	dateFrom := dateOnly(wire.DateFrom)
	dateTo := optString(wire.DateTo)
	if dateTo != nil {
		normalized := dateOnly(*dateTo)
		dateTo = &normalized
		if normalized < dateFrom {
			return domain.Event{}, apperr.Validation("Slutdatoen ligger før startdatoen.").
				WithDetails(map[string]any{"raw": json.RawMessage(raw)})
		}
	}

	photographerNeeded := false
	if wire.PhotographerNeeded != nil {
		photographerNeeded = *wire.PhotographerNeeded
	}

	return domain.Event{
		ID:                 wire.DocumentID,
		RowID:              wire.ID,
		Name:               wire.Name,
		Type:               domain.EventType(wire.Type),
		DateFrom:           dateFrom,
		DateTo:             dateTo,
		TimeFrom:           optString(wire.TimeFrom),
		TimeTo:             optString(wire.TimeTo),
		PublishBy:          optString(wire.PublishBy),
		Description:        optString(wire.Description),
		PhotographerNeeded: photographerNeeded,
		Images:             mapImages(wire.Images),
		Files:              mapFiles(wire.Files),
		Author:             mapAuthor(wire.Author),
		CreatedAt:          parseTime(wire.CreatedAt),
		UpdatedAt:          parseTime(wire.UpdatedAt),
	}, nil
}

// SafeMapEvent maps a collection element, logging and returning nil on a
// malformed record instead of failing the whole list.
func SafeMapEvent(raw json.RawMessage) *domain.Event {
	return safeMap(raw, "event", MapEvent)
}
