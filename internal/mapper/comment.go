package mapper

import (
	"encoding/json"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/strapi"
)

type rawComment struct {
	ID          int                                  `json:"id" validate:"required"`
	DocumentID  string                               `json:"documentId" validate:"required"`
	Content     string                               `json:"content" validate:"required"`
	Author      strapi.Relation[rawAuthor]           `json:"author"`
	MatchResult strapi.Relation[rawRef]              `json:"matchResult"`
	Tournament  strapi.Relation[rawRef]              `json:"tournament"`
	Event       strapi.Relation[rawRef]              `json:"event"`
	Parent      strapi.Relation[rawRef]              `json:"parent"`
	Replies     strapi.RelationList[json.RawMessage] `json:"replies"`
	CreatedAt   string                               `json:"createdAt" validate:"required"`
	UpdatedAt   string                               `json:"updatedAt"`
}

func refID(rel strapi.Relation[rawRef]) *string {
	if rel.Value == nil {
		return nil
	}
	id := rel.Value.DocumentID
	return &id
}

// MapComment validates a raw store document and returns the domain entity.
// Replies are mapped by recursion; materialized depth is bounded by what the
// query layer populates (top-level comments plus direct replies), so the
// recursion bottoms out on records whose replies field is empty.
func MapComment(raw json.RawMessage) (domain.Comment, error) {
	wire, err := decode[rawComment](raw)
	if err != nil {
		return domain.Comment{}, err
	}

	replies := make([]domain.Comment, 0, len(wire.Replies.Values))
	for _, rawReply := range wire.Replies.Values {
		// A malformed reply is dropped, not fatal for its parent.
		if mapped := SafeMapComment(rawReply); mapped != nil {
			replies = append(replies, *mapped)
		}
	}

	return domain.Comment{
		ID:            wire.DocumentID,
		RowID:         wire.ID,
		Content:       wire.Content,
		Author:        mapAuthor(wire.Author),
		MatchResultID: refID(wire.MatchResult),
		TournamentID:  refID(wire.Tournament),
		EventID:       refID(wire.Event),
		ParentID:      refID(wire.Parent),
		Replies:       replies,
		CreatedAt:     parseTime(wire.CreatedAt),
		UpdatedAt:     parseTime(wire.UpdatedAt),
	}, nil
}

// SafeMapComment maps a collection element, logging and returning nil on a
// malformed record instead of failing the whole list.
func SafeMapComment(raw json.RawMessage) *domain.Comment {
	return safeMap(raw, "comment", MapComment)
}
