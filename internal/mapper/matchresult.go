package mapper

import (
	"encoding/json"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/strapi"
)

type rawMatchResult struct {
	ID          int                              `json:"id" validate:"required"`
	DocumentID  string                           `json:"documentId" validate:"required"`
	HomeTeam    string                           `json:"homeTeam" validate:"required"`
	AwayTeam    string                           `json:"awayTeam" validate:"required"`
	HomeScore   *int                             `json:"homeScore" validate:"required,gte=0"`
	AwayScore   *int                             `json:"awayScore" validate:"required,gte=0"`
	Goalscorers *string                          `json:"goalscorers"`
	Report      *string                          `json:"report"`
	Categories  strapi.RelationList[rawCategory] `json:"categories"`
	MatchDate   *string                          `json:"matchDate"`
	ImageURL    *string                          `json:"imageUrl"`
	Images      strapi.RelationList[rawImage]    `json:"images"`
	Files       strapi.RelationList[rawFile]     `json:"files"`
	Author      strapi.Relation[rawAuthor]       `json:"author"`
	UpdatedBy   strapi.Relation[rawAuthor]       `json:"updatedBy"`
	CreatedAt   string                           `json:"createdAt" validate:"required"`
	UpdatedAt   string                           `json:"updatedAt"`
}

// MapMatchResult validates a raw store document and returns the domain
// entity. Legacy records may carry a null category or match date; both get
// defined fallbacks rather than propagating null into required fields.
func MapMatchResult(raw json.RawMessage) (domain.MatchResult, error) {
	wire, err := decode[rawMatchResult](raw)
	if err != nil {
		return domain.MatchResult{}, err
	}

	matchDate := ""
	if wire.MatchDate != nil && *wire.MatchDate != "" {
		matchDate = dateOnly(*wire.MatchDate)
	} else {
		// Old rows predate the matchDate field; the creation date is the
		// closest defined stand-in.
		matchDate = dateOnly(wire.CreatedAt)
	}

	return domain.MatchResult{
		ID:          wire.DocumentID,
		RowID:       wire.ID,
		HomeTeam:    wire.HomeTeam,
		AwayTeam:    wire.AwayTeam,
		HomeScore:   *wire.HomeScore,
		AwayScore:   *wire.AwayScore,
		Goalscorers: optString(wire.Goalscorers),
		Report:      optString(wire.Report),
		Categories:  mapCategories(wire.Categories),
		MatchDate:   matchDate,
		ImageURL:    optString(wire.ImageURL),
		Images:      mapImages(wire.Images),
		Files:       mapFiles(wire.Files),
		Author:      mapAuthor(wire.Author),
		UpdatedBy:   mapAuthor(wire.UpdatedBy),
		CreatedAt:   parseTime(wire.CreatedAt),
		UpdatedAt:   parseTime(wire.UpdatedAt),
	}, nil
}

// SafeMapMatchResult maps a collection element, logging and returning nil on
// a malformed record instead of failing the whole list.
func SafeMapMatchResult(raw json.RawMessage) *domain.MatchResult {
	return safeMap(raw, "match-result", MapMatchResult)
}
