package mapper

import (
	"encoding/json"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/strapi"
)

type rawTournamentPlayer struct {
	Title      string   `json:"title"`
	PlayerName string   `json:"playerName" validate:"required"`
	Awards     []string `json:"awards"`
}

type rawTournament struct {
	ID          int                                  `json:"id" validate:"required"`
	DocumentID  string                               `json:"documentId" validate:"required"`
	Name        string                               `json:"name" validate:"required"`
	Description *string                              `json:"description"`
	Location    *string                              `json:"location"`
	DateFrom    string                               `json:"dateFrom" validate:"required"`
	DateTo      *string                              `json:"dateTo"`
	Categories  strapi.RelationList[rawCategory]     `json:"categories"`
	Players     []rawTournamentPlayer                `json:"players"`
	Matches     strapi.RelationList[json.RawMessage] `json:"matches"`
	Images      strapi.RelationList[rawImage]        `json:"images"`
	Files       strapi.RelationList[rawFile]         `json:"files"`
	Author      strapi.Relation[rawAuthor]           `json:"author"`
	CreatedAt   string                               `json:"createdAt" validate:"required"`
	UpdatedAt   string                               `json:"updatedAt"`
}

type rawTournamentMatch struct {
	ID          int                        `json:"id" validate:"required"`
	DocumentID  string                     `json:"documentId" validate:"required"`
	Tournament  strapi.Relation[rawRef]    `json:"tournament"`
	HomeTeam    string                     `json:"homeTeam" validate:"required"`
	AwayTeam    string                     `json:"awayTeam" validate:"required"`
	HomeScore   *int                       `json:"homeScore" validate:"required,gte=0"`
	AwayScore   *int                       `json:"awayScore" validate:"required,gte=0"`
	Goalscorers *string                    `json:"goalscorers"`
	Author      strapi.Relation[rawAuthor] `json:"author"`
	CreatedAt   string                     `json:"createdAt" validate:"required"`
	UpdatedAt   string                     `json:"updatedAt"`
}

// MapTournament validates a raw store document and returns the domain
// entity. Embedded matches are mapped with the safe variant so one malformed
// match does not sink the tournament.
func MapTournament(raw json.RawMessage) (domain.Tournament, error) {
	wire, err := decode[rawTournament](raw)
	if err != nil {
		return domain.Tournament{}, err
	}

	players := make([]domain.TournamentPlayer, 0, len(wire.Players))
	for _, p := range wire.Players {
		players = append(players, domain.TournamentPlayer{
			Title:      p.Title,
			PlayerName: p.PlayerName,
			Awards:     p.Awards,
		})
	}

	matches := make([]domain.TournamentMatch, 0, len(wire.Matches.Values))
	for _, rawMatch := range wire.Matches.Values {
		if mapped := SafeMapTournamentMatch(rawMatch); mapped != nil {
			matches = append(matches, *mapped)
		}
	}

	dateTo := optString(wire.DateTo)
	if dateTo != nil {
		normalized := dateOnly(*dateTo)
		dateTo = &normalized
	}

	return domain.Tournament{
		ID:          wire.DocumentID,
		RowID:       wire.ID,
		Name:        wire.Name,
		Description: optString(wire.Description),
		Location:    optString(wire.Location),
		DateFrom:    dateOnly(wire.DateFrom),
		DateTo:      dateTo,
		Categories:  mapCategories(wire.Categories),
		Players:     players,
		Matches:     matches,
		Images:      mapImages(wire.Images),
		Files:       mapFiles(wire.Files),
		Author:      mapAuthor(wire.Author),
		CreatedAt:   parseTime(wire.CreatedAt),
		UpdatedAt:   parseTime(wire.UpdatedAt),
	}, nil
}

// SafeMapTournament maps a collection element, logging and returning nil on
// a malformed record instead of failing the whole list.
func SafeMapTournament(raw json.RawMessage) *domain.Tournament {
	return safeMap(raw, "tournament", MapTournament)
}

// MapTournamentMatch validates a raw store document and returns the domain
// entity. The owning tournament arrives as a relation in either wire shape.
func MapTournamentMatch(raw json.RawMessage) (domain.TournamentMatch, error) {
	wire, err := decode[rawTournamentMatch](raw)
	if err != nil {
		return domain.TournamentMatch{}, err
	}

	tournamentID := ""
	if wire.Tournament.Value != nil {
		tournamentID = wire.Tournament.Value.DocumentID
	}

	return domain.TournamentMatch{
		ID:           wire.DocumentID,
		RowID:        wire.ID,
		TournamentID: tournamentID,
		HomeTeam:     wire.HomeTeam,
		AwayTeam:     wire.AwayTeam,
		HomeScore:    *wire.HomeScore,
		AwayScore:    *wire.AwayScore,
		Goalscorers:  optString(wire.Goalscorers),
		Author:       mapAuthor(wire.Author),
		CreatedAt:    parseTime(wire.CreatedAt),
		UpdatedAt:    parseTime(wire.UpdatedAt),
	}, nil
}

// SafeMapTournamentMatch maps a collection element, logging and returning
// nil on a malformed record instead of failing the whole list.
func SafeMapTournamentMatch(raw json.RawMessage) *domain.TournamentMatch {
	return safeMap(raw, "tournament-match", MapTournamentMatch)
}
