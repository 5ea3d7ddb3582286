package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// TournamentData is the full create payload for a tournament.
type TournamentData struct {
	Name        string
	Description *string
	Location    *string
	DateFrom    string
	DateTo      *string
	Players     []domain.TournamentPlayer
	CategoryIDs []string
	AuthorID    *string
}

// TournamentPatch is a partial update payload; nil fields are left untouched.
type TournamentPatch struct {
	Name        *string
	Description *string
	Location    *string
	DateFrom    *string
	DateTo      *string
	Players     []domain.TournamentPlayer
	// CategoryIDs, when set, replaces the full category membership.
	CategoryIDs []string
}

// TournamentRepository wraps tournament CRUD and uploads.
type TournamentRepository struct {
	repo entityRepo[domain.Tournament]
}

// NewTournamentRepository creates a repository bound to one client handle.
func NewTournamentRepository(client strapi.Client) *TournamentRepository {
	return &TournamentRepository{repo: entityRepo[domain.Tournament]{
		client:      client,
		collection:  CollectionTournaments,
		uid:         uidTournament,
		populate:    []string{"categories", "players", "matches", "matches.author", "images", "files", "author"},
		defaultSort: []string{"dateFrom:desc"},
		mapOne:      mapper.MapTournament,
		safeOne:     mapper.SafeMapTournament,
		docID:       func(t domain.Tournament) string { return t.ID },
	}}
}

func playersPayload(players []domain.TournamentPlayer) []map[string]any {
	out := make([]map[string]any, 0, len(players))
	for _, p := range players {
		out = append(out, map[string]any{
			"title":      p.Title,
			"playerName": p.PlayerName,
			"awards":     p.Awards,
		})
	}
	return out
}

func (d TournamentData) payload() map[string]any {
	payload := map[string]any{
		"name":     d.Name,
		"dateFrom": d.DateFrom,
	}
	if d.Description != nil {
		payload["description"] = *d.Description
	}
	if d.Location != nil {
		payload["location"] = *d.Location
	}
	if d.DateTo != nil {
		payload["dateTo"] = *d.DateTo
	}
	if len(d.Players) > 0 {
		payload["players"] = playersPayload(d.Players)
	}
	if d.AuthorID != nil {
		payload["author"] = *d.AuthorID
	}
	if len(d.CategoryIDs) > 0 {
		payload["categories"] = strapi.RelationConnect{Connect: d.CategoryIDs}
	}
	return payload
}

func (p TournamentPatch) payload() map[string]any {
	payload := map[string]any{}
	if p.Name != nil {
		payload["name"] = *p.Name
	}
	if p.Description != nil {
		payload["description"] = *p.Description
	}
	if p.Location != nil {
		payload["location"] = *p.Location
	}
	if p.DateFrom != nil {
		payload["dateFrom"] = *p.DateFrom
	}
	if p.DateTo != nil {
		payload["dateTo"] = *p.DateTo
	}
	if p.Players != nil {
		payload["players"] = playersPayload(p.Players)
	}
	if p.CategoryIDs != nil {
		payload["categories"] = strapi.RelationSet{Set: p.CategoryIDs}
	}
	return payload
}

func (r *TournamentRepository) FindByID(ctx context.Context, id string) (*domain.Tournament, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *TournamentRepository) FindAll(ctx context.Context, opts ListOptions) ([]domain.Tournament, error) {
	return r.repo.FindAll(ctx, opts)
}

func (r *TournamentRepository) FindPaginated(ctx context.Context, opts ListOptions) (*Page[domain.Tournament], error) {
	return r.repo.FindPaginated(ctx, opts)
}

func (r *TournamentRepository) Create(ctx context.Context, data TournamentData) (*domain.Tournament, error) {
	return r.repo.create(ctx, data.payload())
}

func (r *TournamentRepository) Update(ctx context.Context, id string, patch TournamentPatch) (*domain.Tournament, error) {
	return r.repo.update(ctx, id, patch.payload())
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

func (r *TournamentRepository) UploadFiles(ctx context.Context, id string, files FilesByField) (UploadResults, error) {
	return r.repo.UploadFiles(ctx, id, files)
}

func (r *TournamentRepository) CreateWithFiles(ctx context.Context, data TournamentData, files FilesByField) (*domain.Tournament, UploadResults, error) {
	return r.repo.createWithFiles(ctx, data.payload(), files)
}

func (r *TournamentRepository) UpdateWithFiles(ctx context.Context, id string, patch TournamentPatch, files FilesByField) (*domain.Tournament, UploadResults, error) {
	return r.repo.updateWithFiles(ctx, id, patch.payload(), files)
}
