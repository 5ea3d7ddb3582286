package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// TournamentMatchData is the full create payload for a tournament match.
// TournamentID links the match to its owner by document id.
type TournamentMatchData struct {
	TournamentID string
	HomeTeam     string
	AwayTeam     string
	HomeScore    int
	AwayScore    int
	Goalscorers  *string
	AuthorID     *string
}

// TournamentMatchPatch is a partial update payload; nil fields are left
// untouched. The owning tournament is never reassigned.
type TournamentMatchPatch struct {
	HomeTeam    *string
	AwayTeam    *string
	HomeScore   *int
	AwayScore   *int
	Goalscorers *string
}

// TournamentMatchRepository wraps tournament-match CRUD.
type TournamentMatchRepository struct {
	repo entityRepo[domain.TournamentMatch]
}

// NewTournamentMatchRepository creates a repository bound to one client handle.
func NewTournamentMatchRepository(client strapi.Client) *TournamentMatchRepository {
	return &TournamentMatchRepository{repo: entityRepo[domain.TournamentMatch]{
		client:      client,
		collection:  CollectionTournamentMatches,
		uid:         uidTournamentMatch,
		populate:    []string{"tournament", "author"},
		defaultSort: []string{"createdAt:asc"},
		mapOne:      mapper.MapTournamentMatch,
		safeOne:     mapper.SafeMapTournamentMatch,
		docID:       func(m domain.TournamentMatch) string { return m.ID },
	}}
}

func (d TournamentMatchData) payload() map[string]any {
	payload := map[string]any{
		"homeTeam":  d.HomeTeam,
		"awayTeam":  d.AwayTeam,
		"homeScore": d.HomeScore,
		"awayScore": d.AwayScore,
		// The owning tournament is a to-one relation; connect is still the
		// only operation creation needs.
		"tournament": strapi.RelationConnect{Connect: []string{d.TournamentID}},
	}
	if d.Goalscorers != nil {
		payload["goalscorers"] = *d.Goalscorers
	}
	if d.AuthorID != nil {
		payload["author"] = *d.AuthorID
	}
	return payload
}

func (p TournamentMatchPatch) payload() map[string]any {
	payload := map[string]any{}
	if p.HomeTeam != nil {
		payload["homeTeam"] = *p.HomeTeam
	}
	if p.AwayTeam != nil {
		payload["awayTeam"] = *p.AwayTeam
	}
	if p.HomeScore != nil {
		payload["homeScore"] = *p.HomeScore
	}
	if p.AwayScore != nil {
		payload["awayScore"] = *p.AwayScore
	}
	if p.Goalscorers != nil {
		payload["goalscorers"] = *p.Goalscorers
	}
	return payload
}

func (r *TournamentMatchRepository) FindByID(ctx context.Context, id string) (*domain.TournamentMatch, error) {
	return r.repo.FindByID(ctx, id)
}

// FindByTournament lists every match owned by one tournament, oldest first.
func (r *TournamentMatchRepository) FindByTournament(ctx context.Context, tournamentID string) ([]domain.TournamentMatch, error) {
	return r.repo.FindAll(ctx, ListOptions{
		Filters: map[string]string{"tournament.documentId": tournamentID},
	})
}

func (r *TournamentMatchRepository) FindAll(ctx context.Context, opts ListOptions) ([]domain.TournamentMatch, error) {
	return r.repo.FindAll(ctx, opts)
}

func (r *TournamentMatchRepository) Create(ctx context.Context, data TournamentMatchData) (*domain.TournamentMatch, error) {
	return r.repo.create(ctx, data.payload())
}

// CreateMany persists matches strictly one after another, so a mid-sequence
// failure leaves a deterministic prefix of created records. It returns the
// created prefix together with the error that stopped the sequence.
func (r *TournamentMatchRepository) CreateMany(ctx context.Context, data []TournamentMatchData) ([]domain.TournamentMatch, error) {
	created := make([]domain.TournamentMatch, 0, len(data))
	for _, d := range data {
		match, err := r.Create(ctx, d)
		if err != nil {
			return created, err
		}
		created = append(created, *match)
	}
	return created, nil
}

func (r *TournamentMatchRepository) Update(ctx context.Context, id string, patch TournamentMatchPatch) (*domain.TournamentMatch, error) {
	return r.repo.update(ctx, id, patch.payload())
}

func (r *TournamentMatchRepository) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}
