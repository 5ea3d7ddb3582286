package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// MatchResultData is the full create payload for a match result.
type MatchResultData struct {
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
	Goalscorers *string
	Report      *string
	MatchDate   string
	ImageURL    *string
	CategoryIDs []string
	AuthorID    *string
}

// MatchResultPatch is a partial update payload; nil fields are left untouched.
type MatchResultPatch struct {
	HomeTeam    *string
	AwayTeam    *string
	HomeScore   *int
	AwayScore   *int
	Goalscorers *string
	Report      *string
	MatchDate   *string
	ImageURL    *string
	// CategoryIDs, when set, replaces the full category membership.
	CategoryIDs []string
}

// MatchResultRepository wraps match-result CRUD and uploads.
type MatchResultRepository struct {
	repo entityRepo[domain.MatchResult]
}

// NewMatchResultRepository creates a repository bound to one client handle.
func NewMatchResultRepository(client strapi.Client) *MatchResultRepository {
	return &MatchResultRepository{repo: entityRepo[domain.MatchResult]{
		client:      client,
		collection:  CollectionMatchResults,
		uid:         uidMatchResult,
		populate:    []string{"categories", "images", "files", "author", "updatedBy"},
		defaultSort: []string{"matchDate:desc"},
		mapOne:      mapper.MapMatchResult,
		safeOne:     mapper.SafeMapMatchResult,
		docID:       func(m domain.MatchResult) string { return m.ID },
	}}
}

func (d MatchResultData) payload() map[string]any {
	payload := map[string]any{
		"homeTeam":  d.HomeTeam,
		"awayTeam":  d.AwayTeam,
		"homeScore": d.HomeScore,
		"awayScore": d.AwayScore,
		"matchDate": d.MatchDate,
	}
	if d.Goalscorers != nil {
		payload["goalscorers"] = *d.Goalscorers
	}
	if d.Report != nil {
		payload["report"] = *d.Report
	}
	if d.ImageURL != nil {
		payload["imageUrl"] = *d.ImageURL
	}
	if d.AuthorID != nil {
		payload["author"] = *d.AuthorID
	}
	// Creation only adds category links; replacing the set is update's job.
	if len(d.CategoryIDs) > 0 {
		payload["categories"] = strapi.RelationConnect{Connect: d.CategoryIDs}
	}
	return payload
}

func (p MatchResultPatch) payload() map[string]any {
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
	if p.Report != nil {
		payload["report"] = *p.Report
	}
	if p.MatchDate != nil {
		payload["matchDate"] = *p.MatchDate
	}
	if p.ImageURL != nil {
		payload["imageUrl"] = *p.ImageURL
	}
	if p.CategoryIDs != nil {
		payload["categories"] = strapi.RelationSet{Set: p.CategoryIDs}
	}
	return payload
}

func (r *MatchResultRepository) FindByID(ctx context.Context, id string) (*domain.MatchResult, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MatchResultRepository) FindAll(ctx context.Context, opts ListOptions) ([]domain.MatchResult, error) {
	return r.repo.FindAll(ctx, opts)
}

func (r *MatchResultRepository) FindPaginated(ctx context.Context, opts ListOptions) (*Page[domain.MatchResult], error) {
	return r.repo.FindPaginated(ctx, opts)
}

func (r *MatchResultRepository) Create(ctx context.Context, data MatchResultData) (*domain.MatchResult, error) {
	return r.repo.create(ctx, data.payload())
}

func (r *MatchResultRepository) Update(ctx context.Context, id string, patch MatchResultPatch) (*domain.MatchResult, error) {
	return r.repo.update(ctx, id, patch.payload())
}

func (r *MatchResultRepository) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

func (r *MatchResultRepository) UploadFiles(ctx context.Context, id string, files FilesByField) (UploadResults, error) {
	return r.repo.UploadFiles(ctx, id, files)
}

func (r *MatchResultRepository) CreateWithFiles(ctx context.Context, data MatchResultData, files FilesByField) (*domain.MatchResult, UploadResults, error) {
	return r.repo.createWithFiles(ctx, data.payload(), files)
}

func (r *MatchResultRepository) UpdateWithFiles(ctx context.Context, id string, patch MatchResultPatch, files FilesByField) (*domain.MatchResult, UploadResults, error) {
	return r.repo.updateWithFiles(ctx, id, patch.payload(), files)
}
