package repository

import (
	"context"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/mapper"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// CommentData is the create payload for a comment. Exactly one of
// MatchResultID, TournamentID, EventID must be set; the service validates
// that before any store call.
type CommentData struct {
	Content       string
	MatchResultID *string
	TournamentID  *string
	EventID       *string
	ParentID      *string
	AuthorID      *string
}

// CommentPatch is a partial update payload. Only the content is editable;
// a comment never moves to another parent entity.
type CommentPatch struct {
	Content *string
}

// CommentRepository wraps comment CRUD. Replies one level deep are populated
// on reads; deeper nesting is not materialized.
type CommentRepository struct {
	repo entityRepo[domain.Comment]
}

// NewCommentRepository creates a repository bound to one client handle.
func NewCommentRepository(client strapi.Client) *CommentRepository {
	return &CommentRepository{repo: entityRepo[domain.Comment]{
		client:      client,
		collection:  CollectionComments,
		populate:    []string{"author", "matchResult", "tournament", "event", "parent", "replies", "replies.author"},
		defaultSort: []string{"createdAt:asc"},
		mapOne:      mapper.MapComment,
		safeOne:     mapper.SafeMapComment,
		docID:       func(c domain.Comment) string { return c.ID },
	}}
}

func connectOne(id string) strapi.RelationConnect {
	return strapi.RelationConnect{Connect: []string{id}}
}

func (d CommentData) payload() map[string]any {
	payload := map[string]any{
		"content": d.Content,
	}
	if d.MatchResultID != nil {
		payload["matchResult"] = connectOne(*d.MatchResultID)
	}
	if d.TournamentID != nil {
		payload["tournament"] = connectOne(*d.TournamentID)
	}
	if d.EventID != nil {
		payload["event"] = connectOne(*d.EventID)
	}
	if d.ParentID != nil {
		payload["parent"] = connectOne(*d.ParentID)
	}
	if d.AuthorID != nil {
		payload["author"] = *d.AuthorID
	}
	return payload
}

func (p CommentPatch) payload() map[string]any {
	payload := map[string]any{}
	if p.Content != nil {
		payload["content"] = *p.Content
	}
	return payload
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	return r.repo.FindByID(ctx, id)
}

// FindByParent lists the top-level comments of one owning entity, with their
// direct replies populated. parentField is the relation name on the comment
// collection: "matchResult", "tournament", or "event".
func (r *CommentRepository) FindByParent(ctx context.Context, parentField, parentID string) ([]domain.Comment, error) {
	all, err := r.repo.FindAll(ctx, ListOptions{
		Filters: map[string]string{parentField + ".documentId": parentID},
	})
	if err != nil {
		return nil, err
	}
	// Replies come back both nested under their parent and as rows of their
	// own; keep only the top level.
	topLevel := make([]domain.Comment, 0, len(all))
	for _, c := range all {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
		}
	}
	return topLevel, nil
}

func (r *CommentRepository) FindAll(ctx context.Context, opts ListOptions) ([]domain.Comment, error) {
	return r.repo.FindAll(ctx, opts)
}

func (r *CommentRepository) Create(ctx context.Context, data CommentData) (*domain.Comment, error) {
	return r.repo.create(ctx, data.payload())
}

func (r *CommentRepository) Update(ctx context.Context, id string, patch CommentPatch) (*domain.Comment, error) {
	return r.repo.update(ctx, id, patch.payload())
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}
