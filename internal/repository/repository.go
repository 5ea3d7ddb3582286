// Package repository wraps content-store CRUD per entity family. Not-found
// on a direct lookup is a normal nil result here; deciding that a missing
// record is exceptional belongs to the service layer. Uploads report
// per-field success and failure instead of aborting on the first error.
package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// Collection names and content-type uids as the store knows them. The uid is
// what the upload endpoint expects in its ref field.
const (
	CollectionMatchResults      = "match-results"
	CollectionEvents            = "events"
	CollectionTournaments       = "tournaments"
	CollectionTournamentMatches = "tournament-matches"
	CollectionComments          = "comments"

	uidMatchResult     = "api::match-result.match-result"
	uidEvent           = "api::event.event"
	uidTournament      = "api::tournament.tournament"
	uidTournamentMatch = "api::tournament-match.tournament-match"
)

// ListOptions narrows and pages collection fetches.
type ListOptions struct {
	Page     int
	PageSize int
	// Sort entries in store syntax, e.g. "matchDate:desc". Empty means the
	// repository's default ordering.
	Sort []string
	// Filters maps dotted field paths to required values.
	Filters map[string]string
	// UserID scopes the fetch to records authored by this user ("my records"
	// views). Empty means no author scoping.
	UserID string
}

// Page is one page of entities plus the store's pagination counters.
type Page[T any] struct {
	Items      []T               `json:"items"`
	Pagination strapi.Pagination `json:"pagination"`
}

// FilesByField groups queued uploads by the owning attribute ("photos",
// "files", ...).
type FilesByField map[string][]strapi.UploadFile

// FieldUpload is the recorded outcome of one field's upload attempt.
type FieldUpload struct {
	Success bool
	Err     error
}

// UploadResults maps field name to its independent upload outcome.
type UploadResults map[string]FieldUpload

// Failed returns the names of fields whose upload failed, sorted for
// deterministic warning output.
func (u UploadResults) Failed() []string {
	var fields []string
	for field, res := range u {
		if !res.Success {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// entityRepo implements the uniform CRUD contract for one collection. The
// typed per-entity repositories wrap it with payload builders.
type entityRepo[T any] struct {
	client      strapi.Client
	collection  string
	uid         string
	populate    []string
	defaultSort []string
	mapOne      func(json.RawMessage) (T, error)
	safeOne     func(json.RawMessage) *T
	docID       func(T) string
}

func (r *entityRepo[T]) query(opts ListOptions) strapi.Query {
	q := strapi.Query{
		Populate: r.populate,
		Sort:     opts.Sort,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}
	if len(q.Sort) == 0 {
		q.Sort = r.defaultSort
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if len(opts.Filters) > 0 || opts.UserID != "" {
		q.Filters = make(map[string]string, len(opts.Filters)+1)
		for path, value := range opts.Filters {
			q.Filters[path] = value
		}
		if opts.UserID != "" {
			q.Filters["author.documentId"] = opts.UserID
		}
	}
	return q
}

// FindByID fetches one document. A missing document is (nil, nil).
func (r *entityRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	raw, err := r.client.FindOne(ctx, r.collection, id, strapi.Query{Populate: r.populate})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	entity, err := r.mapOne(raw)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll fetches the whole collection under the fixed upper page size.
// Malformed records are dropped by the safe mapper, not fatal.
func (r *entityRepo[T]) FindAll(ctx context.Context, opts ListOptions) ([]T, error) {
	opts.Page = 1
	opts.PageSize = strapi.AllPageSize
	list, err := r.client.Find(ctx, r.collection, r.query(opts))
	if err != nil {
		return nil, err
	}
	return r.mapList(list.Documents), nil
}

// FindPaginated fetches one page, defaulting to page 1 at the store's page size.
func (r *entityRepo[T]) FindPaginated(ctx context.Context, opts ListOptions) (*Page[T], error) {
	if opts.PageSize == 0 {
		opts.PageSize = strapi.DefaultPageSize
	}
	list, err := r.client.Find(ctx, r.collection, r.query(opts))
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: r.mapList(list.Documents)}
	if list.Pagination != nil {
		page.Pagination = *list.Pagination
	}
	return page, nil
}

func (r *entityRepo[T]) mapList(docs []json.RawMessage) []T {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		if mapped := r.safeOne(doc); mapped != nil {
			items = append(items, *mapped)
		}
	}
	return items
}

func (r *entityRepo[T]) create(ctx context.Context, payload any) (*T, error) {
	raw, err := r.client.Create(ctx, r.collection, payload)
	if err != nil {
		return nil, err
	}
	entity, err := r.mapOne(raw)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *entityRepo[T]) update(ctx context.Context, id string, payload any) (*T, error) {
	raw, err := r.client.Update(ctx, r.collection, id, payload)
	if err != nil {
		return nil, err
	}
	entity, err := r.mapOne(raw)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete removes a document.
func (r *entityRepo[T]) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.collection, id)
}

// resolveRowID turns a document id into the numeric row id the upload
// endpoint requires. A missing document is an error here: an upload cannot
// proceed without a valid owner.
func (r *entityRepo[T]) resolveRowID(ctx context.Context, id string) (int, error) {
	raw, err := r.client.FindOne(ctx, r.collection, id, strapi.Query{})
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, apperr.NotFound("")
	}
	var ref struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(raw, &ref); err != nil || ref.ID == 0 {
		return 0, apperr.Upstream(0, "Kunne ikke bestemme upload-reference.").WithCause(err)
	}
	return ref.ID, nil
}

// UploadFiles uploads every non-empty field's files, each field as an
// independent operation in a fixed order. One field failing never aborts the
// attempt on another; each outcome is recorded, never thrown.
func (r *entityRepo[T]) UploadFiles(ctx context.Context, id string, files FilesByField) (UploadResults, error) {
	rowID, err := r.resolveRowID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.uploadToRow(ctx, rowID, files), nil
}

func (r *entityRepo[T]) uploadToRow(ctx context.Context, rowID int, files FilesByField) UploadResults {
	fields := make([]string, 0, len(files))
	for field, queued := range files {
		if len(queued) > 0 {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	results := make(UploadResults, len(fields))
	for _, field := range fields {
		_, err := r.client.Upload(ctx, strapi.UploadRequest{
			Ref:   r.uid,
			RefID: rowID,
			Field: field,
			Files: files[field],
		})
		if err != nil {
			log.Error("Field upload failed", "collection", r.collection, "field", field, "rowID", rowID, "error", err)
			results[field] = FieldUpload{Err: err}
			continue
		}
		results[field] = FieldUpload{Success: true}
	}
	return results
}

// createWithFiles persists the entity, then best-effort uploads each field's
// files keyed to the assigned row id, then refetches so the returned value
// reflects attached media. A failed refetch falls back to the pre-upload
// snapshot instead of failing the operation.
func (r *entityRepo[T]) createWithFiles(ctx context.Context, payload any, files FilesByField) (*T, UploadResults, error) {
	created, err := r.create(ctx, payload)
	if err != nil {
		return nil, nil, err
	}
	return r.attachAndRefetch(ctx, created, files)
}

// updateWithFiles is the update-side counterpart of createWithFiles.
func (r *entityRepo[T]) updateWithFiles(ctx context.Context, id string, payload any, files FilesByField) (*T, UploadResults, error) {
	updated, err := r.update(ctx, id, payload)
	if err != nil {
		return nil, nil, err
	}
	return r.attachAndRefetch(ctx, updated, files)
}

func (r *entityRepo[T]) attachAndRefetch(ctx context.Context, snapshot *T, files FilesByField) (*T, UploadResults, error) {
	uploads := UploadResults{}
	if len(files) > 0 {
		id := r.docID(*snapshot)
		results, err := r.UploadFiles(ctx, id, files)
		if err != nil {
			// Id resolution failed outright; the entity write already
			// succeeded, so report every queued field as failed.
			for field, queued := range files {
				if len(queued) > 0 {
					uploads[field] = FieldUpload{Err: err}
				}
			}
			return snapshot, uploads, nil
		}
		uploads = results
	}

	refetched, err := r.FindByID(ctx, r.docID(*snapshot))
	if err != nil || refetched == nil {
		if err != nil {
			log.Warn("Refetch after write failed, returning pre-upload snapshot",
				"collection", r.collection, "id", r.docID(*snapshot), "error", err)
		}
		return snapshot, uploads, nil
	}
	return refetched, uploads, nil
}
