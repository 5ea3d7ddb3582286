package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/strapi"
)

func matchResultDoc(id int, documentID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"id": %d,
		"documentId": %q,
		"homeTeam": "Boldklubben",
		"awayTeam": "Naboklubben",
		"homeScore": 2,
		"awayScore": 1,
		"matchDate": "2025-05-17",
		"createdAt": "2025-05-17T19:00:00.000Z"
	}`, id, documentID))
}

func TestFindByIDMissingIsNil(t *testing.T) {
	mock := strapi.NewMock()
	repo := NewMatchResultRepository(mock)

	found, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByIDMapsDocument(t *testing.T) {
	mock := strapi.NewMock()
	mock.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		assert.Equal(t, CollectionMatchResults, collection)
		assert.Equal(t, "mr-1", documentID)
		assert.Contains(t, q.Populate, "categories")
		return matchResultDoc(1, "mr-1"), nil
	}
	repo := NewMatchResultRepository(mock)

	found, err := repo.FindByID(context.Background(), "mr-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "mr-1", found.ID)
	assert.Equal(t, 1, found.RowID)
}

func TestFindAllDropsMalformedDocuments(t *testing.T) {
	mock := strapi.NewMock()
	mock.FindFunc = func(ctx context.Context, collection string, q strapi.Query) (*strapi.DocumentList, error) {
		return &strapi.DocumentList{Documents: []json.RawMessage{
			matchResultDoc(1, "mr-1"),
			json.RawMessage(`{"id":2,"documentId":"mr-2"}`),
			matchResultDoc(3, "mr-3"),
		}}, nil
	}
	repo := NewMatchResultRepository(mock)

	all, err := repo.FindAll(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "mr-1", all[0].ID)
	assert.Equal(t, "mr-3", all[1].ID)
}

func TestFindAllScopesToUser(t *testing.T) {
	mock := strapi.NewMock()
	repo := NewMatchResultRepository(mock)

	_, err := repo.FindAll(context.Background(), ListOptions{UserID: "u-2"})
	require.NoError(t, err)

	require.Len(t, mock.FindCalls, 1)
	q := mock.FindCalls[0].Query
	assert.Equal(t, "u-2", q.Filters["author.documentId"])
	assert.Equal(t, strapi.AllPageSize, q.PageSize)
	assert.Equal(t, []string{"matchDate:desc"}, q.Sort)
}

func TestFindPaginatedDefaults(t *testing.T) {
	mock := strapi.NewMock()
	mock.FindFunc = func(ctx context.Context, collection string, q strapi.Query) (*strapi.DocumentList, error) {
		return &strapi.DocumentList{
			Documents:  []json.RawMessage{matchResultDoc(1, "mr-1")},
			Pagination: &strapi.Pagination{Page: 1, PageSize: strapi.DefaultPageSize, PageCount: 4, Total: 100},
		}, nil
	}
	repo := NewMatchResultRepository(mock)

	page, err := repo.FindPaginated(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 100, page.Pagination.Total)

	q := mock.FindCalls[0].Query
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, strapi.DefaultPageSize, q.PageSize)
}

func TestCreateConnectsCategoriesUpdateSetsThem(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(1, "mr-1"), nil
	}
	mock.UpdateFunc = func(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error) {
		return matchResultDoc(1, "mr-1"), nil
	}
	repo := NewMatchResultRepository(mock)

	_, err := repo.Create(context.Background(), MatchResultData{
		HomeTeam: "A", AwayTeam: "B", HomeScore: 1, AwayScore: 0,
		MatchDate: "2025-05-17", CategoryIDs: []string{"cat-1"},
	})
	require.NoError(t, err)

	created := mock.CreateCalls[0].Data.(map[string]any)
	assert.Equal(t, strapi.RelationConnect{Connect: []string{"cat-1"}}, created["categories"])

	_, err = repo.Update(context.Background(), "mr-1", MatchResultPatch{CategoryIDs: []string{"cat-2"}})
	require.NoError(t, err)

	updated := mock.UpdateCalls[0].Data.(map[string]any)
	assert.Equal(t, strapi.RelationSet{Set: []string{"cat-2"}}, updated["categories"])
	// Untouched fields stay out of a patch payload.
	assert.NotContains(t, updated, "homeTeam")
}

func TestCreateWithFilesPartialFailure(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	mock.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	mock.UploadFunc = func(ctx context.Context, req strapi.UploadRequest) ([]strapi.UploadedFile, error) {
		if req.Field == "images" {
			return nil, apperr.UploadFailed("upload afvist")
		}
		return []strapi.UploadedFile{{ID: 1, Name: req.Files[0].Name}}, nil
	}
	repo := NewMatchResultRepository(mock)

	entity, uploads, err := repo.CreateWithFiles(context.Background(),
		MatchResultData{HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17"},
		FilesByField{
			"images": {{Name: "kamp.jpg", ContentType: "image/jpeg", Data: []byte("img")}},
			"files":  {{Name: "program.pdf", ContentType: "application/pdf", Data: []byte("pdf")}},
		})
	require.NoError(t, err)
	require.NotNil(t, entity)

	// One field failed, the other succeeded; neither aborts the write.
	assert.Equal(t, []string{"images"}, uploads.Failed())
	assert.True(t, uploads["files"].Success)
	assert.False(t, uploads["images"].Success)
	require.Error(t, uploads["images"].Err)

	// Fields upload in deterministic sorted order, linked to the row id.
	require.Len(t, mock.UploadCalls, 2)
	assert.Equal(t, "files", mock.UploadCalls[0].Field)
	assert.Equal(t, "images", mock.UploadCalls[1].Field)
	assert.Equal(t, 7, mock.UploadCalls[0].RefID)
	assert.Equal(t, "api::match-result.match-result", mock.UploadCalls[0].Ref)
}

func TestCreateWithFilesIDResolutionFailureMarksAllFields(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	mock.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return nil, apperr.Network("")
	}
	repo := NewMatchResultRepository(mock)

	entity, uploads, err := repo.CreateWithFiles(context.Background(),
		MatchResultData{HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17"},
		FilesByField{
			"images": {{Name: "kamp.jpg"}},
			"files":  {{Name: "program.pdf"}},
		})
	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "mr-7", entity.ID)

	assert.ElementsMatch(t, []string{"images", "files"}, uploads.Failed())
	assert.Empty(t, mock.UploadCalls)
}

func TestCreateWithFilesRefetchFailureFallsBackToSnapshot(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	mock.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		// resolveRowID fetches without populate; the refetch carries it.
		if len(q.Populate) > 0 {
			return nil, apperr.Network("")
		}
		return matchResultDoc(7, "mr-7"), nil
	}
	repo := NewMatchResultRepository(mock)

	entity, uploads, err := repo.CreateWithFiles(context.Background(),
		MatchResultData{HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17"},
		FilesByField{"images": {{Name: "kamp.jpg"}}})
	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "mr-7", entity.ID)
	assert.Empty(t, uploads.Failed())
}

func TestCreateWithoutFilesSkipsUpload(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	mock.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	repo := NewMatchResultRepository(mock)

	_, uploads, err := repo.CreateWithFiles(context.Background(),
		MatchResultData{HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17"}, nil)
	require.NoError(t, err)
	assert.Empty(t, uploads)
	assert.Empty(t, mock.UploadCalls)
}

func tournamentMatchDoc(id int, documentID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"id": %d,
		"documentId": %q,
		"homeTeam": "A",
		"awayTeam": "B",
		"homeScore": 1,
		"awayScore": 0,
		"tournament": {"data":{"id":5,"documentId":"tr-5"}},
		"createdAt": "2025-06-07T10:00:00.000Z"
	}`, id, documentID))
}

func TestCreateManyStopsAtFirstFailure(t *testing.T) {
	mock := strapi.NewMock()
	calls := 0
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		calls++
		if calls == 3 {
			return nil, apperr.Network("")
		}
		return tournamentMatchDoc(calls, fmt.Sprintf("tm-%d", calls)), nil
	}
	repo := NewTournamentMatchRepository(mock)

	data := []TournamentMatchData{
		{TournamentID: "tr-5", HomeTeam: "A", AwayTeam: "B"},
		{TournamentID: "tr-5", HomeTeam: "C", AwayTeam: "D"},
		{TournamentID: "tr-5", HomeTeam: "E", AwayTeam: "F"},
		{TournamentID: "tr-5", HomeTeam: "G", AwayTeam: "H"},
	}
	created, err := repo.CreateMany(context.Background(), data)

	// The failure leaves a deterministic prefix and stops the sequence.
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNetwork, apperr.CodeOf(err))
	require.Len(t, created, 2)
	assert.Equal(t, "tm-1", created[0].ID)
	assert.Equal(t, "tm-2", created[1].ID)
	assert.Equal(t, 3, calls)
}

func TestTournamentMatchCreateConnectsOwner(t *testing.T) {
	mock := strapi.NewMock()
	mock.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		assert.Equal(t, CollectionTournamentMatches, collection)
		return tournamentMatchDoc(1, "tm-1"), nil
	}
	repo := NewTournamentMatchRepository(mock)

	_, err := repo.Create(context.Background(), TournamentMatchData{
		TournamentID: "tr-5", HomeTeam: "A", AwayTeam: "B",
	})
	require.NoError(t, err)

	payload := mock.CreateCalls[0].Data.(map[string]any)
	assert.Equal(t, strapi.RelationConnect{Connect: []string{"tr-5"}}, payload["tournament"])
}

func TestCommentFindByParentKeepsTopLevel(t *testing.T) {
	mock := strapi.NewMock()
	mock.FindFunc = func(ctx context.Context, collection string, q strapi.Query) (*strapi.DocumentList, error) {
		assert.Equal(t, "mr-12", q.Filters["matchResult.documentId"])
		return &strapi.DocumentList{Documents: []json.RawMessage{
			json.RawMessage(`{"id":30,"documentId":"c-30","content":"Flot kamp!","createdAt":"2025-05-18T08:00:00.000Z"}`),
			json.RawMessage(`{"id":31,"documentId":"c-31","content":"Enig!","parent":{"data":{"id":30,"documentId":"c-30"}},"createdAt":"2025-05-18T09:00:00.000Z"}`),
		}}, nil
	}
	repo := NewCommentRepository(mock)

	comments, err := repo.FindByParent(context.Background(), "matchResult", "mr-12")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c-30", comments[0].ID)
}

func TestUserRepositoryLogin(t *testing.T) {
	mock := strapi.NewMock()
	mock.LoginFunc = func(ctx context.Context, identifier, password string) (*strapi.AuthSession, error) {
		assert.Equal(t, "mads", identifier)
		return &strapi.AuthSession{
			Token: "user-jwt",
			User:  json.RawMessage(`{"id":2,"documentId":"u-2","username":"mads","email":"mads@klub.dk"}`),
		}, nil
	}
	repo := NewUserRepository(mock)

	user, token, err := repo.Login(context.Background(), "mads", "hemmelig")
	require.NoError(t, err)
	assert.Equal(t, "user-jwt", token)
	assert.Equal(t, "u-2", user.ID)
}

func TestUserRepositoryCurrentUser(t *testing.T) {
	mock := strapi.NewMock()
	mock.MeFunc = func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"id":2,"documentId":"u-2","username":"mads","email":"mads@klub.dk"}`), nil
	}
	repo := NewUserRepository(mock)

	user, err := repo.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mads", user.Username)
	assert.Equal(t, 1, mock.MeCalls)
}

func TestDeletePassesThrough(t *testing.T) {
	mock := strapi.NewMock()
	mock.DeleteFunc = func(ctx context.Context, collection, documentID string) error {
		return errors.New("boom")
	}
	repo := NewEventRepository(mock)

	err := repo.Delete(context.Background(), "ev-1")
	require.Error(t, err)
	require.Len(t, mock.DeleteCalls, 1)
	assert.Equal(t, CollectionEvents, mock.DeleteCalls[0].Collection)
	assert.Equal(t, "ev-1", mock.DeleteCalls[0].DocumentID)
}
