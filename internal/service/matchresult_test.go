package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/notifier"
	"github.com/mkrogh/boldklub/internal/repository"
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

func newMatchResultService(store *strapi.Mock) (*MatchResultService, *notifier.Mock, *metrics.Mock) {
	n := notifier.NewMock()
	m := metrics.NewMock()
	return NewMatchResultService(repository.NewMatchResultRepository(store), n, m), n, m
}

func TestGetByIDPromotesMissingToNotFound(t *testing.T) {
	store := strapi.NewMock()
	svc, _, _ := newMatchResultService(store)

	res := svc.GetByID(context.Background(), "missing")
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeNotFound, res.Err().Code)
	assert.Equal(t, "Kampresultatet blev ikke fundet.", res.Err().Message)
}

func TestGetByIDSuccess(t *testing.T) {
	store := strapi.NewMock()
	store.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(1, "mr-1"), nil
	}
	svc, _, _ := newMatchResultService(store)

	res := svc.GetByID(context.Background(), "mr-1")
	require.True(t, res.IsOk())
	assert.Equal(t, "mr-1", res.Value().ID)
}

func TestCreateValidatesBeforeStoreCall(t *testing.T) {
	store := strapi.NewMock()
	svc, n, _ := newMatchResultService(store)

	res := svc.Create(context.Background(), repository.MatchResultData{HomeTeam: "  "}, nil)
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)

	details := res.Err().Details.(map[string]any)
	assert.Equal(t, []string{"awayTeam", "homeTeam", "matchDate"}, details["missing"])

	assert.Empty(t, store.CreateCalls)
	assert.Zero(t, n.Calls())
}

func TestCreateRejectsNegativeScore(t *testing.T) {
	store := strapi.NewMock()
	svc, _, _ := newMatchResultService(store)

	res := svc.Create(context.Background(), repository.MatchResultData{
		HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17", HomeScore: -1,
	}, nil)
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)
	assert.Empty(t, store.CreateCalls)
}

func TestCreatePartialUploadFailureYieldsOneWarning(t *testing.T) {
	store := strapi.NewMock()
	store.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	store.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	store.UploadFunc = func(ctx context.Context, req strapi.UploadRequest) ([]strapi.UploadedFile, error) {
		if req.Field == "images" {
			return nil, apperr.UploadFailed("afvist")
		}
		return []strapi.UploadedFile{{ID: 1}}, nil
	}
	svc, n, m := newMatchResultService(store)

	res := svc.Create(context.Background(), repository.MatchResultData{
		HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17",
	}, repository.FilesByField{
		"images": {{Name: "kamp.jpg"}},
		"files":  {{Name: "program.pdf"}},
	})

	// A failed attachment is a warning on a success, never a failure.
	require.True(t, res.IsOk())
	require.Len(t, res.Warnings(), 1)
	assert.Contains(t, res.Warnings()[0], "billederne")
	assert.Equal(t, 1, m.UploadsFailed())

	// Notification fires without the caller waiting on it.
	require.Eventually(t, func() bool { return n.Calls() == 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, n.MatchResultCreatedCalls, 1)
}

func TestCreateRepoFailureSkipsNotification(t *testing.T) {
	store := strapi.NewMock()
	store.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return nil, apperr.Network("")
	}
	svc, n, _ := newMatchResultService(store)

	res := svc.Create(context.Background(), repository.MatchResultData{
		HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17",
	}, nil)
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeNetwork, res.Err().Code)

	// Give a stray goroutine a moment to prove it does not exist.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, n.Calls())
}

func TestCreateNotificationFailureDoesNotChangeResult(t *testing.T) {
	store := strapi.NewMock()
	store.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	store.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	svc, n, _ := newMatchResultService(store)
	n.Err = apperr.Network("")

	res := svc.Create(context.Background(), repository.MatchResultData{
		HomeTeam: "A", AwayTeam: "B", MatchDate: "2025-05-17",
	}, nil)
	require.True(t, res.IsOk())
	assert.Empty(t, res.Warnings())
	require.Eventually(t, func() bool { return n.Calls() == 1 }, time.Second, 10*time.Millisecond)
}

func TestUpdateRejectsBlankRequiredText(t *testing.T) {
	store := strapi.NewMock()
	svc, _, _ := newMatchResultService(store)

	res := svc.Update(context.Background(), "mr-7", repository.MatchResultPatch{HomeTeam: strPtr("")}, nil)
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)

	details := res.Err().Details.(map[string]any)
	assert.Equal(t, []string{"homeTeam"}, details["missing"])

	assert.Empty(t, store.UpdateCalls)
}

func TestUpdateDispatchesUpdatedNotification(t *testing.T) {
	store := strapi.NewMock()
	store.UpdateFunc = func(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	store.FindOneFunc = func(ctx context.Context, collection, documentID string, q strapi.Query) (json.RawMessage, error) {
		return matchResultDoc(7, "mr-7"), nil
	}
	svc, n, _ := newMatchResultService(store)

	homeTeam := "Opdateret"
	res := svc.Update(context.Background(), "mr-7", repository.MatchResultPatch{HomeTeam: &homeTeam}, nil)
	require.True(t, res.IsOk())
	require.Eventually(t, func() bool { return n.Calls() == 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, n.MatchResultUpdatedCalls, 1)
}

func TestDelete(t *testing.T) {
	store := strapi.NewMock()
	svc, _, _ := newMatchResultService(store)

	res := svc.Delete(context.Background(), "mr-7")
	require.True(t, res.IsOk())
	require.Len(t, store.DeleteCalls, 1)
	assert.Equal(t, "mr-7", store.DeleteCalls[0].DocumentID)
}
