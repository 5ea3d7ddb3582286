package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/notifier"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/strapi"
)

const commentDoc = `{
	"id": 30,
	"documentId": "c-30",
	"content": "Flot kamp!",
	"matchResult": {"data":{"id":12,"documentId":"mr-12"}},
	"createdAt": "2025-05-18T08:00:00.000Z"
}`

func newCommentService(store *strapi.Mock) (*CommentService, *notifier.Mock) {
	n := notifier.NewMock()
	return NewCommentService(repository.NewCommentRepository(store), n), n
}

func strPtr(s string) *string { return &s }

func TestCommentCreateRequiresExactlyOneParent(t *testing.T) {
	tests := []struct {
		name string
		data repository.CommentData
	}{
		{"no parent", repository.CommentData{Content: "Hej"}},
		{"two parents", repository.CommentData{
			Content:       "Hej",
			MatchResultID: strPtr("mr-1"),
			TournamentID:  strPtr("tr-1"),
		}},
		{"three parents", repository.CommentData{
			Content:       "Hej",
			MatchResultID: strPtr("mr-1"),
			TournamentID:  strPtr("tr-1"),
			EventID:       strPtr("ev-1"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := strapi.NewMock()
			svc, _ := newCommentService(store)

			res := svc.Create(context.Background(), tt.data)
			require.False(t, res.IsOk())
			assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)

			// Validation happens before any store traffic.
			assert.Empty(t, store.CreateCalls)
			assert.Empty(t, store.FindCalls)
		})
	}
}

func TestCommentCreateRejectsBlankContent(t *testing.T) {
	store := strapi.NewMock()
	svc, _ := newCommentService(store)

	res := svc.Create(context.Background(), repository.CommentData{
		Content:       "   ",
		MatchResultID: strPtr("mr-1"),
	})
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)
	assert.Empty(t, store.CreateCalls)
}

func TestCommentCreateSuccessNotifies(t *testing.T) {
	store := strapi.NewMock()
	store.CreateFunc = func(ctx context.Context, collection string, data any) (json.RawMessage, error) {
		assert.Equal(t, repository.CollectionComments, collection)
		return json.RawMessage(commentDoc), nil
	}
	svc, n := newCommentService(store)

	res := svc.Create(context.Background(), repository.CommentData{
		Content:       "Flot kamp!",
		MatchResultID: strPtr("mr-12"),
	})
	require.True(t, res.IsOk())
	assert.Equal(t, "c-30", res.Value().ID)

	require.Eventually(t, func() bool { return n.Calls() == 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, n.CommentCreatedCalls, 1)
}

func TestCommentGetThread(t *testing.T) {
	store := strapi.NewMock()
	store.FindFunc = func(ctx context.Context, collection string, q strapi.Query) (*strapi.DocumentList, error) {
		assert.Equal(t, "ev-7", q.Filters["event.documentId"])
		return &strapi.DocumentList{Documents: []json.RawMessage{json.RawMessage(commentDoc)}}, nil
	}
	svc, _ := newCommentService(store)

	res := svc.GetThread(context.Background(), "event", "ev-7")
	require.True(t, res.IsOk())
	assert.Len(t, res.Value(), 1)
}

func TestCommentUpdateRejectsBlankContent(t *testing.T) {
	store := strapi.NewMock()
	svc, _ := newCommentService(store)

	res := svc.Update(context.Background(), "c-30", repository.CommentPatch{Content: strPtr(" ")})
	require.False(t, res.IsOk())
	assert.Equal(t, apperr.CodeValidationFailed, res.Err().Code)
	assert.Empty(t, store.UpdateCalls)
}
