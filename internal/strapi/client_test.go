package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *metrics.Mock) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	m := metrics.NewMock()
	return NewClientWithHTTP(server.Client(), server.URL, "server-token", m), m
}

func TestFindDecodesEnvelope(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/match-results", r.URL.Path)
		assert.Equal(t, "Bearer server-token", r.Header.Get("Authorization"))
		assert.Equal(t, "categories", r.URL.Query().Get("populate[0]"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{
			"data": [{"id":1,"documentId":"doc-1"},{"id":2,"documentId":"doc-2"}],
			"meta": {"pagination": {"page":1,"pageSize":25,"pageCount":1,"total":2}}
		}`)
	})

	list, err := client.Find(context.Background(), "match-results", Query{Populate: []string{"categories"}})
	require.NoError(t, err)
	assert.Len(t, list.Documents, 2)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 2, list.Pagination.Total)
	assert.Equal(t, 1, m.StoreRequests())
}

func TestFindOneNotFoundIsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`)
	})

	raw, err := client.FindOne(context.Background(), "events", "missing", Query{})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCreateWrapsDataEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/events", r.URL.Path)

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sommerfest", body["data"]["name"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintln(w, `{"data":{"id":9,"documentId":"ev-9","name":"Sommerfest"}}`)
	})

	raw, err := client.Create(context.Background(), "events", map[string]any{"name": "Sommerfest"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ev-9")
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		code   apperr.Code
	}{
		{http.StatusBadRequest, apperr.CodeValidationFailed},
		{http.StatusUnauthorized, apperr.CodeUnauthorized},
		{http.StatusForbidden, apperr.CodeForbidden},
		{http.StatusConflict, apperr.CodeAlreadyExists},
		{http.StatusRequestEntityTooLarge, apperr.CodeFileTooLarge},
		{http.StatusBadGateway, apperr.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprintln(w, `{"error":{"status":0,"name":"Error","message":"upstream besked"}}`)
			})

			_, err := client.Find(context.Background(), "events", Query{})
			require.Error(t, err)
			assert.Equal(t, tt.code, apperr.CodeOf(err))
			assert.Equal(t, 1, m.StoreErrors())
		})
	}
}

func TestUpstreamErrorKeepsStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintln(w, `{"error":{"status":502,"name":"Error","message":"nede"}}`)
	})

	_, err := client.Find(context.Background(), "events", Query{})
	appErr := apperr.From(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, "nede", appErr.Message)
}

func TestTransportTimeoutClassifiedAsTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Find(ctx, "events", Query{})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTimeout, apperr.CodeOf(err))
}

func TestUploadSendsMultipartAndParsesBareArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "api::match-result.match-result", r.FormValue("ref"))
		assert.Equal(t, "42", r.FormValue("refId"))
		assert.Equal(t, "images", r.FormValue("field"))
		require.Len(t, r.MultipartForm.File["files"], 1)
		assert.Equal(t, "kamp.jpg", r.MultipartForm.File["files"][0].Filename)
		assert.Equal(t, "image/jpeg", r.MultipartForm.File["files"][0].Header.Get("Content-Type"))

		fmt.Fprintln(w, `[{"id":5,"documentId":"up-5","name":"kamp.jpg","url":"/uploads/kamp.jpg","size":120.5,"mime":"image/jpeg"}]`)
	})

	uploaded, err := client.Upload(context.Background(), UploadRequest{
		Ref:   "api::match-result.match-result",
		RefID: 42,
		Field: "images",
		Files: []UploadFile{{Name: "kamp.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")}},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "up-5", uploaded[0].DocumentID)
	assert.Equal(t, 120.5, uploaded[0].SizeKB)
}

func TestLogin(t *testing.T) {
	t.Run("success returns session", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/local", r.URL.Path)
			// Login must not send the server token.
			assert.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprintln(w, `{"jwt":"user-jwt","user":{"id":1,"documentId":"u-1","username":"mads"}}`)
		})

		session, err := client.Login(context.Background(), "mads", "hemmelig")
		require.NoError(t, err)
		assert.Equal(t, "user-jwt", session.Token)
		assert.Contains(t, string(session.User), "mads")
	})

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, `{"error":{"status":400,"name":"ValidationError","message":"Invalid identifier or password"}}`)
		})

		_, err := client.Login(context.Background(), "mads", "forkert")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})
}

func TestWithTokenScopesRequests(t *testing.T) {
	var seen []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		fmt.Fprintln(w, `{"data":[]}`)
	})

	_, err := client.Find(context.Background(), "events", Query{})
	require.NoError(t, err)

	scoped := client.WithToken("user-jwt")
	_, err = scoped.Find(context.Background(), "events", Query{})
	require.NoError(t, err)

	// The original client keeps its own token.
	_, err = client.Find(context.Background(), "events", Query{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer server-token", "Bearer user-jwt", "Bearer server-token"}, seen)
}

func TestMeResolvesToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		fmt.Fprintln(w, `{"id":1,"documentId":"u-1","username":"mads","email":"mads@klub.dk"}`)
	})

	raw, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "u-1")
}
