package slack_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/notifier/slack"
)

func goals(s string) *string { return &s }

func TestSendMatchResultCreated(t *testing.T) {
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		body, _ := io.ReadAll(r.Body)
		vals, _ := url.ParseQuery(string(body))
		assert.Equal(t, "C123", vals.Get("channel"))

		var blocks slackapi.Blocks
		err := json.Unmarshal([]byte(vals.Get("blocks")), &blocks)
		require.NoError(t, err)
		require.NotEmpty(t, blocks.BlockSet)

		// A few basic checks to ensure we have the right formatter
		header := blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Contains(t, header.Text.Text, "Nyt kampresultat")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "ts": "12345.6789"}`))
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	api := slackapi.New("test-token", slackapi.OptionAPIURL(srv.URL+"/"))
	m := metrics.NewMock()
	n := slack.NewNotifierWithAPI(api, "C123", m)

	err := n.SendMatchResultCreated(&domain.MatchResult{
		HomeTeam:    "Boldklubben",
		AwayTeam:    "Naboklubben",
		HomeScore:   2,
		AwayScore:   1,
		MatchDate:   "2025-05-17",
		Goalscorers: goals("Jensen (2)"),
	})
	require.NoError(t, err)

	assert.True(t, handlerCalled, "Expected http handler to be called")
	assert.Equal(t, 1, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendFailureIncrementsFailedCounter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	api := slackapi.New("test-token", slackapi.OptionAPIURL(srv.URL+"/"))
	m := metrics.NewMock()
	n := slack.NewNotifierWithAPI(api, "C404", m)

	err := n.SendCommentCreated(&domain.Comment{Content: "Flot kamp!"})
	require.Error(t, err)
	assert.Equal(t, 1, m.NotifFailed())
	assert.Equal(t, 0, m.NotifSent())
}
