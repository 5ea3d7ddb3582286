// Package slack delivers club notifications to a Slack channel.
package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = (*Notifier)(nil)

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

func (s *Notifier) SendMatchResultCreated(result *domain.MatchResult) error {
	return s.sendMessage(formatMatchResult(result, "Nyt kampresultat"))
}

func (s *Notifier) SendMatchResultUpdated(result *domain.MatchResult) error {
	return s.sendMessage(formatMatchResult(result, "Kampresultat opdateret"))
}

func (s *Notifier) SendEventCreated(event *domain.Event) error {
	return s.sendMessage(formatEvent(event, "Nyt arrangement"))
}

func (s *Notifier) SendEventUpdated(event *domain.Event) error {
	return s.sendMessage(formatEvent(event, "Arrangement opdateret"))
}

func (s *Notifier) SendTournamentCreated(tournament *domain.Tournament) error {
	return s.sendMessage(formatTournament(tournament, "Nyt stævne"))
}

func (s *Notifier) SendTournamentUpdated(tournament *domain.Tournament) error {
	return s.sendMessage(formatTournament(tournament, "Stævne opdateret"))
}

func (s *Notifier) SendCommentCreated(comment *domain.Comment) error {
	return s.sendMessage(formatComment(comment))
}
