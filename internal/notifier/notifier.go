package notifier

import "github.com/mkrogh/boldklub/internal/domain"

// Notifier defines a high-level interface for announcing content changes to
// the club. This decouples the services from the specific notification
// provider (e.g., Slack). Delivery is best-effort: the services invoke these
// after a successful write, never await them, and never let a delivery
// failure change the write's outcome.
type Notifier interface {
	SendMatchResultCreated(result *domain.MatchResult) error
	SendMatchResultUpdated(result *domain.MatchResult) error
	SendEventCreated(event *domain.Event) error
	SendEventUpdated(event *domain.Event) error
	SendTournamentCreated(tournament *domain.Tournament) error
	SendTournamentUpdated(tournament *domain.Tournament) error
	SendCommentCreated(comment *domain.Comment) error
}
