package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/mkrogh/boldklub/internal/domain"
)

func headerBlock(text string) slack.Block {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func sectionBlock(text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil)
}

func contextBlock(text string) slack.Block {
	return slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false))
}

func authorLine(author *domain.Author) string {
	if author == nil {
		return ""
	}
	return fmt.Sprintf("Indsendt af %s", author.Username)
}

func formatMatchResult(result *domain.MatchResult, title string) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, headerBlock(fmt.Sprintf("⚽ %s", title)))
	blocks = append(blocks, sectionBlock(fmt.Sprintf("*%s %d - %d %s*\nSpillet %s",
		result.HomeTeam, result.HomeScore, result.AwayScore, result.AwayTeam, result.MatchDate)))

	if result.Goalscorers != nil {
		blocks = append(blocks, sectionBlock(fmt.Sprintf("Målscorere: %s", *result.Goalscorers)))
	}
	if len(result.Categories) > 0 {
		names := make([]string, 0, len(result.Categories))
		for _, c := range result.Categories {
			names = append(names, c.Name)
		}
		blocks = append(blocks, contextBlock(strings.Join(names, " · ")))
	}
	if line := authorLine(result.Author); line != "" {
		blocks = append(blocks, contextBlock(line))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatEvent(event *domain.Event, title string) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, headerBlock(fmt.Sprintf("📅 %s", title)))

	when := event.DateFrom
	if event.DateTo != nil {
		when = fmt.Sprintf("%s – %s", event.DateFrom, *event.DateTo)
	}
	blocks = append(blocks, sectionBlock(fmt.Sprintf("*%s*\n%s", event.Name, when)))

	if event.Description != nil {
		blocks = append(blocks, sectionBlock(*event.Description))
	}
	if event.PhotographerNeeded {
		blocks = append(blocks, contextBlock("📷 Fotograf søges!"))
	}
	if line := authorLine(event.Author); line != "" {
		blocks = append(blocks, contextBlock(line))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatTournament(tournament *domain.Tournament, title string) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, headerBlock(fmt.Sprintf("🏆 %s", title)))

	line := fmt.Sprintf("*%s*\n%s", tournament.Name, tournament.DateFrom)
	if tournament.Location != nil {
		line += fmt.Sprintf(" · %s", *tournament.Location)
	}
	blocks = append(blocks, sectionBlock(line))

	if len(tournament.Matches) > 0 {
		blocks = append(blocks, contextBlock(fmt.Sprintf("%d kampe registreret", len(tournament.Matches))))
	}
	if line := authorLine(tournament.Author); line != "" {
		blocks = append(blocks, contextBlock(line))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatComment(comment *domain.Comment) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, headerBlock("💬 Ny kommentar"))
	blocks = append(blocks, sectionBlock(comment.Content))
	if line := authorLine(comment.Author); line != "" {
		blocks = append(blocks, contextBlock(line))
	}
	return slack.NewBlockMessage(blocks...)
}
