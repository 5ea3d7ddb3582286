// Package domain holds the typed, validated in-memory representations of
// records from the external content store. Entities are value snapshots:
// nothing mutates them in process, every change is a new fetch.
package domain

import "time"

// Category tags content so visitors can filter it (team, youth, social...).
type Category struct {
	ID    string `json:"id"`
	RowID int    `json:"rowId"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

// ImageFormats are the responsive variants the store derives for an image.
type ImageFormats struct {
	Thumbnail *ImageFormat `json:"thumbnail,omitempty"`
	Small     *ImageFormat `json:"small,omitempty"`
	Medium    *ImageFormat `json:"medium,omitempty"`
	Large     *ImageFormat `json:"large,omitempty"`
}

// ImageFormat is one derived rendition of an uploaded image.
type ImageFormat struct {
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	SizeKB float64 `json:"sizeKb"`
}

// Image is an uploaded image asset.
type Image struct {
	ID      string       `json:"id"`
	RowID   int          `json:"rowId"`
	Name    string       `json:"name"`
	URL     string       `json:"url"`
	SizeKB  float64      `json:"sizeKb"`
	Mime    string       `json:"mime"`
	Formats ImageFormats `json:"formats"`
}

// File is an uploaded document asset (PDF, spreadsheet...).
type File struct {
	ID     string  `json:"id"`
	RowID  int     `json:"rowId"`
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	SizeKB float64 `json:"sizeKb"`
	Ext    string  `json:"ext"`
}

// Author identifies the member who created or last touched a record.
type Author struct {
	ID       string `json:"id"`
	RowID    int    `json:"rowId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User is a club member account as the store's auth plugin reports it.
type User struct {
	ID        string    `json:"id"`
	RowID     int       `json:"rowId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"createdAt"`
	Provider  string    `json:"provider"`
}

// MatchResult is a played match submitted by a member.
//
// ID is the store's stable document identifier; RowID is the internal numeric
// row id, needed only when the upload API links assets to the record.
type MatchResult struct {
	ID          string     `json:"id"`
	RowID       int        `json:"rowId"`
	HomeTeam    string     `json:"homeTeam"`
	AwayTeam    string     `json:"awayTeam"`
	HomeScore   int        `json:"homeScore"`
	AwayScore   int        `json:"awayScore"`
	Goalscorers *string    `json:"goalscorers,omitempty"`
	Report      *string    `json:"report,omitempty"`
	Categories  []Category `json:"categories"`
	MatchDate   string     `json:"matchDate"` // date-only, YYYY-MM-DD
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Images      []Image    `json:"images"`
	Files       []File     `json:"files"`
	Author      *Author    `json:"author,omitempty"`
	UpdatedBy   *Author    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EventType distinguishes upcoming announcements from past write-ups.
type EventType string

const (
	EventUpcoming EventType = "upcoming"
	EventPast     EventType = "past"
)

// Event is a club happening: a training camp, a party, an away trip.
type Event struct {
	ID                 string    `json:"id"`
	RowID              int       `json:"rowId"`
	Name               string    `json:"name"`
	Type               EventType `json:"type"`
	DateFrom           string    `json:"dateFrom"` // date-only, YYYY-MM-DD
	DateTo             *string   `json:"dateTo,omitempty"`
	TimeFrom           *string   `json:"timeFrom,omitempty"`
	TimeTo             *string   `json:"timeTo,omitempty"`
	PublishBy          *string   `json:"publishBy,omitempty"`
	Description        *string   `json:"description,omitempty"`
	PhotographerNeeded bool      `json:"photographerNeeded"`
	Images             []Image   `json:"images"`
	Files              []File    `json:"files"`
	Author             *Author   `json:"author,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TournamentPlayer is an award entry on a tournament (best scorer, MVP...).
type TournamentPlayer struct {
	Title      string   `json:"title"`
	PlayerName string   `json:"playerName"`
	Awards     []string `json:"awards,omitempty"`
}

// Tournament is a multi-match competition hosted or attended by the club.
type Tournament struct {
	ID          string             `json:"id"`
	RowID       int                `json:"rowId"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Location    *string            `json:"location,omitempty"`
	DateFrom    string             `json:"dateFrom"`
	DateTo      *string            `json:"dateTo,omitempty"`
	Categories  []Category         `json:"categories"`
	Players     []TournamentPlayer `json:"players"`
	Matches     []TournamentMatch  `json:"matches"`
	Images      []Image            `json:"images"`
	Files       []File             `json:"files"`
	Author      *Author            `json:"author,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// TournamentMatch is one match inside a tournament. It references its owner
// by document id; its lifetime does not depend on the parent being loaded.
type TournamentMatch struct {
	ID           string    `json:"id"`
	RowID        int       `json:"rowId"`
	TournamentID string    `json:"tournamentId"`
	HomeTeam     string    `json:"homeTeam"`
	AwayTeam     string    `json:"awayTeam"`
	HomeScore    int       `json:"homeScore"`
	AwayScore    int       `json:"awayScore"`
	Goalscorers  *string   `json:"goalscorers,omitempty"`
	Author       *Author   `json:"author,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Comment belongs to exactly one of a match result, tournament, or event.
// Replies nest one level below their parent; the store populates at most
// top-level comments plus their direct replies.
type Comment struct {
	ID            string    `json:"id"`
	RowID         int       `json:"rowId"`
	Content       string    `json:"content"`
	Author        *Author   `json:"author,omitempty"`
	MatchResultID *string   `json:"matchResultId,omitempty"`
	TournamentID  *string   `json:"tournamentId,omitempty"`
	EventID       *string   `json:"eventId,omitempty"`
	ParentID      *string   `json:"parentId,omitempty"`
	Replies       []Comment `json:"replies,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
