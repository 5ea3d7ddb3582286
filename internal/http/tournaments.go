package http

import (
	"net/http"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/repository"
)

type tournamentPlayerRequest struct {
	Title      string   `json:"title"`
	PlayerName string   `json:"playerName"`
	Awards     []string `json:"awards,omitempty"`
}

func mapPlayers(players []tournamentPlayerRequest) []domain.TournamentPlayer {
	out := make([]domain.TournamentPlayer, 0, len(players))
	for _, p := range players {
		out = append(out, domain.TournamentPlayer{Title: p.Title, PlayerName: p.PlayerName, Awards: p.Awards})
	}
	return out
}

type tournamentRequest struct {
	Name        string                    `json:"name"`
	Description *string                   `json:"description,omitempty"`
	Location    *string                   `json:"location,omitempty"`
	DateFrom    string                    `json:"dateFrom"`
	DateTo      *string                   `json:"dateTo,omitempty"`
	Players     []tournamentPlayerRequest `json:"players,omitempty"`
	Categories  []string                  `json:"categories,omitempty"`
	Author      *string                   `json:"author,omitempty"`
}

func (req tournamentRequest) data() repository.TournamentData {
	return repository.TournamentData{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Players:     mapPlayers(req.Players),
		CategoryIDs: req.Categories,
		AuthorID:    req.Author,
	}
}

type tournamentPatchRequest struct {
	Name        *string                   `json:"name,omitempty"`
	Description *string                   `json:"description,omitempty"`
	Location    *string                   `json:"location,omitempty"`
	DateFrom    *string                   `json:"dateFrom,omitempty"`
	DateTo      *string                   `json:"dateTo,omitempty"`
	Players     []tournamentPlayerRequest `json:"players,omitempty"`
	Categories  []string                  `json:"categories,omitempty"`
}

func (req tournamentPatchRequest) patch() repository.TournamentPatch {
	patch := repository.TournamentPatch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		CategoryIDs: req.Categories,
	}
	if req.Players != nil {
		patch.Players = mapPlayers(req.Players)
	}
	return patch
}

type tournamentMatchRequest struct {
	HomeTeam    string  `json:"homeTeam"`
	AwayTeam    string  `json:"awayTeam"`
	HomeScore   int     `json:"homeScore"`
	AwayScore   int     `json:"awayScore"`
	Goalscorers *string `json:"goalscorers,omitempty"`
	Author      *string `json:"author,omitempty"`
}

// createMatchesRequest carries a batch of matches for one tournament; they
// are persisted sequentially.
type createMatchesRequest struct {
	TournamentID string                   `json:"tournamentId"`
	Matches      []tournamentMatchRequest `json:"matches"`
}

func (req createMatchesRequest) data() []repository.TournamentMatchData {
	out := make([]repository.TournamentMatchData, 0, len(req.Matches))
	for _, m := range req.Matches {
		out = append(out, repository.TournamentMatchData{
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			HomeScore:   m.HomeScore,
			AwayScore:   m.AwayScore,
			Goalscorers: m.Goalscorers,
			AuthorID:    m.Author,
		})
	}
	return out
}

type tournamentMatchPatchRequest struct {
	HomeTeam    *string `json:"homeTeam,omitempty"`
	AwayTeam    *string `json:"awayTeam,omitempty"`
	HomeScore   *int    `json:"homeScore,omitempty"`
	AwayScore   *int    `json:"awayScore,omitempty"`
	Goalscorers *string `json:"goalscorers,omitempty"`
}

func (req tournamentMatchPatchRequest) patch() repository.TournamentMatchPatch {
	return repository.TournamentMatchPatch{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		Goalscorers: req.Goalscorers,
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := s.services(r).Tournaments
		opts := listOptions(r)
		if opts.UserID != "" {
			respond(w, svc.GetByUser(r.Context(), opts.UserID))
			return
		}
		respond(w, svc.GetPaginated(r.Context(), opts))
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Tournaments.GetByID(r.Context(), r.PathValue("id")))
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tournamentRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusCreated, s.services(r).Tournaments.Create(r.Context(), req.data(), files))
	}
}

func (s *Server) UpdateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tournamentPatchRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusOK, s.services(r).Tournaments.Update(r.Context(), r.PathValue("id"), req.patch(), files))
	}
}

func (s *Server) DeleteTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Tournaments.Delete(r.Context(), r.PathValue("id")))
	}
}

func (s *Server) ListTournamentMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Tournaments.GetMatches(r.Context(), r.PathValue("id")))
	}
}

func (s *Server) CreateTournamentMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchesRequest
		if _, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req); appErr != nil {
			writeError(w, appErr)
			return
		}
		res := s.services(r).Tournaments.CreateMatches(r.Context(), req.TournamentID, req.data())
		if !res.IsOk() {
			writeError(w, res.Err())
			return
		}
		writeSuccess(w, http.StatusCreated, res.Value(), nil)
	}
}

func (s *Server) UpdateTournamentMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tournamentMatchPatchRequest
		if _, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req); appErr != nil {
			writeError(w, appErr)
			return
		}
		respond(w, s.services(r).Tournaments.UpdateMatch(r.Context(), r.PathValue("id"), req.patch()))
	}
}

func (s *Server) DeleteTournamentMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Tournaments.DeleteMatch(r.Context(), r.PathValue("id")))
	}
}
