package http

import (
	"net/http"

	"github.com/mkrogh/boldklub/internal/repository"
)

// matchResultRequest is the create payload. Categories and author travel as
// document ids; the repository turns them into relation operators.
type matchResultRequest struct {
	HomeTeam    string   `json:"homeTeam"`
	AwayTeam    string   `json:"awayTeam"`
	HomeScore   int      `json:"homeScore"`
	AwayScore   int      `json:"awayScore"`
	Goalscorers *string  `json:"goalscorers,omitempty"`
	Report      *string  `json:"report,omitempty"`
	MatchDate   string   `json:"matchDate"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Author      *string  `json:"author,omitempty"`
}

func (req matchResultRequest) data() repository.MatchResultData {
	return repository.MatchResultData{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		Goalscorers: req.Goalscorers,
		Report:      req.Report,
		MatchDate:   req.MatchDate,
		ImageURL:    req.ImageURL,
		CategoryIDs: req.Categories,
		AuthorID:    req.Author,
	}
}

// matchResultPatchRequest is the update payload; absent fields stay untouched.
type matchResultPatchRequest struct {
	HomeTeam    *string  `json:"homeTeam,omitempty"`
	AwayTeam    *string  `json:"awayTeam,omitempty"`
	HomeScore   *int     `json:"homeScore,omitempty"`
	AwayScore   *int     `json:"awayScore,omitempty"`
	Goalscorers *string  `json:"goalscorers,omitempty"`
	Report      *string  `json:"report,omitempty"`
	MatchDate   *string  `json:"matchDate,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

func (req matchResultPatchRequest) patch() repository.MatchResultPatch {
	return repository.MatchResultPatch{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		Goalscorers: req.Goalscorers,
		Report:      req.Report,
		MatchDate:   req.MatchDate,
		ImageURL:    req.ImageURL,
		CategoryIDs: req.Categories,
	}
}

func (s *Server) ListMatchResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := s.services(r).MatchResults
		opts := listOptions(r)
		if opts.UserID != "" {
			respond(w, svc.GetByUser(r.Context(), opts.UserID))
			return
		}
		respond(w, svc.GetPaginated(r.Context(), opts))
	}
}

func (s *Server) GetMatchResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).MatchResults.GetByID(r.Context(), r.PathValue("id")))
	}
}

func (s *Server) CreateMatchResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchResultRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusCreated, s.services(r).MatchResults.Create(r.Context(), req.data(), files))
	}
}

func (s *Server) UpdateMatchResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchResultPatchRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusOK, s.services(r).MatchResults.Update(r.Context(), r.PathValue("id"), req.patch(), files))
	}
}

func (s *Server) DeleteMatchResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).MatchResults.Delete(r.Context(), r.PathValue("id")))
	}
}
