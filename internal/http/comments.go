package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/repository"
)

type commentRequest struct {
	Content     string  `json:"content"`
	MatchResult *string `json:"matchResult,omitempty"`
	Tournament  *string `json:"tournament,omitempty"`
	Event       *string `json:"event,omitempty"`
	Parent      *string `json:"parent,omitempty"`
	Author      *string `json:"author,omitempty"`
}

func (req commentRequest) data() repository.CommentData {
	return repository.CommentData{
		Content:       req.Content,
		MatchResultID: req.MatchResult,
		TournamentID:  req.Tournament,
		EventID:       req.Event,
		ParentID:      req.Parent,
		AuthorID:      req.Author,
	}
}

type commentPatchRequest struct {
	Content *string `json:"content,omitempty"`
}

// ListCommentsHandler serves one entity's thread; exactly one of the
// matchResult, tournament, or event query parameters selects the parent.
func (s *Server) ListCommentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		parents := map[string]string{
			"matchResult": q.Get("matchResult"),
			"tournament":  q.Get("tournament"),
			"event":       q.Get("event"),
		}
		field, id := "", ""
		for name, value := range parents {
			if value == "" {
				continue
			}
			if field != "" {
				writeError(w, apperr.Validation("Angiv præcis ét kampresultat, stævne eller arrangement."))
				return
			}
			field, id = name, value
		}
		if field == "" {
			writeError(w, apperr.Validation("Angiv præcis ét kampresultat, stævne eller arrangement."))
			return
		}
		respond(w, s.services(r).Comments.GetThread(r.Context(), field, id))
	}
}

func (s *Server) CreateCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, bodyError(err))
			return
		}
		res := s.services(r).Comments.Create(r.Context(), req.data())
		if !res.IsOk() {
			writeError(w, res.Err())
			return
		}
		writeSuccess(w, http.StatusCreated, res.Value(), nil)
	}
}

func (s *Server) UpdateCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, bodyError(err))
			return
		}
		respond(w, s.services(r).Comments.Update(r.Context(), r.PathValue("id"), repository.CommentPatch{Content: req.Content}))
	}
}

func (s *Server) DeleteCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Comments.Delete(r.Context(), r.PathValue("id")))
	}
}
