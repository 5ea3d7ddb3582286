package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/result"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// listOptions lifts the shared list query parameters: page, pageSize, sort,
// and user (author scoping).
func listOptions(r *http.Request) repository.ListOptions {
	q := r.URL.Query()
	opts := repository.ListOptions{UserID: q.Get("user")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		opts.PageSize = size
	}
	if sort := q.Get("sort"); sort != "" {
		opts.Sort = []string{sort}
	}
	return opts
}

// respond writes a read result in the shared envelope.
func respond[T any](w http.ResponseWriter, res result.Result[T]) {
	if !res.IsOk() {
		writeError(w, res.Err())
		return
	}
	writeSuccess(w, http.StatusOK, res.Value(), nil)
}

// respondWrite writes a create/update result, carrying upload warnings.
func respondWrite[T any](w http.ResponseWriter, status int, res result.WithWarnings[T]) {
	if !res.IsOk() {
		writeError(w, res.Err())
		return
	}
	writeSuccess(w, status, res.Value(), res.Warnings())
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, bodyError(err))
			return
		}
		respond(w, s.services(r).Auth.Login(r.Context(), req.Identifier, req.Password))
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokenFromContext(r) == "" {
			writeError(w, apperr.Unauthorized(""))
			return
		}
		respond(w, s.services(r).Auth.CurrentUser(r.Context()))
	}
}
