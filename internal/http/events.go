package http

import (
	"net/http"

	"github.com/mkrogh/boldklub/internal/domain"
	"github.com/mkrogh/boldklub/internal/repository"
)

type eventRequest struct {
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	DateFrom           string  `json:"dateFrom"`
	DateTo             *string `json:"dateTo,omitempty"`
	TimeFrom           *string `json:"timeFrom,omitempty"`
	TimeTo             *string `json:"timeTo,omitempty"`
	PublishBy          *string `json:"publishBy,omitempty"`
	Description        *string `json:"description,omitempty"`
	PhotographerNeeded bool    `json:"photographerNeeded"`
	Author             *string `json:"author,omitempty"`
}

func (req eventRequest) data() repository.EventData {
	return repository.EventData{
		Name:               req.Name,
		Type:               domain.EventType(req.Type),
		DateFrom:           req.DateFrom,
		DateTo:             req.DateTo,
		TimeFrom:           req.TimeFrom,
		TimeTo:             req.TimeTo,
		PublishBy:          req.PublishBy,
		Description:        req.Description,
		PhotographerNeeded: req.PhotographerNeeded,
		AuthorID:           req.Author,
	}
}

type eventPatchRequest struct {
	Name               *string `json:"name,omitempty"`
	Type               *string `json:"type,omitempty"`
	DateFrom           *string `json:"dateFrom,omitempty"`
	DateTo             *string `json:"dateTo,omitempty"`
	TimeFrom           *string `json:"timeFrom,omitempty"`
	TimeTo             *string `json:"timeTo,omitempty"`
	PublishBy          *string `json:"publishBy,omitempty"`
	Description        *string `json:"description,omitempty"`
	PhotographerNeeded *bool   `json:"photographerNeeded,omitempty"`
}

func (req eventPatchRequest) patch() repository.EventPatch {
	patch := repository.EventPatch{
		Name:               req.Name,
		DateFrom:           req.DateFrom,
		DateTo:             req.DateTo,
		TimeFrom:           req.TimeFrom,
		TimeTo:             req.TimeTo,
		PublishBy:          req.PublishBy,
		Description:        req.Description,
		PhotographerNeeded: req.PhotographerNeeded,
	}
	if req.Type != nil {
		eventType := domain.EventType(*req.Type)
		patch.Type = &eventType
	}
	return patch
}

func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := s.services(r).Events
		opts := listOptions(r)
		if opts.UserID != "" {
			respond(w, svc.GetByUser(r.Context(), opts.UserID))
			return
		}
		respond(w, svc.GetPaginated(r.Context(), opts))
	}
}

func (s *Server) GetEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Events.GetByID(r.Context(), r.PathValue("id")))
	}
}

func (s *Server) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusCreated, s.services(r).Events.Create(r.Context(), req.data(), files))
	}
}

func (s *Server) UpdateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventPatchRequest
		files, appErr := decodeWrite(r, s.Cfg.MaxUploadMB*1024*1024, &req)
		if appErr != nil {
			writeError(w, appErr)
			return
		}
		respondWrite(w, http.StatusOK, s.services(r).Events.Update(r.Context(), r.PathValue("id"), req.patch(), files))
	}
}

func (s *Server) DeleteEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.services(r).Events.Delete(r.Context(), r.PathValue("id")))
	}
}
