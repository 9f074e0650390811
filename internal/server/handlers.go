package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/storage"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))

	// A retrieval failure degrades to an empty result set; the client still
	// gets the intent and an error marker in the body.
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search degraded", zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Analyze(query.Query))
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var input models.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if input.Category != "" && !input.Category.Valid() {
		s.respondError(w, http.StatusBadRequest, "unknown category")
		return
	}
	if input.Category == "" {
		input.Category = models.CategoryOther
	}
	if input.ID == "" {
		input.ID = uuid.New().String()
	}

	listing := &models.Listing{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Price:       input.Price,
		Rooms:       input.Rooms,
		IsActive:    true,
	}
	if err := s.storage.CreateListing(r.Context(), listing); err != nil {
		s.logger.Error("create listing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": listing.ID, "status": "created"})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := s.storage.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "listing not found")
			return
		}
		s.logger.Error("get listing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, listing)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete listing request", zap.String("id", id))
	if err := s.storage.DeleteListing(r.Context(), id); err != nil {
		s.logger.Error("delete listing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.storage.CountListings(r.Context())
	if err != nil {
		s.logger.Error("status: count listings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": count,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
