// Package api exposes hazard calculations over HTTP
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gohaz/app"
	"gohaz/domain/core"
	apperrors "gohaz/internal/errors"
	"gohaz/ports"
)

// Server wires the calculation endpoints onto a chi router
type Server struct {
	service *app.CalculationService
	repo    ports.CalculationRepository
	router  chi.Router
}

// NewServer creates the HTTP surface. repo may be nil; the stored-run
// endpoints then answer 404.
func NewServer(service *app.CalculationService, repo ports.CalculationRepository) *Server {
	s := &Server{service: service, repo: repo}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))

	r.Route("/api/calculations", func(r chi.Router) {
		r.Post("/", s.handleRun)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/curves", s.handleGetCurves)
	})

	s.router = r
	return s
}

// Handler returns the root http handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("malformed calculation request: "+err.Error()))
		return
	}

	inputs, err := req.ToInputs()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.Run(r.Context(), inputs)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsConfigurationError(err) || core.IsDomainError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusCreated, NewCalculationResponse(result, req.Levels()))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusNotFound, apperrors.NotFound("calculation store"))
		return
	}
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	calcs, err := s.repo.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, calcs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusNotFound, apperrors.NotFound("calculation store"))
		return
	}
	id, err := core.ParseCalculationID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}
	calc, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleGetCurves(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusNotFound, apperrors.NotFound("calculation store"))
		return
	}
	id, err := core.ParseCalculationID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}
	levels, curves, err := s.repo.GetCurves(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, NewCurvesResponse(levels, curves))
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
