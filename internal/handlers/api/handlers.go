package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	diceService "github.com/PedroPerillo/dndice/internal/services/dice"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// RollRequest is the body of POST /api/v1/roll. Count and modifier are
// clamped into range; an unsupported die size is rejected.
type RollRequest struct {
	Count    int `json:"count"`
	DieSize  int `json:"die_size" validate:"oneof=4 6 8 10 12 20 100"`
	Modifier int `json:"modifier"`
}

// QuickRollRequest is the body for creating or replacing a preset
type QuickRollRequest struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	DieSize  int    `json:"die_size"`
	Modifier int    `json:"modifier"`
}

func (q QuickRollRequest) draft() quickRollService.Draft {
	return quickRollService.Draft{
		Name:     q.Name,
		Count:    q.Count,
		DieSize:  q.DieSize,
		Modifier: q.Modifier,
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	return nil
}

// scope builds the caller's preset scope: the verified identity, plus a
// cookie-backed local store for anonymous callers
func (s *Server) scope(w http.ResponseWriter, r *http.Request) (quickRollService.Scope, error) {
	identity := identityFromContext(r.Context())
	if identity != nil {
		return quickRollService.Scope{Identity: identity}, nil
	}

	local, err := quickRollRepo.NewLocal(&quickRollRepo.LocalConfig{
		Storage: newCookieStorage(w, r, s.cookieSecure, s.clock.Now),
		Clock:   s.clock,
		TTL:     s.localStoreTTL,
	})
	if err != nil {
		return quickRollService.Scope{}, err
	}

	return quickRollService.Scope{Local: local}, nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			s.logger.ErrorContext(r.Context(), "readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"message": "quick roll store is not reachable",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req RollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("d%d is not a supported die", req.DieSize))
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	out, err := s.dice.Roll(r.Context(), &diceService.RollInput{
		Count:    models.ClampCount(req.Count),
		DieSize:  req.DieSize,
		Modifier: models.ClampModifier(req.Modifier),
	})
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, newRollResponse(out.Result))
}

func (s *Server) handleListQuickRolls(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scope(w, r)
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	out, err := s.quickRolls.ListQuickRolls(r.Context(), &quickRollService.ListQuickRollsInput{
		Scope: scope,
	})
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	items := make([]QuickRollResponse, 0, len(out.QuickRolls))
	for _, q := range out.QuickRolls {
		items = append(items, newQuickRollResponse(q))
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: items})
}

func (s *Server) handleCreateQuickRoll(w http.ResponseWriter, r *http.Request) {
	var req QuickRollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scope, err := s.scope(w, r)
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	out, err := s.quickRolls.CreateQuickRoll(r.Context(), &quickRollService.CreateQuickRollInput{
		Scope: scope,
		Draft: req.draft(),
	})
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, newQuickRollResponse(out.QuickRoll))
}

func (s *Server) handleGetQuickRoll(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scope(w, r)
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	out, err := s.quickRolls.GetQuickRoll(r.Context(), &quickRollService.GetQuickRollInput{
		Scope: scope,
		ID:    chi.URLParam(r, "id"),
	})
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, newQuickRollResponse(out.QuickRoll))
}

func (s *Server) handleUpdateQuickRoll(w http.ResponseWriter, r *http.Request) {
	var req QuickRollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scope, err := s.scope(w, r)
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	out, err := s.quickRolls.UpdateQuickRoll(r.Context(), &quickRollService.UpdateQuickRollInput{
		Scope: scope,
		ID:    chi.URLParam(r, "id"),
		Draft: req.draft(),
	})
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, newQuickRollResponse(out.QuickRoll))
}

func (s *Server) handleDeleteQuickRoll(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scope(w, r)
	if err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	if err := s.quickRolls.DeleteQuickRoll(r.Context(), &quickRollService.DeleteQuickRollInput{
		Scope: scope,
		ID:    chi.URLParam(r, "id"),
	}); err != nil {
		respondServiceError(w, r, s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
