package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps list payloads
type DataResponse struct {
	Data any `json:"data"`
}

// QuickRollResponse is the wire form of a preset
type QuickRollResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Count       int       `json:"count"`
	DieSize     int       `json:"die_size"`
	Modifier    int       `json:"modifier"`
	Label       string    `json:"label"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func newQuickRollResponse(q *models.QuickRoll) QuickRollResponse {
	return QuickRollResponse{
		ID:          q.ID,
		Name:        q.Name,
		Count:       q.Count,
		DieSize:     q.DieSize,
		Modifier:    q.Modifier,
		Label:       q.Label(),
		DisplayName: q.DisplayName(),
		CreatedAt:   q.CreatedAt,
	}
}

// RollResponse is the wire form of a roll result
type RollResponse struct {
	Count           int    `json:"count"`
	DieSize         int    `json:"die_size"`
	Label           string `json:"label"`
	IndividualRolls []int  `json:"individual_rolls"`
	DiceSum         int    `json:"dice_sum"`
	Modifier        int    `json:"modifier"`
	Total           int    `json:"total"`
	Highest         int    `json:"highest"`
}

func newRollResponse(r *models.RollResult) RollResponse {
	return RollResponse{
		Count:           r.Count,
		DieSize:         r.DieSize,
		Label:           r.Label(),
		IndividualRolls: r.IndividualRolls,
		DiceSum:         r.DiceSum,
		Modifier:        r.ModifierApplied,
		Total:           r.Total,
		Highest:         r.Highest,
	}
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, quickRollService.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, quickRollService.ErrQuickRollNotFound):
		return http.StatusNotFound
	case errors.Is(err, quickRollService.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, quickRollService.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the mapped status. Validation messages are
// returned as is; store details stay in the logs.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)

	switch status {
	case http.StatusBadRequest:
		respondError(w, status, err.Error())
	case http.StatusNotFound:
		respondError(w, status, "Quick roll not found")
	case http.StatusUnauthorized:
		respondError(w, status, "Sign in to use saved quick rolls")
	case http.StatusServiceUnavailable:
		if errors.Is(err, ErrCookieTooLarge) {
			respondError(w, status, ErrCookieTooLarge.Error())
			return
		}
		respondError(w, status, "Quick roll storage is temporarily unavailable")
	default:
		logger.ErrorContext(r.Context(), "unexpected error", "error", err)
		respondError(w, status, "Something went wrong")
	}
}
