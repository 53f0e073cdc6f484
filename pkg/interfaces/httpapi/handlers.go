package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sporadiq/mrp/pkg/application/dto"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlan runs one planning call. InvalidInput maps to 400,
// InfeasibleWindow to 422 (with the partial analytics the façade computed),
// anything else to 500.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var wire dto.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.FromError(
			entities.NewInvalidInput("malformed JSON body: %v", err), nil))
		return
	}

	req, err := wire.ToDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.FromError(err, nil))
		return
	}

	result, err := s.service.Plan(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), dto.FromError(err, result))
		return
	}
	writeJSON(w, http.StatusOK, dto.FromResult(result))
}

func statusFor(err error) int {
	switch entities.KindOf(err) {
	case entities.ErrKindInvalidInput:
		return http.StatusBadRequest
	case entities.ErrKindInfeasibleWindow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
