package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"wasteops/internal/buildinfo"
	"wasteops/internal/model"
)

// evaluateRequest is the wire body for quote evaluation. The service
// request goes through the parse funnel; the utilization snapshot is
// optional.
type evaluateRequest struct {
	ServiceRequest   model.ServiceRequestInput `json:"serviceRequest"`
	FleetUtilization *model.FleetUtilization   `json:"fleetUtilization,omitempty"`
}

// EvaluateHandler handles POST /v1/quotes/evaluate.
func (s *Server) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	req, err := model.ParseServiceRequest(body.ServiceRequest)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid service request", verr.Error(), r.URL.Path)
			return
		}
		writeProblem(w, http.StatusBadRequest, "Invalid service request", err.Error(), r.URL.Path)
		return
	}

	ev, err := s.Engine.Evaluate(r.Context(), req, body.FleetUtilization)
	if err != nil {
		s.Log.Error("evaluation failed", zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "Evaluation failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HealthHandler reports liveness with the build stamp.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

// ReadyHandler reports readiness: the engine must be wired and the
// store reachable enough to return a (possibly empty) profile list.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if s.Engine == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Engine not ready", "", r.URL.Path)
		return
	}
	if _, err := s.Store.LoadHistoricalProfiles(r.Context()); err != nil {
		// Degraded but available: evaluation still answers on defaults.
		writeJSON(w, http.StatusOK, map[string]any{"status": "degraded", "detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
