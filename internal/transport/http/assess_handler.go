package http

import (
	"encoding/json"
	"net/http"

	"bloom-quest-service/internal/assess"
	"bloom-quest-service/internal/domain"
)

// AssessHandler forwards career assessments to the external service and
// returns the recommendation, persisting it on the user profile.
type AssessHandler struct {
	client *assess.Client
}

// NewAssessHandler builds the handler. client may be nil when the feature
// is not configured.
func NewAssessHandler(client *assess.Client) *AssessHandler {
	return &AssessHandler{client: client}
}

type assessRequest struct {
	UserID     string            `json:"userId"`
	Assessment domain.Assessment `json:"assessment"`
}

type assessResponse struct {
	Recommendation string `json:"recommendation"`
}

// ServeHTTP handles POST /assess.
func (h *AssessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.client == nil {
		http.Error(w, "assessment service not configured", http.StatusServiceUnavailable)
		return
	}

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid assessment payload", http.StatusBadRequest)
		return
	}

	recommendation, err := h.client.Evaluate(r.Context(), req.UserID, req.Assessment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assessResponse{Recommendation: recommendation})
}
