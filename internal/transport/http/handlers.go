package http

import (
	"encoding/json"
	"net/http"
)

// Response is a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionInfo describes one session for API responses
type SessionInfo struct {
	GameID      string `json:"gameId"`
	Phase       string `json:"phase"`
	PlayerCount int    `json:"playerCount"`
}

// handleCreateSession creates (or returns) the session named in the body.
// Creation is idempotent; posting an existing id does not reset it.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GameID string `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.GameID == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   &ErrorInfo{Code: "INVALID_REQUEST", Message: "gameId is required"},
		})
		return
	}

	session := s.registry.CreateOrGet(body.GameID)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: SessionInfo{
			GameID:      session.ID(),
			Phase:       session.Phase().String(),
			PlayerCount: session.PlayerCount(),
		},
	})
}

// handleGetSession reports whether a session exists and its basic state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameID")

	session, ok := s.registry.Get(gameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   &ErrorInfo{Code: "SESSION_NOT_FOUND", Message: "session not found"},
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: SessionInfo{
			GameID:      session.ID(),
			Phase:       session.Phase().String(),
			PlayerCount: session.PlayerCount(),
		},
	})
}

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{"status": "ok"}})
}

// handleStats reports aggregate counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]int{
			"sessions": s.registry.SessionCount(),
			"players":  s.registry.PlayerCount(),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
