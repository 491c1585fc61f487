package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape at the transport boundary.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Envelope{Success: false, Message: message})
}

// respondUnauthorized is used for identity lookups that should already have
// been rejected by the session guard; it matches the guard's generic 401.
func respondUnauthorized(w http.ResponseWriter) {
	respondError(w, http.StatusUnauthorized, "Unauthorized: Invalid or expired token")
}
