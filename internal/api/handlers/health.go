package handlers

import (
	"net/http"
	"time"
)

func Health(w http.ResponseWriter, now time.Time) {
	respondOK(w, "Server is running", map[string]any{
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}
