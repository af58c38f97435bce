package httpapi

import (
	"encoding/json"
	"net/http"

	"gestoria/internal/api"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the header is already out, nothing sensible left to do on encode failure
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.Error{Detail: detail})
}
