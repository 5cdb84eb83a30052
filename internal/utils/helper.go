package utils

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// WriteJSONErrorCode adds a stable machine-readable code next to the message.
func WriteJSONErrorCode(w http.ResponseWriter, message, errCode string, code int) {
	WriteJSON(w, code, map[string]string{"error": message, "code": errCode})
}
