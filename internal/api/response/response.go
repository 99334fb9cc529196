package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteUnauthorized writes a 401 with a basic-auth challenge for realm.
func WriteUnauthorized(w http.ResponseWriter, realm, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	WriteError(w, http.StatusUnauthorized, message)
}
