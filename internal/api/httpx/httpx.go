package httpx

import (
	"encoding/json"
	"net/http"
)

type errResp struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError emits the {"error": msg} body every failure surfaces as. No
// internal detail ever reaches the client through this path.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errResp{Error: msg})
}

// WriteSuccess emits the bare {"success": true} acknowledgement used by
// mutating endpoints.
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
