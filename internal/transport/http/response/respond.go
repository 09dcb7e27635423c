package response

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes any payload with the given status. Encoding failures
// after the header is written cannot be reported to the client.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
