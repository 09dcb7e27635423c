package response

import (
	"encoding/json"
	"net/http"

	"github.com/jobhive/auth-service/internal/domain"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON reads a JSON request body into dst. Unknown fields are
// rejected so typos surface as 400s instead of silently ignored input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
