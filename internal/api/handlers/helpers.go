package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pmikheev/tasktracker/internal/api/httpx"
	"github.com/pmikheev/tasktracker/internal/api/validate"
)

// decodeValid decodes the JSON body into dst and runs its validation tags.
// On failure it writes the 400 response and reports false.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body", nil)
		return false
	}
	if errs := validate.Struct(dst); errs != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "validation failed", errs)
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", name+" must be an integer", nil)
		return 0, false
	}
	return id, true
}
