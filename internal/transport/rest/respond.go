package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// writeJSON encodes v before touching the response, so an encoding failure
// can still become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
	return nil
}

// maxBodySize caps request bodies; anything larger is a bad request.
const maxBodySize = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequest(err)
	}
	return nil
}

// location expands a path template containing {id}.
func location(template, id string) string {
	return strings.Replace(template, "{id}", url.PathEscape(id), 1)
}

func noContent(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
