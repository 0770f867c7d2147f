package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/catalog-service/internal/pkg/validator"
	"github.com/murkotick/catalog-service/internal/transport/rest/middleware"
)

const (
	msgValidateFailed = "Validate Failed"
	msgJSONFailure    = "Error processing JSON"
)

// StatusError is a failure that maps to a specific HTTP status. Reason is
// written verbatim as the response body.
type StatusError struct {
	Code        int
	Reason      string
	ContentType string
	Err         error
}

func (e *StatusError) Error() string {
	msg := strconv.Itoa(e.Code) + " " + http.StatusText(e.Code)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StatusError) Unwrap() error { return e.Err }

func errNotFound() error {
	return &StatusError{Code: http.StatusNotFound}
}

func errBadRequest(cause error) error {
	return &StatusError{Code: http.StatusBadRequest, Err: cause}
}

// marshalJSON is swapped in tests to exercise the encoding fallback.
var marshalJSON = json.Marshal

// errValidation builds the 400 body: a "Validate Failed" marker followed by
// one {field: message} object per violation.
func errValidation(violations []validator.Violation) error {
	body := make([]map[string]string, 0, len(violations)+1)
	body = append(body, map[string]string{"message": msgValidateFailed})
	for _, v := range violations {
		body = append(body, map[string]string{v.Field: v.Message})
	}

	raw, err := marshalJSON(body)
	if err != nil {
		return &StatusError{Code: http.StatusInternalServerError, Reason: msgJSONFailure, Err: err}
	}
	return &StatusError{Code: http.StatusBadRequest, Reason: string(raw), ContentType: "application/json"}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// serve adapts a handler that returns an error. Every error, wherever it
// surfaced, is rendered here.
func serve(log *logrus.Entry, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, log, err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Entry, err error) {
	entry := log.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.RequestIDFromContext(r.Context()),
	}).WithError(err)

	var se *StatusError
	if errors.As(err, &se) {
		if se.Code >= http.StatusInternalServerError {
			entry.Error("request failed")
		}
		if se.ContentType != "" {
			w.Header().Set("Content-Type", se.ContentType)
		} else if se.Reason != "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		w.WriteHeader(se.Code)
		if se.Reason != "" {
			_, _ = io.WriteString(w, se.Reason)
		}
		return
	}

	if errors.Is(err, context.Canceled) {
		entry.Debug("request canceled")
	} else {
		entry.Error("request failed")
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
