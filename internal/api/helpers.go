package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/contacts"
	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/models"
	"github.com/wptechprodigy/mail-sonic/internal/remote"
	"github.com/wptechprodigy/mail-sonic/internal/smtp"
)

// Error kinds reported in the error envelope.
const (
	KindInvalidRequest = "invalid_request"
	KindStoreError     = "store_error"
	KindRemoteError    = "remote_error"
	KindInternalError  = "internal_error"
)

// errInvalidRequest marks client mistakes: malformed bodies, bad path parameters.
var errInvalidRequest = errors.New("invalid request")

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidRequest, fmt.Sprintf(format, args...))
}

// classify maps an error onto its envelope kind, HTTP status and client message.
// The message is fixed per kind so underlying details never reach the client.
func classify(err error) (kind string, status int, message string) {
	var storeErr *contacts.StoreError
	var remoteErr *remote.Error

	switch {
	case errors.Is(err, errInvalidRequest), errors.Is(err, smtp.ErrInvalidMessage):
		return KindInvalidRequest, http.StatusBadRequest, "The request is invalid"
	case errors.As(err, &storeErr):
		return KindStoreError, http.StatusInternalServerError, "The contact store failed"
	case errors.As(err, &remoteErr):
		return KindRemoteError, http.StatusBadGateway, "The mail server request failed"
	default:
		return KindInternalError, http.StatusInternalServerError, "Internal server error"
	}
}

// WriteError logs err and answers with the error envelope matching its kind.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind, status, message := classify(err)

	logger.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("kind", kind),
		zap.Error(err),
	)

	writeJSON(w, status, models.ErrorResponse{Kind: kind, Message: message})
}

// WriteJSONResponse encodes v as a 200 JSON response.
// Uses a buffered approach to prevent partial writes if JSON encoding fails.
// Returns false if encoding failed and an internal error was written instead.
func WriteJSONResponse(w http.ResponseWriter, v any) bool {
	return writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) bool {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Log.Error("failed to encode JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"kind":"internal_error","message":"Internal server error"}` + "\n"))
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return true
}

// WriteText writes s as a 200 plain-text response.
func WriteText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s))
}

// maxBodyBytes caps JSON request bodies. Outgoing messages are the largest.
const maxBodyBytes = 10 << 20

// decodeJSON reads a JSON request body of at most maxBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return invalidRequest("missing body")
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return invalidRequest("body exceeds %d bytes", tooLarge.Limit)
		}
		return invalidRequest("malformed JSON body: %v", err)
	}
	return nil
}
