package api

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/logger"
)

// CORS allows any origin to call the API and answers preflight requests
// without dispatching them. It must wrap everything else so error responses
// carry the headers too.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin,X-Requested-With,Content-Type,Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Recover turns a panicking handler into an internal_error response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.Log.Error("recovered from panic", zap.Any("panic", rec), zap.Stack("stack"))
			WriteError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
