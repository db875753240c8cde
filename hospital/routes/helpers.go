// hospital/routes/helpers.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, controllers.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, controllers.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, controllers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, controllers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controllers.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError answers with {"error": msg}. Only 500s are logged, and their
// detail stays in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := http.StatusText(status)
	var kerr *controllers.Error
	if status == http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal server error"
	} else if errors.As(err, &kerr) {
		msg = kerr.Message()
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(msg string) error {
	return &controllers.Error{Kind: controllers.ErrValidation, Msg: msg}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func uintParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, badRequest("invalid " + name)
	}
	return uint(v), nil
}

// principal is only called behind AuthMiddleware.
func principal(r *http.Request) types.Principal {
	p, _ := middlewares.PrincipalFrom(r.Context())
	return p
}
