package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"postboard/internal/common"
	"postboard/internal/logging"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

// writeError maps service errors onto HTTP statuses. Client faults keep
// their message; server faults are collapsed into a generic body and
// logged with the request path so the detail stays out of responses.
func writeError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrorInvalidInput):
		writeMsg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMsg(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorAuthenticationFailed),
		errors.Is(err, common.ErrorUnauthenticated):
		writeMsg(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		writeMsg(w, http.StatusForbidden, "Forbidden")
	default:
		logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
	}
}
