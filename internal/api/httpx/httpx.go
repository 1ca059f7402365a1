// Package httpx writes the wallet's response envelope.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/baharkarakas/ppob-wallet/internal/apperr"
)

// Envelope is the body of every success response and of the access gate's
// rejection.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ClientError is the body of a 4xx response.
type ClientError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ServerError is the body of a 500 response. ErrorID is also logged.
type ServerError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	ErrorID string `json:"errorId"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes {status: 0, message, data} with 200.
func WriteOK(w http.ResponseWriter, msg string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Status: 0, Message: msg, Data: data})
}

// WriteError maps err to its response. An *apperr.Error becomes a client error
// with its own status; anything else is logged under a fresh id and becomes a
// 500.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, reqID string, err error) {
	if e, ok := apperr.As(err); ok {
		// contract codes such as 108 keep the full envelope
		if e.Code != e.Status {
			WriteJSON(w, e.Status, Envelope{Status: e.Code, Message: e.Message})
			return
		}
		WriteJSON(w, e.Status, ClientError{Status: e.Code, Message: e.Message})
		return
	}
	WriteInternal(w, r, log, reqID, err)
}

// WriteInternal logs err with a new correlation id and writes the 500 body.
func WriteInternal(w http.ResponseWriter, r *http.Request, log *slog.Logger, reqID string, err any) {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	log.Error("request failed",
		"error_id", id,
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	WriteJSON(w, http.StatusInternalServerError, ServerError{
		Status:  http.StatusInternalServerError,
		Message: "Internal Server Error",
		ErrorID: id,
	})
}
