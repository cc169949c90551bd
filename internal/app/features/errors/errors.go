// internal/app/features/errors/errors.go

// Package errors writes the JSON error bodies every API route answers with:
//
//	{ "message": "Group not found" }
//
// Server-side failures go through ErrorLogger so the cause is logged while
// the client only sees a generic message.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/studyhub/internal/app/system/limits"
	"go.uber.org/zap"
)

// Body is the JSON shape of an error response.
type Body struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} with the given status. Successful
// operations that only confirm an action use it too.
func Message(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Body{Message: msg})
}

// BadRequest answers 400.
func BadRequest(w http.ResponseWriter, msg string) {
	Message(w, http.StatusBadRequest, msg)
}

// Unauthorized answers 401.
func Unauthorized(w http.ResponseWriter, msg string) {
	Message(w, http.StatusUnauthorized, msg)
}

// Forbidden answers 403.
func Forbidden(w http.ResponseWriter, msg string) {
	Message(w, http.StatusForbidden, msg)
}

// NotFound answers 404.
func NotFound(w http.ResponseWriter, msg string) {
	Message(w, http.StatusNotFound, msg)
}

// ErrorLogger logs unexpected failures and answers 500.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err with fields and writes a 500 with clientMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, clientMsg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.log.Error(clientMsg, fields...)
	Message(w, http.StatusInternalServerError, clientMsg)
}

// DecodeJSON decodes the request body into v, rejecting bodies over
// limits.MaxJSONBodySize.
// It reports false after answering 400 when the body is malformed.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}
