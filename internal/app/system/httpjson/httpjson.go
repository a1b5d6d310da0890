// internal/app/system/httpjson/httpjson.go

// Package httpjson owns the JSON request/response envelope for the API.
// Every endpoint responds with an object carrying a "message" field plus
// operation-specific payload keys; errors carry only the message.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Uploads go through multipart
// handlers with their own limits.
const maxBodyBytes = 1 << 20

// M is a response payload. Handlers add a "message" key via the helpers.
type M map[string]any

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with a message and optional extra payload keys.
func OK(w http.ResponseWriter, message string, extra M) {
	body := M{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	Write(w, http.StatusOK, body)
}

// Created writes a 201 response with a message and optional extra payload keys.
func Created(w http.ResponseWriter, message string, extra M) {
	body := M{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	Write(w, http.StatusCreated, body)
}

// Error writes an error envelope with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, M{"message": message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message)
}

// Internal writes the generic 500 envelope. Detail belongs in the server log,
// never in the response body.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}

// ErrBadBody is returned by Decode for malformed or oversized request bodies.
var ErrBadBody = errors.New("invalid request body")

// Decode reads a JSON request body into dst, enforcing the body size cap and
// rejecting trailing garbage.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return ErrBadBody
	}
	if dec.More() {
		return ErrBadBody
	}
	return nil
}
