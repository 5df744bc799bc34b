// Package handlers implements the EatTrue HTTP endpoints on top of the
// scanning application service.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/turtacn/EatTrue/internal/interfaces/http/middleware"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// maxBodyBytes bounds request bodies. Ingredient lists are short.
const maxBodyBytes = 64 << 10

// getUserID returns the user id carried by the request, preferring the body
// value over the X-User-ID header.
func getUserID(r *http.Request, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return middleware.ContextGetUserID(r.Context())
}

// parseLimit reads the "limit" query parameter. Absent means 0 (everything).
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.InvalidParam("limit must be an integer").WithDetail("limit=" + v)
	}
	return n, nil
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.InvalidParam("request body must not be empty")
		}
		return errors.Wrap(err, errors.CodeInvalidParam, "invalid JSON body")
	}
	return nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeAppError maps application errors to HTTP status codes. Server-side
// failures are masked with the code's default message; the request id lets
// callers quote the failure back to operators.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeUnknown {
		code = errors.CodeInternal
	}

	resp := ErrorResponse{
		Code:      code.String(),
		Message:   errors.DefaultMessageForCode(code),
		RequestID: middleware.ContextGetRequestID(r.Context()),
	}
	if !errors.IsServerError(code) {
		var ae *errors.AppError
		if stderrors.As(err, &ae) {
			resp.Message = ae.Message
			resp.Detail = ae.Detail
		}
	}
	writeJSON(w, errors.HTTPStatusForCode(code), resp)
}

//Personal.AI order the ending
