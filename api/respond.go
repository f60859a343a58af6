package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"task-list/errors"
	"task-list/logger"
)

// errorResponse defines the JSON structure for error responses
type errorResponse struct {
	Error   string         `json:"error"`
	Type    string         `json:"type,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// respondWithError sends a structured error response
func respondWithError(w http.ResponseWriter, taskErr *errors.TaskError, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(taskErr.Code)

	lg.Error("HTTP error response", map[string]any{
		"error_type":    string(taskErr.Type),
		"error_message": taskErr.Message,
		"status_code":   taskErr.Code,
		"error_details": taskErr.Details,
	})

	resp := errorResponse{
		Error: taskErr.Message,
		Type:  string(taskErr.Type),
	}
	// Internal causes stay in the log
	if taskErr.Type != errors.InternalError {
		resp.Details = taskErr.Details
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already written, nothing left to do but log.
		lg.Error("failed to encode error response", map[string]any{
			"error": err.Error(),
		})
	}
}

// respondWithServiceError maps any error returned by the service layer.
func respondWithServiceError(w http.ResponseWriter, err error, lg *logger.Logger) {
	if taskErr, ok := errors.IsTaskError(err); ok {
		respondWithError(w, taskErr, lg)
		return
	}
	respondWithError(w, errors.NewInternalError(err.Error()), lg)
}

func respondWithJSON(w http.ResponseWriter, status int, body any, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		lg.Error("failed to encode response", map[string]any{
			"error": err.Error(),
		})
	}
}

// decodeBody reads at most limit bytes from the request and unmarshals them into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) *errors.TaskError {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.NewPayloadTooLargeError(limit)
		}
		return errors.NewInternalError(err.Error())
	}

	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return errors.NewValidationError("invalid JSON payload", map[string]any{
				"field": typeErr.Field,
			})
		}
		return errors.NewValidationError("invalid JSON payload")
	}
	return nil
}
