// Package response writes the JSON bodies shared by every handler.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// Write sends data with successStatus, or the mapped error body when err is set.
// Server errors are logged at error level, client errors at debug.
func Write(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		log.Info("Request completed.", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
			log.Error("Failed to encode response.", jsonErr)
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Server error: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Request rejected with status %d.", status), map[string]interface{}{
			"path":     r.URL.Path,
			"category": category,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Decode reads a JSON body into v. Unknown fields are allowed; an empty body is
// rejected unless allowEmpty is set.
func Decode(w http.ResponseWriter, r *http.Request, v interface{}, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
	if err == io.EOF && allowEmpty {
		return nil
	}
	if err != nil {
		return apperror.NewValidationError("invalid JSON payload")
	}
	return nil
}
