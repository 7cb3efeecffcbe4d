// internal/handler/common.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/onboarding/internal/domain"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	BaseResponse
	Error            string            `json:"error"`
	Fields           map[string]string `json:"fields,omitempty"`
	RequiresPassword bool              `json:"requires_password,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// DataResponse wraps a successful payload.
type DataResponse struct {
	BaseResponse
	Type string `json:"type,omitempty"`
	Data any    `json:"data"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondWithData(w http.ResponseWriter, code int, kind string, data any) {
	respondWithJSON(w, code, DataResponse{BaseResponse: BaseResponse{Ok: true}, Type: kind, Data: data})
}

// respondWithServiceError maps service errors onto status codes. Unknown
// errors are logged and reported as a generic 500.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrSubmissionNotFound),
		errors.Is(err, domain.ErrPillarNotFound),
		errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrPasswordRequired):
		respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Password required", RequiresPassword: true})
	case errors.Is(err, domain.ErrIncorrectPassword):
		respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Incorrect password", RequiresPassword: true})
	case errors.Is(err, domain.ErrOTPRateLimited):
		respondWithError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPNotRequested),
		errors.Is(err, domain.ErrOTPAttemptsExceeded),
		errors.Is(err, domain.ErrInvalidTemplate),
		errors.Is(err, domain.ErrInvalidSubmission),
		errors.Is(err, domain.ErrMissingShareChannel),
		errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSlugConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrShareFailed):
		respondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrCRMDisabled):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// queryInt returns the integer query parameter name, or def when it is
// missing or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
