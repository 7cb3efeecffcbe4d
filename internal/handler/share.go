// internal/handler/share.go
package handler

import (
	"errors"
	"net/http"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/service"
)

type ShareHandler struct {
	shareService *service.ShareService
}

func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

type ShareResponse struct {
	BaseResponse
	Error string `json:"error,omitempty"`
	*service.ShareOutput
}

// Share handles POST /api/share/.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	var input service.ShareInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	output, err := h.shareService.Share(r.Context(), input)
	switch {
	case errors.Is(err, domain.ErrShareFailed) && output != nil:
		respondWithJSON(w, http.StatusBadGateway, ShareResponse{Error: err.Error(), ShareOutput: output})
	case err != nil:
		respondWithServiceError(w, r, err)
	default:
		respondWithJSON(w, http.StatusOK, ShareResponse{BaseResponse: BaseResponse{Ok: true}, ShareOutput: output})
	}
}
