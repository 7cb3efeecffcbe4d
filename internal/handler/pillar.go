// internal/handler/pillar.go
package handler

import (
	"net/http"

	"github.com/dangerclosesec/onboarding/internal/service"
)

type PillarHandler struct {
	pillarService *service.PillarService
}

func NewPillarHandler(pillarService *service.PillarService) *PillarHandler {
	return &PillarHandler{pillarService: pillarService}
}

// List handles GET /api/pillars/ and returns the name to description map.
func (h *PillarHandler) List(w http.ResponseWriter, r *http.Request) {
	descriptions, err := h.pillarService.Descriptions(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if descriptions == nil {
		descriptions = map[string]string{}
	}
	respondWithJSON(w, http.StatusOK, descriptions)
}
