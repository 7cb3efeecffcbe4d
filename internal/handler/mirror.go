// internal/handler/mirror.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/onboarding/internal/serializer"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/go-chi/chi/v5"
)

type MirrorHandler struct {
	mirrorService *service.MirrorService
}

func NewMirrorHandler(mirrorService *service.MirrorService) *MirrorHandler {
	return &MirrorHandler{mirrorService: mirrorService}
}

// Get handles GET and POST /api/mirror/{slug}/ and /api/mirror/{slug}/{template}/.
// The password comes from the password query parameter, or for POST from a
// JSON or form body.
func (h *MirrorHandler) Get(w http.ResponseWriter, r *http.Request) {
	input := service.MirrorInput{
		Slug:     chi.URLParam(r, "slug"),
		Template: chi.URLParam(r, "template"),
		Password: r.URL.Query().Get("password"),
	}
	if input.Password == "" && r.Method == http.MethodPost {
		input.Password = passwordFromBody(r)
	}

	sub, err := h.mirrorService.Get(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	view, err := serializer.View(r.Context(), sub)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, string(sub.Kind()), view)
}

func passwordFromBody(r *http.Request) string {
	if isJSON(r) {
		var body struct {
			Password string `json:"password"`
		}
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}
		return body.Password
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil && err != http.ErrNotMultipart {
		return ""
	}
	return r.PostFormValue("password")
}
