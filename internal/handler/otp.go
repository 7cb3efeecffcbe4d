// internal/handler/otp.go
package handler

import (
	"net/http"

	"github.com/dangerclosesec/onboarding/internal/service"
)

type OTPHandler struct {
	otpService *service.OTPService
}

func NewOTPHandler(otpService *service.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

type OTPRequestResponse struct {
	BaseResponse
	*service.OTPRequestOutput
}

type OTPVerifyResponse struct {
	BaseResponse
	*service.OTPVerifyOutput
}

// Request handles POST /api/otp/request/. The code itself is never returned.
func (h *OTPHandler) Request(w http.ResponseWriter, r *http.Request) {
	var input service.OTPRequestInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	output, err := h.otpService.Request(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OTPRequestResponse{BaseResponse{Ok: true}, output})
}

// Verify handles POST /api/otp/verify/.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var input service.OTPVerifyInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	output, err := h.otpService.Verify(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OTPVerifyResponse{BaseResponse{Ok: true}, output})
}
