package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// PasswordResetHandler serves the OTP-based password reset flow.
type PasswordResetHandler struct {
	resetUsecase usecase.PasswordResetUsecase
	logger       *zerolog.Logger
}

func NewPasswordResetHandler(
	resetUsecase usecase.PasswordResetUsecase,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetUsecase: resetUsecase,
		logger:       logger,
	}
}

type resetRequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
}

type resetVerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
	OTP   string `json:"otp"   validate:"required"`
}

type verifyAndResetRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Role        string `json:"role"        validate:"required"`
	OTP         string `json:"otp"         validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// The generic response never reveals whether the email is registered.
const resetRequestedMessage = "If an account with that email exists, an OTP has been sent for password reset."

func (h *PasswordResetHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req resetRequestOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	if err := h.resetUsecase.RequestReset(r.Context(), req.Email, role); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": resetRequestedMessage,
	})
}

func (h *PasswordResetHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req resetVerifyOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	reset, err := h.resetUsecase.VerifyResetCode(r.Context(), req.Email, role, req.OTP)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP verified successfully",
		"data": map[string]any{
			"email": reset.Email,
			"role":  reset.Role,
		},
	})
}

func (h *PasswordResetHandler) VerifyAndReset(w http.ResponseWriter, r *http.Request) {
	var req verifyAndResetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	if err := h.resetUsecase.ResetPassword(r.Context(), req.Email, role, req.OTP, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password has been reset successfully",
	})
}

func (h *PasswordResetHandler) History(w http.ResponseWriter, r *http.Request) {
	resets, err := h.resetUsecase.History(r.Context(), 50)
	if err != nil {
		respondError(w, err)
		return
	}

	history := make([]map[string]any, 0, len(resets))
	for _, reset := range resets {
		history = append(history, map[string]any{
			"email":     reset.Email,
			"role":      reset.Role,
			"timestamp": reset.UpdatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": history,
	})
}
