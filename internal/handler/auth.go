package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

// AuthHandler serves the two-step OTP login flow.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	logger      *zerolog.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

type checkUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
}

type requestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
}

type verifyOTPRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	OTP      string `json:"otp"      validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

func (h *AuthHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	var req checkUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	account, err := h.authUsecase.CheckUser(r.Context(), req.Email, role)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"exists":   true,
		"fullName": account.FullName,
		"email":    account.Email,
		"role":     account.Role,
	})
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	if err := h.authUsecase.RequestLoginOTP(r.Context(), req.Email, role); err != nil {
		h.logger.Error().Err(err).Str("email", req.Email).Msg("failed to request login OTP")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent successfully",
		"email":   req.Email,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	token, account, err := h.authUsecase.VerifyLoginOTP(r.Context(), req.Email, role, req.OTP, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    account,
	})
}
