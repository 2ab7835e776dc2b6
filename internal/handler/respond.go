package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	locale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	english := locale.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")

	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
}

// decodeAndValidate decodes the JSON body into dst and runs the
// validate tags. The returned error message is already user-facing.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return errors.New(fieldErrors[0].Translate(trans))
		}
		return err
	}

	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps usecase sentinel errors onto HTTP status codes.
// Anything unmapped is an internal error and its detail stays out of
// the response.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAccountNotFound),
		errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrVisitorNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrAccountExists):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case mongo.IsDuplicateKeyError(err):
		respondMessage(w, http.StatusBadRequest, "Record already exists")
	case errors.Is(err, repository.ErrInvalidRole):
		respondMessage(w, http.StatusBadRequest, "Invalid role specified")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid password")
	case errors.Is(err, usecase.ErrOTPInvalid):
		respondMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, usecase.ErrResetCodeInvalid):
		respondMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, usecase.ErrPasswordTooShort),
		errors.Is(err, usecase.ErrRoomFull),
		errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrPaymentExceedsDue),
		errors.Is(err, usecase.ErrFeesAlreadyPaid),
		errors.Is(err, usecase.ErrAlreadyCheckedOut):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrDeliveryFailed):
		respondMessage(w, http.StatusInternalServerError, "Failed to send email. Please try again.")
	default:
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}
