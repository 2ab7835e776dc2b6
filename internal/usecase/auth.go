package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/config"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/shared/auth"
	"github.com/vasapolrittideah/hostel-management-api/shared/security"
)

// AuthUsecase defines the business logic for the two-step OTP login
// flow and direct credential checks.
type AuthUsecase interface {
	// CheckUser resolves the account registered under (email, role).
	CheckUser(ctx context.Context, email string, role model.Role) (*model.Account, error)

	// Login verifies the password for (email, role) and issues a token.
	Login(ctx context.Context, email string, role model.Role, password string) (string, *model.Account, error)

	// RequestLoginOTP generates a fresh login code for (email, role),
	// superseding any previous one, and emails it to the account.
	RequestLoginOTP(ctx context.Context, email string, role model.Role) error

	// VerifyLoginOTP consumes a login code, re-verifies the password and
	// issues a token. Both factors are required: a matched code without
	// the password fails, and vice versa.
	VerifyLoginOTP(ctx context.Context, email string, role model.Role, code, password string) (string, *model.Account, error)
}

// EmailSender is the notification sink the auth flows hand codes to.
// Delivery is one attempt with no retry; callers decide whether a
// failure is surfaced or only logged.
type EmailSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPInvalid         = errors.New("invalid or expired OTP")
	ErrDeliveryFailed     = errors.New("failed to deliver email")
)

type authUsecase struct {
	accountRepo repository.AccountRepository
	otpRepo     repository.OTPRepository
	jwtAuth     auth.JWTAuthenticator
	mail        EmailSender
	cfg         *config.Config
}

func NewAuthUsecase(
	accountRepo repository.AccountRepository,
	otpRepo repository.OTPRepository,
	jwtAuth auth.JWTAuthenticator,
	mail EmailSender,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		accountRepo: accountRepo,
		otpRepo:     otpRepo,
		jwtAuth:     jwtAuth,
		mail:        mail,
		cfg:         cfg,
	}
}

func (u *authUsecase) CheckUser(ctx context.Context, email string, role model.Role) (*model.Account, error) {
	account, err := u.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}

func (u *authUsecase) Login(
	ctx context.Context,
	email string,
	role model.Role,
	password string,
) (string, *model.Account, error) {
	account, err := u.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, err
	}

	if ok, err := security.VerifyPassword(password, account.PasswordHash); err != nil {
		return "", nil, err
	} else if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.issueToken(account)
	if err != nil {
		return "", nil, err
	}

	sanitized := account.Sanitized()
	return token, &sanitized, nil
}

func (u *authUsecase) RequestLoginOTP(ctx context.Context, email string, role model.Role) error {
	account, err := u.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	// Replace deletes the previous record for this (email, role) pair,
	// so an older code can no longer verify once a new one is issued.
	if _, err := u.otpRepo.Replace(ctx, &model.OTP{
		Email:  strings.ToLower(email),
		Code:   code,
		Role:   role,
		UserID: account.ID,
	}); err != nil {
		return err
	}

	// The persisted record outlives a delivery failure: the user may
	// already hold a prior copy, and the caller may retry delivery.
	if err := u.mail.SendHTML([]string{account.Email}, "HMS - Login OTP Verification", otpEmailBody(account.FullName, code, u.cfg.OTPExpiresIn)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

func (u *authUsecase) VerifyLoginOTP(
	ctx context.Context,
	email string,
	role model.Role,
	code, password string,
) (string, *model.Account, error) {
	otp, err := u.otpRepo.FindActive(ctx, strings.ToLower(email), role, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Wrong, expired, superseded and already-used codes are
			// indistinguishable here, so nothing can be enumerated.
			return "", nil, ErrOTPInvalid
		}
		return "", nil, err
	}

	account, err := u.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, err
	}

	// Password check runs after the code match: holding the code alone
	// is never enough to log in.
	if ok, err := security.VerifyPassword(password, account.PasswordHash); err != nil {
		return "", nil, err
	} else if !ok {
		return "", nil, ErrInvalidCredentials
	}

	consumed, err := u.otpRepo.Consume(ctx, otp.ID)
	if err != nil {
		return "", nil, err
	}
	if !consumed {
		return "", nil, ErrOTPInvalid
	}

	token, err := u.issueToken(account)
	if err != nil {
		return "", nil, err
	}

	sanitized := account.Sanitized()
	return token, &sanitized, nil
}

func (u *authUsecase) issueToken(account *model.Account) (string, error) {
	claims := auth.NewAuthClaims(
		account.ID.Hex(),
		account.Email,
		account.Role.String(),
		u.cfg.JWTIssuer,
		u.cfg.JWTExpiresIn,
	)

	return u.jwtAuth.GenerateToken(claims, u.cfg.JWTSecret)
}

// generateOTPCode returns a uniformly random six-digit code in
// [100000, 999999]; codes are never zero-padded up from fewer digits.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
