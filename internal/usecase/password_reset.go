package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/config"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the OTP-based
// password reset flow.
type PasswordResetUsecase interface {
	// RequestReset issues a fresh reset code for (email, role). When no
	// such account exists it still returns nil, so responses never
	// reveal whether an email is registered.
	RequestReset(ctx context.Context, email string, role model.Role) error

	// VerifyResetCode checks a code without consuming it.
	VerifyResetCode(ctx context.Context, email string, role model.Role, code string) (*model.PasswordReset, error)

	// ResetPassword consumes a valid code and overwrites the account's
	// password digest. A given code succeeds at most once, also under
	// concurrent submission.
	ResetPassword(ctx context.Context, email string, role model.Role, code, newPassword string) error

	// History lists recently consumed reset records.
	History(ctx context.Context, limit int64) ([]*model.PasswordReset, error)
}

var (
	ErrResetCodeInvalid = errors.New("invalid or expired reset code")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

const minPasswordLength = 6

type passwordResetUsecase struct {
	accountRepo repository.AccountRepository
	resetRepo   repository.PasswordResetRepository
	mail        EmailSender
	cfg         *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	accountRepo repository.AccountRepository,
	resetRepo repository.PasswordResetRepository,
	mail EmailSender,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		accountRepo: accountRepo,
		resetRepo:   resetRepo,
		mail:        mail,
		cfg:         cfg,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string, role model.Role) error {
	account, err := u.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No record is created and no error surfaced, to prevent
			// account enumeration.
			return nil
		}
		return err
	}

	if _, err := u.resetRepo.DeleteUnused(ctx, strings.ToLower(email), role); err != nil {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	if _, err := u.resetRepo.Create(ctx, &model.PasswordReset{
		Email:     strings.ToLower(email),
		Token:     code,
		Role:      role,
		UserID:    account.ID,
		ExpiresAt: time.Now().Add(u.cfg.ResetExpiresIn),
	}); err != nil {
		return err
	}

	// Unlike the login OTP, a reset delivery failure is surfaced to the
	// caller: the user has no other way to obtain this code.
	if err := u.mail.SendHTML([]string{account.Email}, "HMS - Password Reset Request", resetEmailBody(account.FullName, code, u.cfg.ResetExpiresIn)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

func (u *passwordResetUsecase) VerifyResetCode(
	ctx context.Context,
	email string,
	role model.Role,
	code string,
) (*model.PasswordReset, error) {
	reset, err := u.resetRepo.FindValid(ctx, strings.ToLower(email), role, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResetCodeInvalid
		}
		return nil, err
	}

	return reset, nil
}

func (u *passwordResetUsecase) ResetPassword(
	ctx context.Context,
	email string,
	role model.Role,
	code, newPassword string,
) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	reset, err := u.VerifyResetCode(ctx, email, role, code)
	if err != nil {
		return err
	}

	// Consume before writing the new digest: the conditional update on
	// used=false is what keeps two concurrent submissions of the same
	// code from both succeeding.
	consumed, err := u.resetRepo.Consume(ctx, reset.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrResetCodeInvalid
	}

	hash, err := security.HashPassword(newPassword, security.ResetHashCost)
	if err != nil {
		return err
	}

	if err := u.accountRepo.UpdatePasswordHash(ctx, role, reset.UserID.Hex(), hash); err != nil {
		return err
	}

	return nil
}

func (u *passwordResetUsecase) History(ctx context.Context, limit int64) ([]*model.PasswordReset, error) {
	if limit <= 0 {
		limit = 50
	}

	return u.resetRepo.ListUsed(ctx, limit)
}
