package usecase

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/hostel-management-api/internal/config"
	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/shared/auth"
	"github.com/vasapolrittideah/hostel-management-api/shared/security"
)

var codePattern = regexp.MustCompile(`\d{6}`)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTIssuer:      "hostel-management-api",
		JWTExpiresIn:   time.Hour,
		OTPExpiresIn:   10 * time.Minute,
		ResetExpiresIn: 10 * time.Minute,
	}
}

func newTestAccount(t *testing.T, role model.Role, email, password string) *model.Account {
	t.Helper()
	hash, err := security.HashPassword(password, security.HashCost)
	require.NoError(t, err)
	return &model.Account{
		FullName:     "Test User",
		Email:        email,
		Phone:        "9999999999",
		PasswordHash: hash,
		Role:         role,
		Status:       model.AccountStatusActive,
	}
}

type authFixture struct {
	usecase  AuthUsecase
	accounts *fakeAccountRepo
	otps     *fakeOTPRepo
	mail     *fakeMailer
	cfg      *config.Config
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := testConfig()
	accounts := newFakeAccountRepo()
	otps := newFakeOTPRepo(cfg.OTPExpiresIn)
	mail := &fakeMailer{}
	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTIssuer, cfg.JWTIssuer)

	return &authFixture{
		usecase:  NewAuthUsecase(accounts, otps, jwtAuth, mail, cfg),
		accounts: accounts,
		otps:     otps,
		mail:     mail,
		cfg:      cfg,
	}
}

func TestCheckUser_StripsPasswordDigest(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	account, err := f.usecase.CheckUser(context.Background(), "student@example.com", model.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, "student@example.com", account.Email)
	require.Empty(t, account.PasswordHash)
}

func TestCheckUser_UnknownAccount(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.usecase.CheckUser(context.Background(), "nobody@example.com", model.RoleStudent)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCheckUser_RolePartitionsAreDisjoint(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	_, err := f.usecase.CheckUser(context.Background(), "student@example.com", model.RoleAdmin)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleAdmin, "admin@example.com", "secret123"))

	_, _, err := f.usecase.Login(context.Background(), "admin@example.com", model.RoleAdmin, "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleAdmin, "admin@example.com", "secret123"))

	token, account, err := f.usecase.Login(context.Background(), "admin@example.com", model.RoleAdmin, "secret123")
	require.NoError(t, err)
	require.Empty(t, account.PasswordHash)

	jwtAuth := auth.NewJWTAuthenticator(f.cfg.JWTIssuer, f.cfg.JWTIssuer)
	claims := &auth.AuthClaims{}
	_, err = jwtAuth.ValidateTokenWithClaims(token, f.cfg.JWTSecret, claims)
	require.NoError(t, err)
	require.Equal(t, account.ID.Hex(), claims.UserID)
	require.Equal(t, "admin", claims.Role)
}

func TestRequestLoginOTP_UnknownAccount(t *testing.T) {
	f := newAuthFixture(t)

	err := f.usecase.RequestLoginOTP(context.Background(), "nobody@example.com", model.RoleStudent)
	require.ErrorIs(t, err, ErrAccountNotFound)
	require.Zero(t, f.otps.count())
}

func TestRequestLoginOTP_DeliveryFailureKeepsRecord(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))
	f.mail.failed = true

	err := f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent)
	require.ErrorIs(t, err, ErrDeliveryFailed)

	// The code was persisted before delivery was attempted.
	code := codePattern.FindString(f.mail.lastBody())
	require.Len(t, code, 6)
	_, _, err = f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, code, "secret123")
	require.NoError(t, err)
}

func TestVerifyLoginOTP_HappyPath(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleWarden, "warden@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "warden@example.com", model.RoleWarden))
	code := codePattern.FindString(f.mail.lastBody())
	require.Len(t, code, 6)

	token, account, err := f.usecase.VerifyLoginOTP(context.Background(), "warden@example.com", model.RoleWarden, code, "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Empty(t, account.PasswordHash)
	require.Equal(t, model.RoleWarden, account.Role)
}

func TestVerifyLoginOTP_SingleUse(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent))
	code := codePattern.FindString(f.mail.lastBody())

	_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, code, "secret123")
	require.NoError(t, err)

	_, _, err = f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, code, "secret123")
	require.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyLoginOTP_NewRequestSupersedesOldCode(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent))
	first := codePattern.FindString(f.mail.lastBody())

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent))
	second := codePattern.FindString(f.mail.lastBody())

	if first != second {
		_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, first, "secret123")
		require.ErrorIs(t, err, ErrOTPInvalid)
	}

	_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, second, "secret123")
	require.NoError(t, err)
}

func TestVerifyLoginOTP_CodeAloneIsNotEnough(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent))
	code := codePattern.FindString(f.mail.lastBody())

	_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, code, "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// The failed attempt must not consume the code.
	_, _, err = f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, code, "secret123")
	require.NoError(t, err)
}

func TestVerifyLoginOTP_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "student@example.com", model.RoleStudent))

	_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "student@example.com", model.RoleStudent, "000000", "secret123")
	require.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyLoginOTP_EmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.add(newTestAccount(t, model.RoleStudent, "student@example.com", "secret123"))

	require.NoError(t, f.usecase.RequestLoginOTP(context.Background(), "Student@Example.COM", model.RoleStudent))
	code := codePattern.FindString(f.mail.lastBody())

	_, _, err := f.usecase.VerifyLoginOTP(context.Background(), "STUDENT@example.com", model.RoleStudent, code, "secret123")
	require.NoError(t, err)
}

func TestGenerateOTPCode_SixDigitRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
