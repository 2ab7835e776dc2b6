package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/shared/security"
)

// RegistrationUsecase creates accounts of all four kinds. Each creation
// hashes the password, stores the account in its role partition and
// emails the credentials to the new account holder.
type RegistrationUsecase interface {
	RegisterAdmin(ctx context.Context, params RegisterAdminParams) (*model.Admin, error)
	RegisterStaff(ctx context.Context, role model.Role, params RegisterStaffParams) (*model.Account, error)
	RegisterStudent(ctx context.Context, params RegisterStudentParams) (*model.Student, error)
}

// RegisterAdminParams defines the parameters for creating an admin.
type RegisterAdminParams struct {
	FullName   string
	Email      string
	Phone      string
	Password   string
	Department string
}

// RegisterStaffParams defines the parameters for creating a warden or a
// security account.
type RegisterStaffParams struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// RegisterStudentParams defines the parameters for creating a student.
type RegisterStudentParams struct {
	FullName      string
	Email         string
	Phone         string
	Password      string
	StudentID     string
	Course        string
	Year          int
	GuardianName  string
	GuardianPhone string
	Address       string
	DateOfBirth   time.Time
}

var ErrAccountExists = errors.New("account already exists")

type registrationUsecase struct {
	adminRepo   repository.AdminRepository
	staffRepo   repository.StaffRepository
	studentRepo repository.StudentRepository
	mail        EmailSender
	logger      *zerolog.Logger
}

func NewRegistrationUsecase(
	adminRepo repository.AdminRepository,
	staffRepo repository.StaffRepository,
	studentRepo repository.StudentRepository,
	mail EmailSender,
	logger *zerolog.Logger,
) RegistrationUsecase {
	return &registrationUsecase{
		adminRepo:   adminRepo,
		staffRepo:   staffRepo,
		studentRepo: studentRepo,
		mail:        mail,
		logger:      logger,
	}
}

func (u *registrationUsecase) RegisterAdmin(
	ctx context.Context,
	params RegisterAdminParams,
) (*model.Admin, error) {
	account, err := newAccount(params.FullName, params.Email, params.Phone, params.Password, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	department := params.Department
	if department == "" {
		department = "Administration"
	}

	admin, err := u.adminRepo.CreateAdmin(ctx, &model.Admin{
		Account:    account,
		Department: department,
		JoinDate:   time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	u.sendCredentials(admin.FullName, admin.Email, params.Password, model.RoleAdmin)

	admin.Account = admin.Account.Sanitized()
	return admin, nil
}

func (u *registrationUsecase) RegisterStaff(
	ctx context.Context,
	role model.Role,
	params RegisterStaffParams,
) (*model.Account, error) {
	account, err := newAccount(params.FullName, params.Email, params.Phone, params.Password, role)
	if err != nil {
		return nil, err
	}

	created, err := u.staffRepo.CreateStaff(ctx, role, &account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	u.sendCredentials(created.FullName, created.Email, params.Password, role)

	sanitized := created.Sanitized()
	return &sanitized, nil
}

func (u *registrationUsecase) RegisterStudent(
	ctx context.Context,
	params RegisterStudentParams,
) (*model.Student, error) {
	account, err := newAccount(params.FullName, params.Email, params.Phone, params.Password, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	student, err := u.studentRepo.CreateStudent(ctx, &model.Student{
		Account:       account,
		StudentID:     params.StudentID,
		Course:        params.Course,
		Year:          params.Year,
		GuardianName:  params.GuardianName,
		GuardianPhone: params.GuardianPhone,
		Address:       params.Address,
		DateOfBirth:   params.DateOfBirth,
		AdmissionDate: time.Now(),
		FeeStatus:     model.FeeStatusPending,
		FeeDueDate:    time.Now().Add(30 * 24 * time.Hour),
		FeePayments:   []model.FeePayment{},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	u.sendCredentials(student.FullName, student.Email, params.Password, model.RoleStudent)

	student.Account = student.Account.Sanitized()
	return student, nil
}

// sendCredentials emails login credentials off the request path.
// Delivery failure is logged, never surfaced: the account has already
// been created and registration must not fail because of the sink.
func (u *registrationUsecase) sendCredentials(fullName, email, password string, role model.Role) {
	go func() {
		subject := "HMS - Your " + titleCase(role.String()) + " Account Credentials"
		if err := u.mail.SendHTML([]string{email}, subject, credentialsEmailBody(fullName, email, password, role)); err != nil {
			u.logger.Error().Err(err).Str("email", email).Msg("failed to send credentials email")
		}
	}()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newAccount(fullName, email, phone, password string, role model.Role) (model.Account, error) {
	hash, err := security.HashPassword(password, security.HashCost)
	if err != nil {
		return model.Account{}, err
	}

	return model.Account{
		FullName:     fullName,
		Email:        strings.ToLower(email),
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		Status:       model.AccountStatusActive,
	}, nil
}
