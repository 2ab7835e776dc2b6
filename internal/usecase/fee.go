package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
)

// FeeUsecase defines the business logic for a student's fee ledger.
type FeeUsecase interface {
	// GetFeeSummary derives the fee totals for a student, reconciling a
	// stale stored status against the payment ledger.
	GetFeeSummary(ctx context.Context, studentID string) (*FeeSummary, error)

	// PayFees records a payment against the remaining amount.
	PayFees(ctx context.Context, studentID string, params PayFeesParams) (*model.FeePayment, error)
}

// FeeSummary is the derived view of a student's fees.
type FeeSummary struct {
	Amount    float64            `json:"amount"`
	TotalPaid float64            `json:"totalPaid"`
	Remaining float64            `json:"remainingAmount"`
	Status    string             `json:"status"`
	DueDate   time.Time          `json:"dueDate"`
	Payments  []model.FeePayment `json:"payments"`
}

// PayFeesParams defines the parameters for recording a fee payment.
type PayFeesParams struct {
	Amount        float64
	PaymentMethod string
}

var (
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than 0")
	ErrPaymentExceedsDue    = errors.New("payment amount cannot exceed remaining amount")
	ErrFeesAlreadyPaid      = errors.New("fees are already fully paid")
)

type feeUsecase struct {
	studentRepo repository.StudentRepository
	roomRepo    repository.RoomRepository
}

func NewFeeUsecase(
	studentRepo repository.StudentRepository,
	roomRepo repository.RoomRepository,
) FeeUsecase {
	return &feeUsecase{
		studentRepo: studentRepo,
		roomRepo:    roomRepo,
	}
}

func (u *feeUsecase) GetFeeSummary(ctx context.Context, studentID string) (*FeeSummary, error) {
	student, err := u.studentRepo.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	amount, err := u.feeAmount(ctx, student)
	if err != nil {
		return nil, err
	}

	totalPaid := student.TotalPaid()
	remaining := amount - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	status := model.FeeStatusPending
	switch {
	case amount > 0 && totalPaid >= amount:
		status = model.FeeStatusPaid
	case totalPaid > 0:
		status = model.FeeStatusPartial
	}

	// Reconcile a stale stored status with what the ledger says.
	if status != student.FeeStatus {
		if _, err := u.studentRepo.UpdateStudent(ctx, studentID, repository.UpdateStudentParams{
			FeeStatus: &status,
		}); err != nil {
			return nil, err
		}
	}

	payments := student.FeePayments
	if payments == nil {
		payments = []model.FeePayment{}
	}

	return &FeeSummary{
		Amount:    amount,
		TotalPaid: totalPaid,
		Remaining: remaining,
		Status:    status,
		DueDate:   student.FeeDueDate,
		Payments:  payments,
	}, nil
}

func (u *feeUsecase) PayFees(
	ctx context.Context,
	studentID string,
	params PayFeesParams,
) (*model.FeePayment, error) {
	student, err := u.studentRepo.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	amount, err := u.feeAmount(ctx, student)
	if err != nil {
		return nil, err
	}

	remaining := amount - student.TotalPaid()

	if params.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if remaining <= 0 {
		return nil, ErrFeesAlreadyPaid
	}
	if params.Amount > remaining {
		return nil, ErrPaymentExceedsDue
	}

	method := params.PaymentMethod
	if method == "" {
		method = "online"
	}

	payment := model.FeePayment{
		Amount:        params.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: method,
		TransactionID: uuid.NewString(),
		Status:        "completed",
	}

	if err := u.studentRepo.AddFeePayment(ctx, studentID, payment); err != nil {
		return nil, err
	}

	status := model.FeeStatusPartial
	if student.TotalPaid()+params.Amount >= amount {
		status = model.FeeStatusPaid
	}
	if _, err := u.studentRepo.UpdateStudent(ctx, studentID, repository.UpdateStudentParams{
		FeeStatus: &status,
	}); err != nil {
		return nil, err
	}

	return &payment, nil
}

// feeAmount resolves the amount owed: the student's own fee amount, or
// the room rent when no amount has been set.
func (u *feeUsecase) feeAmount(ctx context.Context, student *model.Student) (float64, error) {
	if student.FeeAmount > 0 {
		return student.FeeAmount, nil
	}
	if student.RoomID == nil {
		return 0, nil
	}

	room, err := u.roomRepo.GetRoom(ctx, student.RoomID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	return room.Rent, nil
}
