package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
)

// VisitorUsecase defines the business logic for gate check-in and
// check-out of visitors.
type VisitorUsecase interface {
	CheckIn(ctx context.Context, params CheckInParams) (*model.Visitor, error)
	CheckOut(ctx context.Context, visitorID string) (*model.Visitor, error)
}

// CheckInParams defines the parameters for admitting a visitor.
type CheckInParams struct {
	VisitorName  string
	VisitorPhone string
	StudentID    string
	Purpose      string
	ApprovedBy   bson.ObjectID
}

var (
	ErrVisitorNotFound   = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor has already checked out")
)

type visitorUsecase struct {
	visitorRepo repository.VisitorRepository
	studentRepo repository.StudentRepository
}

func NewVisitorUsecase(
	visitorRepo repository.VisitorRepository,
	studentRepo repository.StudentRepository,
) VisitorUsecase {
	return &visitorUsecase{
		visitorRepo: visitorRepo,
		studentRepo: studentRepo,
	}
}

func (u *visitorUsecase) CheckIn(ctx context.Context, params CheckInParams) (*model.Visitor, error) {
	student, err := u.studentRepo.GetStudent(ctx, params.StudentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	approvedBy := params.ApprovedBy
	visitor, err := u.visitorRepo.CreateVisitor(ctx, &model.Visitor{
		PassID:       uuid.NewString(),
		VisitorName:  params.VisitorName,
		VisitorPhone: params.VisitorPhone,
		StudentID:    student.ID,
		Purpose:      params.Purpose,
		CheckInTime:  time.Now(),
		Status:       model.VisitorStatusCheckedIn,
		ApprovedBy:   &approvedBy,
	})
	if err != nil {
		return nil, err
	}

	return visitor, nil
}

func (u *visitorUsecase) CheckOut(ctx context.Context, visitorID string) (*model.Visitor, error) {
	done, err := u.visitorRepo.CheckOut(ctx, visitorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	visitor, err := u.visitorRepo.GetVisitor(ctx, visitorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	if !done {
		return nil, ErrAlreadyCheckedOut
	}

	return visitor, nil
}
