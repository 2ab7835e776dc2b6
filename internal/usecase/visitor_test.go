package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

type visitorFixture struct {
	usecase  VisitorUsecase
	visitors *fakeVisitorRepo
	students *fakeStudentRepo
}

func newVisitorFixture(t *testing.T) *visitorFixture {
	t.Helper()
	visitors := newFakeVisitorRepo()
	students := newFakeStudentRepo()
	return &visitorFixture{
		usecase:  NewVisitorUsecase(visitors, students),
		visitors: visitors,
		students: students,
	}
}

func (f *visitorFixture) addStudent(t *testing.T) *model.Student {
	t.Helper()
	student, err := f.students.CreateStudent(context.Background(), &model.Student{
		Account: model.Account{
			FullName: "Test Student",
			Email:    "student@example.com",
			Role:     model.RoleStudent,
		},
		StudentID: "S-1001",
	})
	require.NoError(t, err)
	return student
}

func TestCheckIn_HappyPath(t *testing.T) {
	f := newVisitorFixture(t)
	student := f.addStudent(t)
	guard := bson.NewObjectID()

	visitor, err := f.usecase.CheckIn(context.Background(), CheckInParams{
		VisitorName:  "Visiting Parent",
		VisitorPhone: "8888888888",
		StudentID:    student.ID.Hex(),
		Purpose:      "family visit",
		ApprovedBy:   guard,
	})
	require.NoError(t, err)
	require.Equal(t, model.VisitorStatusCheckedIn, visitor.Status)
	require.NotEmpty(t, visitor.PassID)
	require.Equal(t, student.ID, visitor.StudentID)
	require.NotNil(t, visitor.ApprovedBy)
	require.Equal(t, guard, *visitor.ApprovedBy)
	require.False(t, visitor.CheckInTime.IsZero())
}

func TestCheckIn_UnknownStudent(t *testing.T) {
	f := newVisitorFixture(t)

	_, err := f.usecase.CheckIn(context.Background(), CheckInParams{
		VisitorName: "Visiting Parent",
		StudentID:   bson.NewObjectID().Hex(),
	})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCheckOut_FlipsStatusOnce(t *testing.T) {
	f := newVisitorFixture(t)
	student := f.addStudent(t)

	visitor, err := f.usecase.CheckIn(context.Background(), CheckInParams{
		VisitorName: "Visiting Parent",
		StudentID:   student.ID.Hex(),
		ApprovedBy:  bson.NewObjectID(),
	})
	require.NoError(t, err)

	checkedOut, err := f.usecase.CheckOut(context.Background(), visitor.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, model.VisitorStatusCheckedOut, checkedOut.Status)
	require.NotNil(t, checkedOut.CheckOutTime)

	_, err = f.usecase.CheckOut(context.Background(), visitor.ID.Hex())
	require.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckOut_UnknownVisitor(t *testing.T) {
	f := newVisitorFixture(t)

	_, err := f.usecase.CheckOut(context.Background(), bson.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrVisitorNotFound)
}
