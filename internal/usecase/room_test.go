package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

type roomFixture struct {
	usecase  RoomUsecase
	rooms    *fakeRoomRepo
	students *fakeStudentRepo
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()
	rooms := newFakeRoomRepo()
	students := newFakeStudentRepo()
	return &roomFixture{
		usecase:  NewRoomUsecase(rooms, students),
		rooms:    rooms,
		students: students,
	}
}

func (f *roomFixture) addStudent(t *testing.T) *model.Student {
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

func (f *roomFixture) addRoom(t *testing.T, number string, capacity int) *model.Room {
	t.Helper()
	room, err := f.rooms.CreateRoom(context.Background(), &model.Room{
		RoomNumber: number,
		Capacity:   capacity,
		Status:     model.RoomStatusAvailable,
	})
	require.NoError(t, err)
	return room
}

func TestAssignRoom_HappyPath(t *testing.T) {
	f := newRoomFixture(t)
	student := f.addStudent(t)
	room := f.addRoom(t, "101", 2)

	require.NoError(t, f.usecase.AssignRoom(context.Background(), student.ID.Hex(), room.ID.Hex()))

	updated, err := f.students.GetStudent(context.Background(), student.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, updated.RoomID)
	require.Equal(t, room.ID, *updated.RoomID)

	got, err := f.rooms.GetRoom(context.Background(), room.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, 1, got.CurrentOccupancy)
	require.Contains(t, got.Students, student.ID)
}

func TestAssignRoom_FullRoomRejected(t *testing.T) {
	f := newRoomFixture(t)
	student := f.addStudent(t)
	room := f.addRoom(t, "101", 1)
	require.NoError(t, f.rooms.AddOccupant(context.Background(), room.ID, bson.NewObjectID()))

	err := f.usecase.AssignRoom(context.Background(), student.ID.Hex(), room.ID.Hex())
	require.ErrorIs(t, err, ErrRoomFull)
}

func TestAssignRoom_ReleasesPreviousRoom(t *testing.T) {
	f := newRoomFixture(t)
	student := f.addStudent(t)
	first := f.addRoom(t, "101", 2)
	second := f.addRoom(t, "102", 2)

	require.NoError(t, f.usecase.AssignRoom(context.Background(), student.ID.Hex(), first.ID.Hex()))
	require.NoError(t, f.usecase.AssignRoom(context.Background(), student.ID.Hex(), second.ID.Hex()))

	gotFirst, err := f.rooms.GetRoom(context.Background(), first.ID.Hex())
	require.NoError(t, err)
	require.Zero(t, gotFirst.CurrentOccupancy)
	require.NotContains(t, gotFirst.Students, student.ID)

	gotSecond, err := f.rooms.GetRoom(context.Background(), second.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, 1, gotSecond.CurrentOccupancy)
}

func TestAssignRoom_UnknownStudent(t *testing.T) {
	f := newRoomFixture(t)
	room := f.addRoom(t, "101", 2)

	err := f.usecase.AssignRoom(context.Background(), bson.NewObjectID().Hex(), room.ID.Hex())
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAssignRoom_UnknownRoom(t *testing.T) {
	f := newRoomFixture(t)
	student := f.addStudent(t)

	err := f.usecase.AssignRoom(context.Background(), student.ID.Hex(), bson.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrRoomNotFound)
}
