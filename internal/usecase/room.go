package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
)

// RoomUsecase defines the business logic around room occupancy.
type RoomUsecase interface {
	// AssignRoom moves a student into a room, releasing the previous
	// room first and keeping the occupancy counters in step.
	AssignRoom(ctx context.Context, studentID, roomID string) error
}

var (
	ErrRoomFull     = errors.New("room is at full capacity")
	ErrRoomNotFound = errors.New("room not found")
)

type roomUsecase struct {
	roomRepo    repository.RoomRepository
	studentRepo repository.StudentRepository
}

func NewRoomUsecase(
	roomRepo repository.RoomRepository,
	studentRepo repository.StudentRepository,
) RoomUsecase {
	return &roomUsecase{
		roomRepo:    roomRepo,
		studentRepo: studentRepo,
	}
}

func (u *roomUsecase) AssignRoom(ctx context.Context, studentID, roomID string) error {
	student, err := u.studentRepo.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	room, err := u.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrRoomNotFound
		}
		return err
	}

	if room.CurrentOccupancy >= room.Capacity {
		return ErrRoomFull
	}

	if student.RoomID != nil {
		if err := u.roomRepo.RemoveOccupant(ctx, *student.RoomID, student.ID); err != nil {
			return err
		}
	}

	if err := u.roomRepo.AddOccupant(ctx, room.ID, student.ID); err != nil {
		return err
	}

	if _, err := u.studentRepo.UpdateStudent(ctx, studentID, repository.UpdateStudentParams{
		RoomID: &room.ID,
	}); err != nil {
		return err
	}

	return nil
}
