package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// StudentRepository defines the interface for student-related database
// operations beyond the shared account capability.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	ListStudents(ctx context.Context, params FilterStudentsParams) ([]*model.Student, error)
	UpdateStudent(ctx context.Context, id string, params UpdateStudentParams) (*model.Student, error)
	AddFeePayment(ctx context.Context, id string, payment model.FeePayment) error
}

// UpdateStudentParams defines the optional parameters for updating a
// student. Only the fields that are not nil will be updated.
type UpdateStudentParams struct {
	RoomID    *bson.ObjectID
	FeeStatus *string
	FeeAmount *float64
	Status    *string
}

// FilterStudentsParams defines the parameters for filtering students.
type FilterStudentsParams struct {
	StudentID *string
	Email     *string
	Course    *string
	Limit     int64
}

type studentMongoRepository struct {
	db *mongo.Database
}

// NewStudentMongoRepository creates a new MongoDB repository for
// students. Unique indexes for the collection are owned by the account
// repository, which spans all four partitions.
func NewStudentMongoRepository(db *mongo.Database) StudentRepository {
	return &studentMongoRepository{db: db}
}

func (r *studentMongoRepository) CreateStudent(
	ctx context.Context,
	student *model.Student,
) (*model.Student, error) {
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	result, err := r.db.Collection(studentCollection).InsertOne(ctx, student)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		student.ID = objectID
	}

	return student, nil
}

func (r *studentMongoRepository) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var student model.Student
	if err := r.db.Collection(studentCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) ListStudents(
	ctx context.Context,
	params FilterStudentsParams,
) ([]*model.Student, error) {
	filter := bson.M{}
	if params.StudentID != nil {
		filter["student_id"] = *params.StudentID
	}
	if params.Email != nil {
		filter["email"] = *params.Email
	}
	if params.Course != nil {
		filter["course"] = *params.Course
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}

	cursor, err := r.db.Collection(studentCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	for cursor.Next(ctx) {
		var student model.Student
		if err := cursor.Decode(&student); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentMongoRepository) UpdateStudent(
	ctx context.Context,
	id string,
	params UpdateStudentParams,
) (*model.Student, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.RoomID != nil {
		updateMap["room_id"] = *params.RoomID
	}
	if params.FeeStatus != nil {
		updateMap["fee_status"] = *params.FeeStatus
	}
	if params.FeeAmount != nil {
		updateMap["fee_amount"] = *params.FeeAmount
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}

	if len(updateMap) == 0 {
		return r.GetStudent(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(studentCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) AddFeePayment(
	ctx context.Context,
	id string,
	payment model.FeePayment,
) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(studentCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$push": bson.M{"fee_payments": payment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
