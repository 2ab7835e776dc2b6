package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// ComplaintRepository defines the interface for complaint-related
// database operations.
type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error)
	GetComplaint(ctx context.Context, id string) (*model.Complaint, error)
	ListComplaints(ctx context.Context) ([]*model.Complaint, error)
	ListComplaintsByStudent(ctx context.Context, studentID bson.ObjectID) ([]*model.Complaint, error)
	UpdateComplaint(ctx context.Context, id string, params UpdateComplaintParams) (*model.Complaint, error)
}

// UpdateComplaintParams defines the optional parameters for updating a
// complaint. Only the fields that are not nil will be updated.
type UpdateComplaintParams struct {
	Status        *string
	AdminResponse *string
	AssignedTo    *bson.ObjectID
	ResolvedAt    *time.Time
}

const complaintCollection = "complaints"

type complaintMongoRepository struct {
	db *mongo.Database
}

func NewComplaintMongoRepository(db *mongo.Database) ComplaintRepository {
	return &complaintMongoRepository{db: db}
}

func (r *complaintMongoRepository) CreateComplaint(
	ctx context.Context,
	complaint *model.Complaint,
) (*model.Complaint, error) {
	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	result, err := r.db.Collection(complaintCollection).InsertOne(ctx, complaint)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		complaint.ID = objectID
	}

	return complaint, nil
}

func (r *complaintMongoRepository) GetComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var complaint model.Complaint
	if err := r.db.Collection(complaintCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

func (r *complaintMongoRepository) ListComplaints(ctx context.Context) ([]*model.Complaint, error) {
	return r.list(ctx, bson.M{})
}

func (r *complaintMongoRepository) ListComplaintsByStudent(
	ctx context.Context,
	studentID bson.ObjectID,
) ([]*model.Complaint, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *complaintMongoRepository) list(ctx context.Context, filter bson.M) ([]*model.Complaint, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(complaintCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []*model.Complaint
	for cursor.Next(ctx) {
		var complaint model.Complaint
		if err := cursor.Decode(&complaint); err != nil {
			return nil, err
		}
		complaints = append(complaints, &complaint)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *complaintMongoRepository) UpdateComplaint(
	ctx context.Context,
	id string,
	params UpdateComplaintParams,
) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.AdminResponse != nil {
		updateMap["admin_response"] = *params.AdminResponse
	}
	if params.AssignedTo != nil {
		updateMap["assigned_to"] = *params.AssignedTo
	}
	if params.ResolvedAt != nil {
		updateMap["resolved_at"] = *params.ResolvedAt
	}

	if len(updateMap) == 0 {
		return r.GetComplaint(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(complaintCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var complaint model.Complaint
	if err := result.Decode(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}
