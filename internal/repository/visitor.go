package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// VisitorRepository defines the interface for visitor-related database
// operations.
type VisitorRepository interface {
	CreateVisitor(ctx context.Context, visitor *model.Visitor) (*model.Visitor, error)
	GetVisitor(ctx context.Context, id string) (*model.Visitor, error)
	ListVisitors(ctx context.Context) ([]*model.Visitor, error)
	ListVisitorsByStudent(ctx context.Context, studentID bson.ObjectID) ([]*model.Visitor, error)

	// CheckOut stamps the check-out time and flips the status, but only
	// for a visitor that is still checked in. Returns false when the
	// visitor was already checked out.
	CheckOut(ctx context.Context, id string) (bool, error)
}

const visitorCollection = "visitors"

type visitorMongoRepository struct {
	db *mongo.Database
}

func NewVisitorMongoRepository(db *mongo.Database) VisitorRepository {
	return &visitorMongoRepository{db: db}
}

func (r *visitorMongoRepository) CreateVisitor(
	ctx context.Context,
	visitor *model.Visitor,
) (*model.Visitor, error) {
	now := time.Now()
	visitor.CreatedAt = now
	visitor.UpdatedAt = now

	result, err := r.db.Collection(visitorCollection).InsertOne(ctx, visitor)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		visitor.ID = objectID
	}

	return visitor, nil
}

func (r *visitorMongoRepository) GetVisitor(ctx context.Context, id string) (*model.Visitor, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var visitor model.Visitor
	if err := r.db.Collection(visitorCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&visitor); err != nil {
		return nil, err
	}

	return &visitor, nil
}

func (r *visitorMongoRepository) ListVisitors(ctx context.Context) ([]*model.Visitor, error) {
	return r.list(ctx, bson.M{})
}

func (r *visitorMongoRepository) ListVisitorsByStudent(
	ctx context.Context,
	studentID bson.ObjectID,
) ([]*model.Visitor, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *visitorMongoRepository) list(ctx context.Context, filter bson.M) ([]*model.Visitor, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "check_in_time", Value: -1}})

	cursor, err := r.db.Collection(visitorCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var visitors []*model.Visitor
	for cursor.Next(ctx) {
		var visitor model.Visitor
		if err := cursor.Decode(&visitor); err != nil {
			return nil, err
		}
		visitors = append(visitors, &visitor)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return visitors, nil
}

func (r *visitorMongoRepository) CheckOut(ctx context.Context, id string) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	now := time.Now()
	result, err := r.db.Collection(visitorCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": model.VisitorStatusCheckedIn},
		bson.M{"$set": bson.M{
			"status":         model.VisitorStatusCheckedOut,
			"check_out_time": now,
			"updated_at":     now,
		}},
	)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}
