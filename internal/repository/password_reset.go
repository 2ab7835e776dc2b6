package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// PasswordResetRepository defines the store operations for password
// reset records.
type PasswordResetRepository interface {
	// Create inserts a new reset record.
	Create(ctx context.Context, reset *model.PasswordReset) (*model.PasswordReset, error)

	// FindValid returns the unused, unexpired record matching (token,
	// email, role).
	FindValid(ctx context.Context, email string, role model.Role, token string) (*model.PasswordReset, error)

	// Consume flips used to true for a record that is still unused and
	// unexpired, as one conditional write. Returns false when the record
	// was already consumed or has expired; two concurrent submissions of
	// the same code therefore observe exactly one true.
	Consume(ctx context.Context, id bson.ObjectID) (bool, error)

	// DeleteUnused removes all unused records for (email, role).
	DeleteUnused(ctx context.Context, email string, role model.Role) (int64, error)

	// DeleteExpired removes expired records, backing up the TTL index.
	DeleteExpired(ctx context.Context) (int64, error)

	// ListUsed returns recently consumed records, newest first.
	ListUsed(ctx context.Context, limit int64) ([]*model.PasswordReset, error)
}

const passwordResetCollection = "password_resets"

type passwordResetMongoRepository struct {
	db *mongo.Database
}

// NewPasswordResetMongoRepository creates a new MongoDB repository for
// password reset records.
func NewPasswordResetMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PasswordResetRepository {
	collection := db.Collection(passwordResetCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "token", Value: 1}, {Key: "used", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset indexes")
	}

	return &passwordResetMongoRepository{db: db}
}

func (r *passwordResetMongoRepository) Create(
	ctx context.Context,
	reset *model.PasswordReset,
) (*model.PasswordReset, error) {
	now := time.Now()
	reset.CreatedAt = now
	reset.UpdatedAt = now
	reset.Used = false

	result, err := r.db.Collection(passwordResetCollection).InsertOne(ctx, reset)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		reset.ID = objectID
	}

	return reset, nil
}

func (r *passwordResetMongoRepository) FindValid(
	ctx context.Context,
	email string,
	role model.Role,
	token string,
) (*model.PasswordReset, error) {
	filter := bson.M{
		"token":      token,
		"email":      email,
		"role":       role,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var reset model.PasswordReset
	if err := r.db.Collection(passwordResetCollection).FindOne(ctx, filter).Decode(&reset); err != nil {
		return nil, err
	}

	return &reset, nil
}

func (r *passwordResetMongoRepository) Consume(ctx context.Context, id bson.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":        id,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.db.Collection(passwordResetCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

func (r *passwordResetMongoRepository) DeleteUnused(
	ctx context.Context,
	email string,
	role model.Role,
) (int64, error) {
	filter := bson.M{"email": email, "role": role, "used": false}

	result, err := r.db.Collection(passwordResetCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *passwordResetMongoRepository) DeleteExpired(ctx context.Context) (int64, error) {
	filter := bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	}

	result, err := r.db.Collection(passwordResetCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *passwordResetMongoRepository) ListUsed(
	ctx context.Context,
	limit int64,
) ([]*model.PasswordReset, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(passwordResetCollection).Find(ctx, bson.M{"used": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resets []*model.PasswordReset
	for cursor.Next(ctx) {
		var reset model.PasswordReset
		if err := cursor.Decode(&reset); err != nil {
			return nil, err
		}
		resets = append(resets, &reset)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return resets, nil
}
