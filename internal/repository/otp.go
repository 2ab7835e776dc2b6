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

// OTPRepository defines the store operations for login OTP records.
type OTPRepository interface {
	// Replace removes any existing record for the OTP's (email, role)
	// pair and inserts the new one, keeping at most one live code per
	// pair.
	Replace(ctx context.Context, otp *model.OTP) (*model.OTP, error)

	// FindActive returns the unverified record matching (email, role,
	// code) that is younger than the TTL. The lookup deliberately does
	// not distinguish wrong code from already-used from never-existed.
	FindActive(ctx context.Context, email string, role model.Role, code string) (*model.OTP, error)

	// Consume flips verified to true, but only if the record is still
	// unverified. Returns false when another request got there first.
	Consume(ctx context.Context, id bson.ObjectID) (bool, error)

	// DeleteExpired removes records older than the TTL. The TTL index
	// does the same server-side; this backs it up for stores where TTL
	// deletion lags behind logical expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}

const otpCollection = "otps"

type otpMongoRepository struct {
	db  *mongo.Database
	ttl time.Duration
}

// NewOTPMongoRepository creates a new MongoDB repository for OTP records
// with a TTL index expiring them ttl after creation.
func NewOTPMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	ttl time.Duration,
) OTPRepository {
	collection := db.Collection(otpCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create OTP indexes")
	}

	return &otpMongoRepository{db: db, ttl: ttl}
}

func (r *otpMongoRepository) Replace(ctx context.Context, otp *model.OTP) (*model.OTP, error) {
	collection := r.db.Collection(otpCollection)

	filter := bson.M{"email": otp.Email, "role": otp.Role}
	if _, err := collection.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}

	now := time.Now()
	otp.CreatedAt = now
	otp.UpdatedAt = now
	otp.Verified = false

	result, err := collection.InsertOne(ctx, otp)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		otp.ID = objectID
	}

	return otp, nil
}

func (r *otpMongoRepository) FindActive(
	ctx context.Context,
	email string,
	role model.Role,
	code string,
) (*model.OTP, error) {
	// The created_at cutoff closes the window between logical expiry and
	// the TTL monitor physically deleting the document.
	filter := bson.M{
		"email":      email,
		"role":       role,
		"code":       code,
		"verified":   false,
		"created_at": bson.M{"$gt": time.Now().Add(-r.ttl)},
	}

	var otp model.OTP
	if err := r.db.Collection(otpCollection).FindOne(ctx, filter).Decode(&otp); err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *otpMongoRepository) Consume(ctx context.Context, id bson.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "verified": false}
	update := bson.M{
		"$set": bson.M{
			"verified":   true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.db.Collection(otpCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

func (r *otpMongoRepository) DeleteExpired(ctx context.Context) (int64, error) {
	filter := bson.M{
		"created_at": bson.M{"$lt": time.Now().Add(-r.ttl)},
	}

	result, err := r.db.Collection(otpCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
