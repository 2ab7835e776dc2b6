package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// AccountRepository is the single credential capability shared by all
// four account kinds: look an account up by email or id within a role's
// partition, and overwrite its password digest. Role-specific profile
// fields live in the kind repositories; this one only ever decodes the
// common identity.
type AccountRepository interface {
	// FindByEmail returns the account for (email, role), digest included.
	// The email is lowercased before matching.
	FindByEmail(ctx context.Context, role model.Role, email string) (*model.Account, error)

	// FindByID returns the account by id with the password digest
	// excluded from the projection.
	FindByID(ctx context.Context, role model.Role, id string) (*model.Account, error)

	// UpdatePasswordHash overwrites the stored password digest.
	UpdatePasswordHash(ctx context.Context, role model.Role, id string, hash string) error
}

// ErrInvalidRole reports a role tag outside the four known kinds.
var ErrInvalidRole = errors.New("invalid role")

const (
	adminCollection    = "admins"
	wardenCollection   = "wardens"
	securityCollection = "securities"
	studentCollection  = "students"
)

type accountMongoRepository struct {
	partitions map[model.Role]*mongo.Collection
}

// NewAccountMongoRepository creates the account repository and resolves
// the role-to-collection partition map once. Unique email and phone
// indexes are ensured on every partition.
func NewAccountMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AccountRepository {
	partitions := map[model.Role]*mongo.Collection{
		model.RoleAdmin:    db.Collection(adminCollection),
		model.RoleWarden:   db.Collection(wardenCollection),
		model.RoleSecurity: db.Collection(securityCollection),
		model.RoleStudent:  db.Collection(studentCollection),
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for role, collection := range partitions {
		if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
			logger.Fatal().Err(err).Str("role", role.String()).Msg("failed to create account indexes")
		}
	}

	return &accountMongoRepository{partitions: partitions}
}

func (r *accountMongoRepository) partition(role model.Role) (*mongo.Collection, error) {
	collection, ok := r.partitions[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	return collection, nil
}

func (r *accountMongoRepository) FindByEmail(
	ctx context.Context,
	role model.Role,
	email string,
) (*model.Account, error) {
	collection, err := r.partition(role)
	if err != nil {
		return nil, err
	}

	result := collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) FindByID(
	ctx context.Context,
	role model.Role,
	id string,
) (*model.Account, error) {
	collection, err := r.partition(role)
	if err != nil {
		return nil, err
	}

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := collection.FindOne(
		ctx,
		bson.M{"_id": objectID},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) UpdatePasswordHash(
	ctx context.Context,
	role model.Role,
	id string,
	hash string,
) error {
	collection, err := r.partition(role)
	if err != nil {
		return err
	}

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"password": hash, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
