package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// StaffRepository covers the two staff kinds whose documents are exactly
// the common account shape: wardens and security. Creation and listing
// go through the same role-partition map the account repository uses.
type StaffRepository interface {
	CreateStaff(ctx context.Context, role model.Role, account *model.Account) (*model.Account, error)
	ListStaff(ctx context.Context, role model.Role) ([]*model.Account, error)
}

type staffMongoRepository struct {
	partitions map[model.Role]*mongo.Collection
}

func NewStaffMongoRepository(db *mongo.Database) StaffRepository {
	return &staffMongoRepository{
		partitions: map[model.Role]*mongo.Collection{
			model.RoleWarden:   db.Collection(wardenCollection),
			model.RoleSecurity: db.Collection(securityCollection),
		},
	}
}

func (r *staffMongoRepository) CreateStaff(
	ctx context.Context,
	role model.Role,
	account *model.Account,
) (*model.Account, error) {
	collection, ok := r.partitions[role]
	if !ok {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	result, err := collection.InsertOne(ctx, account)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		account.ID = objectID
	}

	return account, nil
}

func (r *staffMongoRepository) ListStaff(ctx context.Context, role model.Role) ([]*model.Account, error) {
	collection, ok := r.partitions[role]
	if !ok {
		return nil, ErrInvalidRole
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.Account
	for cursor.Next(ctx) {
		var account model.Account
		if err := cursor.Decode(&account); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}
