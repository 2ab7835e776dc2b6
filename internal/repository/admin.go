package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
)

// AdminRepository defines the interface for admin-related database
// operations.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]*model.Admin, error)
	UpdateAdmin(ctx context.Context, id string, params UpdateAdminParams) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id string) (*model.Admin, error)
}

// UpdateAdminParams defines the optional parameters for updating an
// admin. Only the fields that are not nil will be updated.
type UpdateAdminParams struct {
	FullName   *string
	Phone      *string
	Department *string
	Status     *string
}

type adminMongoRepository struct {
	db *mongo.Database
}

func NewAdminMongoRepository(db *mongo.Database) AdminRepository {
	return &adminMongoRepository{db: db}
}

func (r *adminMongoRepository) CreateAdmin(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	result, err := r.db.Collection(adminCollection).InsertOne(ctx, admin)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		admin.ID = objectID
	}

	return admin, nil
}

func (r *adminMongoRepository) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	if err := r.db.Collection(adminCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) ListAdmins(ctx context.Context) ([]*model.Admin, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(adminCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []*model.Admin
	for cursor.Next(ctx) {
		var admin model.Admin
		if err := cursor.Decode(&admin); err != nil {
			return nil, err
		}
		admins = append(admins, &admin)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return admins, nil
}

func (r *adminMongoRepository) UpdateAdmin(
	ctx context.Context,
	id string,
	params UpdateAdminParams,
) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.FullName != nil {
		updateMap["full_name"] = *params.FullName
	}
	if params.Phone != nil {
		updateMap["phone"] = *params.Phone
	}
	if params.Department != nil {
		updateMap["department"] = *params.Department
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}

	if len(updateMap) == 0 {
		return r.GetAdmin(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(adminCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminMongoRepository) DeleteAdmin(ctx context.Context, id string) (*model.Admin, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(adminCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var admin model.Admin
	if err := result.Decode(&admin); err != nil {
		return nil, err
	}

	return &admin, nil
}
