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

// RoomRepository defines the interface for room-related database
// operations.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *model.Room) (*model.Room, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	ListAvailableRooms(ctx context.Context) ([]*model.Room, error)
	UpdateRoom(ctx context.Context, id string, params UpdateRoomParams) (*model.Room, error)

	// AddOccupant pushes a student onto the room and increments the
	// occupancy counter in one write.
	AddOccupant(ctx context.Context, roomID, studentID bson.ObjectID) error

	// RemoveOccupant pulls a student from the room and decrements the
	// occupancy counter in one write.
	RemoveOccupant(ctx context.Context, roomID, studentID bson.ObjectID) error
}

// UpdateRoomParams defines the optional parameters for updating a room.
// Only the fields that are not nil will be updated.
type UpdateRoomParams struct {
	Capacity   *int
	Type       *string
	Status     *string
	Rent       *float64
	Facilities *[]string
}

const roomCollection = "rooms"

type roomMongoRepository struct {
	db *mongo.Database
}

func NewRoomMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) RoomRepository {
	collection := db.Collection(roomCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create room indexes")
	}

	return &roomMongoRepository{db: db}
}

func (r *roomMongoRepository) CreateRoom(ctx context.Context, room *model.Room) (*model.Room, error) {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := r.db.Collection(roomCollection).InsertOne(ctx, room)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		room.ID = objectID
	}

	return room, nil
}

func (r *roomMongoRepository) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var room model.Room
	if err := r.db.Collection(roomCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&room); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomMongoRepository) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return r.list(ctx, bson.M{})
}

func (r *roomMongoRepository) ListAvailableRooms(ctx context.Context) ([]*model.Room, error) {
	return r.list(ctx, bson.M{
		"status": model.RoomStatusAvailable,
		"$expr":  bson.M{"$lt": bson.A{"$current_occupancy", "$capacity"}},
	})
}

func (r *roomMongoRepository) list(ctx context.Context, filter bson.M) ([]*model.Room, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}})

	cursor, err := r.db.Collection(roomCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	for cursor.Next(ctx) {
		var room model.Room
		if err := cursor.Decode(&room); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomMongoRepository) UpdateRoom(
	ctx context.Context,
	id string,
	params UpdateRoomParams,
) (*model.Room, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Capacity != nil {
		updateMap["capacity"] = *params.Capacity
	}
	if params.Type != nil {
		updateMap["type"] = *params.Type
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.Rent != nil {
		updateMap["rent"] = *params.Rent
	}
	if params.Facilities != nil {
		updateMap["facilities"] = *params.Facilities
	}

	if len(updateMap) == 0 {
		return r.GetRoom(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(roomCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var room model.Room
	if err := result.Decode(&room); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomMongoRepository) AddOccupant(ctx context.Context, roomID, studentID bson.ObjectID) error {
	result, err := r.db.Collection(roomCollection).UpdateOne(
		ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$push": bson.M{"students": studentID},
			"$inc":  bson.M{"current_occupancy": 1},
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

func (r *roomMongoRepository) RemoveOccupant(ctx context.Context, roomID, studentID bson.ObjectID) error {
	result, err := r.db.Collection(roomCollection).UpdateOne(
		ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$pull": bson.M{"students": studentID},
			"$inc":  bson.M{"current_occupancy": -1},
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
