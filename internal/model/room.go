package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Room represents a hostel room and its occupancy state. Students holds
// the ids of the current occupants; CurrentOccupancy is kept in step
// with it by the assignment flow.
type Room struct {
	ID               bson.ObjectID   `bson:"_id,omitempty"     json:"id,omitempty"`
	RoomNumber       string          `bson:"room_number"       json:"roomNumber"`
	Floor            int             `bson:"floor"             json:"floor"`
	Capacity         int             `bson:"capacity"          json:"capacity"`
	CurrentOccupancy int             `bson:"current_occupancy" json:"currentOccupancy"`
	Type             string          `bson:"type"              json:"type"`
	Status           string          `bson:"status"            json:"status"`
	Rent             float64         `bson:"rent"              json:"rent"`
	Facilities       []string        `bson:"facilities"        json:"facilities"`
	Students         []bson.ObjectID `bson:"students"          json:"students"`
	CreatedAt        time.Time       `bson:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updated_at"        json:"updatedAt"`
}

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)
