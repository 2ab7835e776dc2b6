package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OTP is a single-use numeric login code bound to an (email, role) pair.
// At most one unexpired, unverified record exists per pair; requesting a
// new code deletes the previous record first. Records are removed by a
// TTL index ten minutes after creation regardless of the verified flag.
type OTP struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Code      string        `bson:"code"`
	Role      Role          `bson:"role"`
	UserID    bson.ObjectID `bson:"user_id"`
	Verified  bool          `bson:"verified"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
