package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PasswordReset is a single-use reset code. Unlike login OTPs, multiple
// historical records per account may coexist; only an unused record with
// ExpiresAt in the future is valid, and consumption (used=false → true)
// happens at most once per record.
type PasswordReset struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Token     string        `bson:"token"`
	Role      Role          `bson:"role"`
	UserID    bson.ObjectID `bson:"user_id"`
	Used      bool          `bson:"used"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
