package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role identifies one of the four account kinds. Every account carries
// its role both in the document and in issued token claims.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleWarden   Role = "warden"
	RoleSecurity Role = "security"
	RoleStudent  Role = "student"
)

// ParseRole returns the Role for a raw tag, or false when the tag is not
// one of the four known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleWarden, RoleSecurity, RoleStudent:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Account is the identity common to all four account kinds. Admin and
// Student documents carry additional fields on top of it; Warden and
// Security documents are exactly this shape.
type Account struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id,omitempty"`
	FullName     string        `bson:"full_name"      json:"fullName"`
	Email        string        `bson:"email"          json:"email"`
	Phone        string        `bson:"phone"          json:"phone"`
	PasswordHash string        `bson:"password,omitempty" json:"-"`
	Role         Role          `bson:"role"           json:"role"`
	Status       string        `bson:"status"         json:"status"`
	CreatedAt    time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updatedAt"`
}

// Sanitized returns a copy of the account with the password digest
// cleared, for use as a response payload or request principal.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}

const (
	AccountStatusActive    = "active"
	AccountStatusInactive  = "inactive"
	AccountStatusSuspended = "suspended"
)

// Admin extends the common account with administration metadata.
type Admin struct {
	Account    `bson:",inline"`
	Department string    `bson:"department" json:"department"`
	JoinDate   time.Time `bson:"join_date"  json:"joinDate"`
}
