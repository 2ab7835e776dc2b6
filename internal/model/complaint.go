package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Complaint is a maintenance or service complaint raised by a student.
type Complaint struct {
	ID            bson.ObjectID  `bson:"_id,omitempty"        json:"id,omitempty"`
	Title         string         `bson:"title"                json:"title"`
	Description   string         `bson:"description"          json:"description"`
	Category      string         `bson:"category"             json:"category"`
	Priority      string         `bson:"priority"             json:"priority"`
	Status        string         `bson:"status"               json:"status"`
	StudentID     bson.ObjectID  `bson:"student_id"           json:"studentId"`
	RoomNumber    string         `bson:"room_number"          json:"roomNumber"`
	AssignedTo    *bson.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	AdminResponse string         `bson:"admin_response,omitempty" json:"adminResponse,omitempty"`
	ResolvedAt    *time.Time     `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"           json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updated_at"           json:"updatedAt"`
}

const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in-progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)
