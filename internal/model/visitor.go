package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Visitor records a visit to a student, from check-in at the gate to
// check-out. ApprovedBy is the security account that admitted them.
type Visitor struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"          json:"id,omitempty"`
	PassID       string         `bson:"pass_id"                json:"passId"`
	VisitorName  string         `bson:"visitor_name"           json:"visitorName"`
	VisitorPhone string         `bson:"visitor_phone"          json:"visitorPhone"`
	StudentID    bson.ObjectID  `bson:"student_id"             json:"studentId"`
	Purpose      string         `bson:"purpose"                json:"purpose"`
	CheckInTime  time.Time      `bson:"check_in_time"          json:"checkInTime"`
	CheckOutTime *time.Time     `bson:"check_out_time,omitempty" json:"checkOutTime,omitempty"`
	Status       string         `bson:"status"                 json:"status"`
	ApprovedBy   *bson.ObjectID `bson:"approved_by,omitempty"  json:"approvedBy,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"             json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updated_at"             json:"updatedAt"`
}

const (
	VisitorStatusCheckedIn  = "checked-in"
	VisitorStatusCheckedOut = "checked-out"
)
