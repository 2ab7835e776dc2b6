package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Student extends the common account with enrollment, guardian and fee
// information. FeePayments is embedded rather than referenced, matching
// how the fee ledger is read (always together with the student).
type Student struct {
	Account       `bson:",inline"`
	StudentID     string         `bson:"student_id"     json:"studentId"`
	Course        string         `bson:"course"         json:"course"`
	Year          int            `bson:"year"           json:"year"`
	RoomID        *bson.ObjectID `bson:"room_id,omitempty" json:"roomId,omitempty"`
	GuardianName  string         `bson:"guardian_name"  json:"guardianName"`
	GuardianPhone string         `bson:"guardian_phone" json:"guardianPhone"`
	Address       string         `bson:"address"        json:"address"`
	DateOfBirth   time.Time      `bson:"date_of_birth"  json:"dateOfBirth"`
	AdmissionDate time.Time      `bson:"admission_date" json:"admissionDate"`
	FeeAmount     float64        `bson:"fee_amount"     json:"feeAmount"`
	FeeStatus     string         `bson:"fee_status"     json:"feeStatus"`
	FeeDueDate    time.Time      `bson:"fee_due_date"   json:"feeDueDate"`
	FeePayments   []FeePayment   `bson:"fee_payments"   json:"feePayments"`
}

const (
	FeeStatusPending = "pending"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
	FeeStatusOverdue = "overdue"
)

// FeePayment is a single entry in a student's payment ledger.
type FeePayment struct {
	Amount        float64   `bson:"amount"         json:"amount"`
	PaymentDate   time.Time `bson:"payment_date"   json:"paymentDate"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	TransactionID string    `bson:"transaction_id" json:"transactionId"`
	Status        string    `bson:"status"         json:"status"`
}

// TotalPaid sums the completed payments in the ledger.
func (s *Student) TotalPaid() float64 {
	var total float64
	for _, p := range s.FeePayments {
		total += p.Amount
	}
	return total
}
