// internal/domain/models/eventapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses on an event application.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// EventApplication is a pending event registration awaiting admin action.
// Deleted after accept/reject; acceptance materializes a Participant.
type EventApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username      string             `bson:"username" json:"username"`
	EventName     string             `bson:"event_name" json:"event_name"`
	TeamName      string             `bson:"team_name,omitempty" json:"team_name,omitempty"`
	Contact       string             `bson:"contact,omitempty" json:"contact,omitempty"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"` // unpaid | paid
	Status        string             `bson:"status" json:"status"`                 // pending | approved

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Participant is the durable record of an approved event participation.
// Exactly one document per (username, event); re-approval overwrites detail
// fields rather than inserting a second row.
type Participant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	EventName string             `bson:"event_name" json:"event_name"`
	TeamName  string             `bson:"team_name,omitempty" json:"team_name,omitempty"`
	Contact   string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Role      string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
