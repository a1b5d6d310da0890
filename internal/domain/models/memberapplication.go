// internal/domain/models/memberapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses shared by membership and event applications.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// MemberApplication is a pending membership request awaiting admin action.
// The document is deleted once an admin accepts or rejects it; the durable
// outcome lives on the User (role) and in the applicant's inbox.
type MemberApplication struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID   *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Username string              `bson:"username" json:"username"`
	FullName string              `bson:"full_name" json:"full_name"`
	Email    string              `bson:"email" json:"email"`
	Phone    string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Address  string              `bson:"address,omitempty" json:"address,omitempty"`
	Reason   string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Status   string              `bson:"status" json:"status"` // pending | approved | rejected

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
