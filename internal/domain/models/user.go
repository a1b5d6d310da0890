// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles. Guests can browse and apply for membership; members can
// register for events and redeem vouchers; admins moderate applications.
const (
	RoleGuest  = "guest"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Auth methods. "pending" marks accounts provisioned by membership
// acceptance that have no credential yet.
const (
	AuthInternal = "internal"
	AuthGoogle   = "google"
	AuthPending  = "pending"
)

// User represents guests, members, and admins.
//
// NOTE:
//   - LoginID is the email address or phone number the user signs in with.
//     Username is the public display identity; both are unique.
//   - PasswordHash is empty for OAuth-only accounts and for accounts created
//     by membership acceptance before the applicant finishes sign-in.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	UsernameCI    string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	LoginID       string             `bson:"login_id" json:"login_id"`
	LoginIDCI     string             `bson:"login_id_ci" json:"-"`
	PasswordHash  string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod    string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // internal | google | pending
	Role          string             `bson:"role" json:"role"`                                   // guest | member | admin
	Avatar        string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	EmailVerified bool               `bson:"email_verified" json:"email_verified"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
