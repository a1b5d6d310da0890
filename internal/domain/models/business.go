// internal/domain/models/business.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business is a directory listing owned by exactly one user. The one-profile-
// per-owner invariant is enforced by a unique index on owner_id, not just by
// query pattern.
type Business struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Username    string             `bson:"username" json:"username"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Slideshow   []SlideshowImage   `bson:"slideshow,omitempty" json:"slideshow,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SlideshowImage is one entry in a business image gallery.
type SlideshowImage struct {
	Path       string    `bson:"path" json:"path"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
