// internal/domain/models/mediaitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaItem is the metadata row for a gallery upload. The bytes live in blob
// storage under Path; URL is the public location served to clients.
type MediaItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Path        string             `bson:"path" json:"-"`
	URL         string             `bson:"url" json:"url"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ChatMessage is a realtime forum message. Chat is backed by Redis only and
// is never written to the document store; this type is the wire and history
// shape shared by the hub and its clients.
type ChatMessage struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}
