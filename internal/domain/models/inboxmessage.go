// internal/domain/models/inboxmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inbox message types. Admin messages carry moderation outcomes; tag
// messages carry user-to-user mentions.
const (
	InboxTypeAdmin = "admin"
	InboxTypeTag   = "tag"
)

// InboxMessage is a one-way notification delivered to a user's message list.
// Messages are write-only for the sender; the recipient's inbox read consumes
// and deletes them.
type InboxMessage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From    string             `bson:"from" json:"from"`
	To      string             `bson:"to" json:"to"`
	Type    string             `bson:"type" json:"type"` // admin | tag
	Content string             `bson:"content" json:"content"`
	Date    time.Time          `bson:"date" json:"date"`
}
