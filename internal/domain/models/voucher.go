// internal/domain/models/voucher.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Voucher is a redeemable offer published by a business. Stock is the number
// of redeemable units left; it is decremented with a stock>0 conditional
// update so the last unit cannot be redeemed twice.
type Voucher struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID     primitive.ObjectID `bson:"business_id" json:"business_id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	PointsRequired int                `bson:"points_required" json:"points_required"`
	ExpiryDate     time.Time          `bson:"expiry_date" json:"expiry_date"`
	Stock          int                `bson:"stock" json:"stock"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Redemption status values. Transitions are one-way:
// active → expired (time-triggered), active|expired → deleted (voucher gone).
const (
	RedemptionActive  = "active"
	RedemptionUsed    = "used"
	RedemptionExpired = "expired"
	RedemptionDeleted = "deleted"
)

// VoucherRedemption is the durable record of a voucher exchanged for points.
type VoucherRedemption struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	VoucherID  primitive.ObjectID `bson:"voucher_id" json:"voucher_id"`
	BusinessID primitive.ObjectID `bson:"business_id" json:"business_id"`
	PointsUsed int                `bson:"points_used" json:"points_used"`
	Status     string             `bson:"status" json:"status"`
	// ExpiresAt snapshots the voucher's expiry at redemption time so the
	// expiry sweep does not need the voucher document to still exist.
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`

	RedeemedAt time.Time `bson:"redeemed_at" json:"redeemed_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
