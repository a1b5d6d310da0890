package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures seeds test data directly into collections, bypassing the stores,
// so store and handler tests can start from a known state.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures wraps a test database for seeding.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) insert(coll string, doc any) {
	f.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert %s fixture: %v", coll, err)
	}
}

// CreateUser inserts a user with the given identity and role.
func (f *Fixtures) CreateUser(username, loginID, role string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		LoginID:    loginID,
		LoginIDCI:  text.Fold(loginID),
		AuthMethod: models.AuthInternal,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert("users", u)
	return u
}

// CreateMemberUser inserts a member-role user.
func (f *Fixtures) CreateMemberUser(username, loginID string) models.User {
	f.t.Helper()
	return f.CreateUser(username, loginID, models.RoleMember)
}

// CreateAdmin inserts an admin-role user.
func (f *Fixtures) CreateAdmin(username, loginID string) models.User {
	f.t.Helper()
	return f.CreateUser(username, loginID, models.RoleAdmin)
}

// CreateMemberApplication inserts a pending membership application.
func (f *Fixtures) CreateMemberApplication(userID primitive.ObjectID, username, email string) models.MemberApplication {
	f.t.Helper()
	app := models.MemberApplication{
		ID:        primitive.NewObjectID(),
		UserID:    &userID,
		Username:  username,
		FullName:  username + " Test",
		Email:     email,
		Status:    models.ApplicationPending,
		CreatedAt: time.Now().UTC(),
	}
	f.insert("member_applications", app)
	return app
}

// CreateEventApplication inserts a pending event application.
func (f *Fixtures) CreateEventApplication(userID primitive.ObjectID, username, eventName string) models.EventApplication {
	f.t.Helper()
	app := models.EventApplication{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Username:      username,
		EventName:     eventName,
		PaymentStatus: models.PaymentUnpaid,
		Status:        models.ApplicationPending,
		CreatedAt:     time.Now().UTC(),
	}
	f.insert("event_applications", app)
	return app
}

// CreateBusiness inserts a directory listing owned by the given user.
func (f *Fixtures) CreateBusiness(ownerID primitive.ObjectID, username, name string) models.Business {
	f.t.Helper()
	now := time.Now().UTC()
	b := models.Business{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Username:  username,
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert("businesses", b)
	return b
}

// CreateVoucher inserts a voucher for a business.
func (f *Fixtures) CreateVoucher(businessID primitive.ObjectID, title string, pointsRequired, stock int, expiry time.Time) models.Voucher {
	f.t.Helper()
	now := time.Now().UTC()
	v := models.Voucher{
		ID:             primitive.NewObjectID(),
		BusinessID:     businessID,
		Title:          title,
		PointsRequired: pointsRequired,
		ExpiryDate:     expiry,
		Stock:          stock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert("vouchers", v)
	return v
}

// CreatePoint inserts a point balance for a user.
func (f *Fixtures) CreatePoint(userID primitive.ObjectID, points int) models.Point {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Point{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Points: points,
		History: []models.PointEntry{
			{Amount: points, Reason: "Seed balance", Date: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert("points", p)
	return p
}

// CreateRedemption inserts a voucher redemption record.
func (f *Fixtures) CreateRedemption(userID, voucherID, businessID primitive.ObjectID, status string, redeemedAt, expiresAt time.Time) models.VoucherRedemption {
	f.t.Helper()
	red := models.VoucherRedemption{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		VoucherID:  voucherID,
		BusinessID: businessID,
		PointsUsed: 100,
		Status:     status,
		ExpiresAt:  expiresAt,
		RedeemedAt: redeemedAt,
		CreatedAt:  redeemedAt,
	}
	f.insert("voucher_redemptions", red)
	return red
}

// CreateInboxMessage inserts a notification for a user.
func (f *Fixtures) CreateInboxMessage(to, content string) models.InboxMessage {
	f.t.Helper()
	msg := models.InboxMessage{
		ID:      primitive.NewObjectID(),
		From:    "admin",
		To:      to,
		Type:    models.InboxTypeAdmin,
		Content: content,
		Date:    time.Now().UTC(),
	}
	f.insert("inbox_messages", msg)
	return msg
}
