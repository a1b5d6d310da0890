// internal/app/system/notify/notify.go

// Package notify fans domain events out to the user's inbox and, where an
// email address is known, to the mailer. Delivery failures are logged and
// swallowed; notifications never fail the triggering operation.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/communityhub/internal/app/system/mailer"
	"github.com/dalemusser/communityhub/internal/domain/models"
)

// InboxWriter is the slice of the inbox store the notifier needs.
type InboxWriter interface {
	Send(ctx context.Context, msg models.InboxMessage) error
}

// Notifier publishes user-facing notifications for domain events.
type Notifier struct {
	inbox InboxWriter
	mail  mailer.Mailer
	log   *zap.Logger
}

// New builds a notifier. mail may be a no-op mailer.
func New(inbox InboxWriter, mail mailer.Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{inbox: inbox, mail: mail, log: logger}
}

func (n *Notifier) deliver(ctx context.Context, username, content string) {
	msg := models.InboxMessage{
		From:    "admin",
		To:      username,
		Type:    models.InboxTypeAdmin,
		Content: content,
		Date:    time.Now(),
	}
	if err := n.inbox.Send(ctx, msg); err != nil {
		n.log.Warn("inbox delivery failed", zap.String("to", username), zap.Error(err))
	}
}

func (n *Notifier) email(e mailer.Email) {
	if e.To == "" {
		return
	}
	if err := n.mail.Send(e); err != nil {
		n.log.Warn("mail delivery failed", zap.String("to", e.To), zap.Error(err))
	}
}

// MembershipApproved tells the user their membership application was accepted.
func (n *Notifier) MembershipApproved(ctx context.Context, username, email, fullName string) {
	n.deliver(ctx, username, "Congratulations! Your membership application has been approved. Welcome aboard.")
	n.email(mailer.MembershipApproved(email, fullName))
}

// MembershipRejected tells the user their membership application was declined.
func (n *Notifier) MembershipRejected(ctx context.Context, username, email, fullName string) {
	n.deliver(ctx, username, "Your membership application was not approved this time. You are welcome to apply again.")
	n.email(mailer.MembershipRejected(email, fullName))
}

// EventApproved tells the user their event registration was accepted.
func (n *Notifier) EventApproved(ctx context.Context, username, eventName string) {
	n.deliver(ctx, username, fmt.Sprintf("Your registration for %s has been approved.", eventName))
}

// EventRejected tells the user their event registration was declined.
func (n *Notifier) EventRejected(ctx context.Context, username, eventName string) {
	n.deliver(ctx, username, fmt.Sprintf("Your registration for %s was not approved.", eventName))
}

// PointsAwarded tells the user points landed on their account.
func (n *Notifier) PointsAwarded(ctx context.Context, username string, amount int, reason string) {
	n.deliver(ctx, username, fmt.Sprintf("You earned %d points: %s.", amount, reason))
}
