// internal/app/system/mailer/templates.go
package mailer

import "fmt"

// MembershipApproved builds the notification sent when an application is accepted.
func MembershipApproved(to, fullName string) Email {
	return Email{
		To:      to,
		Subject: "Your membership has been approved",
		Body: fmt.Sprintf(`Hello %s,

Good news! Your membership application has been approved. You can now
register for events, earn points, and redeem vouchers.

See you there,
The Community Team`, fullName),
	}
}

// MembershipRejected builds the notification sent when an application is rejected.
func MembershipRejected(to, fullName string) Email {
	return Email{
		To:      to,
		Subject: "Update on your membership application",
		Body: fmt.Sprintf(`Hello %s,

Thank you for your interest. Unfortunately we are unable to approve your
membership application at this time. You are welcome to apply again.

The Community Team`, fullName),
	}
}
