// Package notify delivers text messages to users over email and SMS.
package notify

import "context"

// Notifier is the outgoing notification channel. Both transports are
// best-effort: callers log failures and move on.
type Notifier interface {
	SendEmail(ctx context.Context, toAddress, subject, body string) error
	SendSMS(ctx context.Context, toPhone, body string) error
}
