// Package secondary defines the secondary ports (driven adapters) for the application.
// This file defines the reminder delivery port.
package secondary

import "context"

// ReminderMessage is one composed reminder ready for delivery.
type ReminderMessage struct {
	MemberID   string
	MemberName string
	Phone      string
	Body       string
	Link       string // WhatsApp click-to-send link
}

// MessageSender defines the secondary port for reminder delivery.
// Delivery is fire-and-forget from the application's perspective: a
// failed send is reported per recipient, never propagated as fatal.
type MessageSender interface {
	// Send delivers one reminder to one recipient.
	Send(ctx context.Context, msg *ReminderMessage) error
}
