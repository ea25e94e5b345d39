// Package reminder contains the pure logic for composing meeting
// reminders and WhatsApp click-to-send links.
package reminder

import (
	"fmt"
	"strings"
)

// MessageInput carries everything a personal reminder mentions.
type MessageInput struct {
	MemberName  string
	Roles       []string // raw role names, e.g. "prayer_lead"
	Date        string   // YYYY-MM-DD
	Passage     string
	SeriesTitle string
}

// Compose renders the reminder message for one member. Asterisks are
// WhatsApp bold markers.
func Compose(input MessageInput) string {
	labels := make([]string, len(input.Roles))
	for i, role := range input.Roles {
		labels[i] = RoleLabel(role)
	}
	roleText := strings.Join(labels, " and ")

	var b strings.Builder
	fmt.Fprintf(&b, "🙏 *Bible Study Reminder - %s*\n\n", input.Date)
	fmt.Fprintf(&b, "Hello %s,\n\n", input.MemberName)
	fmt.Fprintf(&b, "This is a friendly reminder that you're scheduled for *%s* at this week's Bible study.\n\n", roleText)
	fmt.Fprintf(&b, "📖 *Passage:* %s\n", input.Passage)
	fmt.Fprintf(&b, "📚 *Series:* %s\n\n", input.SeriesTitle)
	b.WriteString("Please come prepared to share and participate. We're looking forward to seeing you there!\n\n")
	b.WriteString("Blessings,\nYour Bible Study Team\n")
	return b.String()
}

// RoleLabel turns a raw role name into a display label,
// e.g. "prayer_lead" becomes "Prayer Lead".
func RoleLabel(role string) string {
	words := strings.Split(role, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
