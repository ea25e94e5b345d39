// Package whatsapp implements the MessageSender port as a WhatsApp
// click-to-send link writer. There is no Business API integration;
// delivery means printing a wa.me link the user taps to send.
package whatsapp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// LinkWriter writes one click-to-send link per reminder to an output
// stream. It is the default sender; a real delivery integration would
// implement the same port.
type LinkWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLinkWriter creates a LinkWriter on the given output.
func NewLinkWriter(out io.Writer) *LinkWriter {
	return &LinkWriter{out: out}
}

// Send writes the recipient's link. A write failure surfaces as
// *secondary.ExternalServiceError; the caller records it per recipient
// and moves on.
func (w *LinkWriter) Send(ctx context.Context, msg *secondary.ReminderMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.out, "\n→ %s (%s)\n  %s\n", msg.MemberName, msg.Phone, msg.Link); err != nil {
		return &secondary.ExternalServiceError{Service: "whatsapp", Err: err}
	}
	return nil
}

// Ensure LinkWriter implements the port
var _ secondary.MessageSender = (*LinkWriter)(nil)
