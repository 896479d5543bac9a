package imap

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"

	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// toMailbox converts a LIST response into a Mailbox. Name is the last
// hierarchy segment, Path the full name used to address it.
func toMailbox(info *imap.MailboxInfo) models.Mailbox {
	name := info.Name
	if info.Delimiter != "" {
		if i := strings.LastIndex(name, info.Delimiter); i >= 0 {
			name = name[i+len(info.Delimiter):]
		}
	}

	return models.Mailbox{
		Name:      name,
		Path:      info.Name,
		Delimiter: info.Delimiter,
	}
}

// toSummary converts a fetched message into a MessageSummary.
func toSummary(msg *imap.Message) models.MessageSummary {
	summary := models.MessageSummary{ID: msg.Uid}

	if msg.Envelope != nil {
		summary.Subject = msg.Envelope.Subject
		summary.Date = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			summary.From = formatAddress(msg.Envelope.From[0])
		}
	}

	return summary
}

// readableBody parses a raw RFC 822 message with enmime and returns its
// plain-text part, or the HTML part when there is no text part.
func readableBody(r io.Reader) (string, error) {
	envelope, err := enmime.ReadEnvelope(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse message body: %w", err)
	}

	if envelope.Text != "" {
		return envelope.Text, nil
	}
	return envelope.HTML, nil
}

// formatAddress formats an IMAP address to a string.
func formatAddress(address *imap.Address) string {
	if address == nil {
		return ""
	}

	if address.MailboxName == "" && address.HostName == "" {
		return ""
	}

	if address.PersonalName != "" {
		return fmt.Sprintf("%s <%s@%s>", address.PersonalName, address.MailboxName, address.HostName)
	}

	return fmt.Sprintf("%s@%s", address.MailboxName, address.HostName)
}
