package imap

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// ListMailboxes lists all mailboxes on the server.
func (w *Worker) ListMailboxes(ctx context.Context) ([]models.Mailbox, error) {
	result := make([]models.Mailbox, 0)

	err := w.withSession(ctx, "list mailboxes", func(c *client.Client) error {
		mailboxes := make(chan *imap.MailboxInfo, 10)
		done := make(chan error, 1)

		go func() {
			done <- c.List("", "*", mailboxes)
		}()

		for m := range mailboxes {
			result = append(result, toMailbox(m))
		}

		if err := <-done; err != nil {
			return fmt.Errorf("failed to list mailboxes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
