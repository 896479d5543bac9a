package imap

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// ListMessages returns a summary of every message in mailbox, in sequence order.
// The mailbox is opened read-only so listing never changes flags.
func (w *Worker) ListMessages(ctx context.Context, mailbox string) ([]models.MessageSummary, error) {
	result := make([]models.MessageSummary, 0)

	err := w.withSession(ctx, "list messages", func(c *client.Client) error {
		status, err := c.Select(mailbox, true)
		if err != nil {
			return fmt.Errorf("failed to select %q: %w", mailbox, err)
		}

		if status.Messages == 0 {
			return nil
		}

		seqSet := new(imap.SeqSet)
		seqSet.AddRange(1, status.Messages)

		items := []imap.FetchItem{
			imap.FetchEnvelope,
			imap.FetchUid,
		}

		messages := make(chan *imap.Message, 10)
		done := make(chan error, 1)

		go func() {
			done <- c.Fetch(seqSet, items, messages)
		}()

		for msg := range messages {
			result = append(result, toSummary(msg))
		}

		if err := <-done; err != nil {
			return fmt.Errorf("failed to fetch messages: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetMessageBody fetches the full message with the given UID and returns its
// readable body. BODY.PEEK is used so the message is not marked as seen.
func (w *Worker) GetMessageBody(ctx context.Context, mailbox string, id uint32) (string, error) {
	var body string

	err := w.withSession(ctx, "get message", func(c *client.Client) error {
		if _, err := c.Select(mailbox, true); err != nil {
			return fmt.Errorf("failed to select %q: %w", mailbox, err)
		}

		seqSet := new(imap.SeqSet)
		seqSet.AddNum(id)

		section := &imap.BodySectionName{Peek: true}
		items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

		messages := make(chan *imap.Message, 1)
		done := make(chan error, 1)

		go func() {
			done <- c.UidFetch(seqSet, items, messages)
		}()

		var found *imap.Message
		for msg := range messages {
			if msg.Uid == id {
				found = msg
			}
		}

		if err := <-done; err != nil {
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		if found == nil {
			return fmt.Errorf("uid %d in %q: %w", id, mailbox, ErrMessageNotFound)
		}

		literal := found.GetBody(section)
		if literal == nil {
			return fmt.Errorf("server did not return a body for uid %d", id)
		}

		text, err := readableBody(literal)
		if err != nil {
			return err
		}
		body = text
		return nil
	})
	if err != nil {
		return "", err
	}

	return body, nil
}

// DeleteMessage removes the message with the given UID from mailbox.
// Messages some other client already flagged \Deleted are left in place:
// UID EXPUNGE is used when the server has UIDPLUS, otherwise their flags are
// lifted around a plain EXPUNGE and put back afterwards.
func (w *Worker) DeleteMessage(ctx context.Context, mailbox string, id uint32) error {
	return w.withSession(ctx, "delete message", func(c *client.Client) error {
		if _, err := c.Select(mailbox, false); err != nil {
			return fmt.Errorf("failed to select %q: %w", mailbox, err)
		}

		target := new(imap.SeqSet)
		target.AddNum(id)

		if err := storeDeleted(c, target, imap.AddFlags); err != nil {
			return fmt.Errorf("failed to flag message: %w", err)
		}

		uidPlus := uidplus.NewClient(c)
		if ok, err := uidPlus.SupportUidPlus(); err == nil && ok {
			if err := uidPlus.UidExpunge(target, nil); err != nil {
				return fmt.Errorf("failed to expunge: %w", err)
			}
			return nil
		}

		return expungeOnly(c, id)
	})
}

// expungeOnly runs a plain EXPUNGE that removes only id. Every other message
// carrying \Deleted is unflagged first and reflagged once the expunge is done.
func expungeOnly(c *client.Client, id uint32) (err error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}

	flagged, err := c.UidSearch(criteria)
	if err != nil {
		return fmt.Errorf("failed to search flagged messages: %w", err)
	}

	others := new(imap.SeqSet)
	for _, uid := range flagged {
		if uid != id {
			others.AddNum(uid)
		}
	}

	if !others.Empty() {
		if err := storeDeleted(c, others, imap.RemoveFlags); err != nil {
			return fmt.Errorf("failed to unflag other messages: %w", err)
		}
		defer func() {
			if restoreErr := storeDeleted(c, others, imap.AddFlags); restoreErr != nil {
				logger.Log.Warn("imap: failed to restore deleted flags",
					zap.String("uids", others.String()), zap.Error(restoreErr))
				if err == nil {
					err = fmt.Errorf("failed to restore deleted flags: %w", restoreErr)
				}
			}
		}()
	}

	if err := c.Expunge(nil); err != nil {
		return fmt.Errorf("failed to expunge: %w", err)
	}
	return nil
}

func storeDeleted(c *client.Client, uids *imap.SeqSet, op imap.FlagsOp) error {
	item := imap.FormatFlagsOp(op, true)
	return c.UidStore(uids, item, []interface{}{imap.DeletedFlag}, nil)
}
