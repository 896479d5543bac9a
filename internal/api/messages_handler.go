package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wptechprodigy/mail-sonic/internal/imap"
	"github.com/wptechprodigy/mail-sonic/internal/models"
	"github.com/wptechprodigy/mail-sonic/internal/smtp"
)

// MessagesHandler handles reading, deleting and sending single messages.
type MessagesHandler struct {
	newMailboxWorker  func() imap.MailboxWorker
	newDispatchWorker func() smtp.DispatchWorker
}

// NewMessagesHandler creates a new MessagesHandler instance.
func NewMessagesHandler(newMailboxWorker func() imap.MailboxWorker, newDispatchWorker func() smtp.DispatchWorker) *MessagesHandler {
	return &MessagesHandler{
		newMailboxWorker:  newMailboxWorker,
		newDispatchWorker: newDispatchWorker,
	}
}

// GetMessage returns the body of one message as plain text.
func (h *MessagesHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	mailbox := r.PathValue("mailbox")
	id, err := parseMessageID(r.PathValue("id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	body, err := runWorker(r.Context(), "imap.GetMessageBody", h.newMailboxWorker,
		func(ctx context.Context, worker imap.MailboxWorker) (string, error) {
			return worker.GetMessageBody(ctx, mailbox, id)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteText(w, body)
}

// DeleteMessage removes one message from its mailbox.
func (h *MessagesHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	mailbox := r.PathValue("mailbox")
	id, err := parseMessageID(r.PathValue("id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	_, err = runWorker(r.Context(), "imap.DeleteMessage", h.newMailboxWorker,
		func(ctx context.Context, worker imap.MailboxWorker) (struct{}, error) {
			return struct{}{}, worker.DeleteMessage(ctx, mailbox, id)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteText(w, "ok!")
}

// SendMessage dispatches the message in the request body.
func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.OutgoingMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		WriteError(w, r, err)
		return
	}

	_, err := runWorker(r.Context(), "smtp.SendMessage", h.newDispatchWorker,
		func(ctx context.Context, worker smtp.DispatchWorker) (struct{}, error) {
			return struct{}{}, worker.SendMessage(ctx, msg)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteText(w, "ok!")
}

// parseMessageID parses the numeric UID path parameter.
func parseMessageID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, invalidRequest("message id must be a positive integer, got %q", raw)
	}
	return uint32(id), nil
}
