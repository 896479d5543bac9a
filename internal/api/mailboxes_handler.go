package api

import (
	"context"
	"net/http"

	"github.com/wptechprodigy/mail-sonic/internal/imap"
	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// MailboxesHandler handles mailbox browsing requests.
type MailboxesHandler struct {
	newWorker func() imap.MailboxWorker
}

// NewMailboxesHandler creates a new MailboxesHandler instance.
// newWorker is called once per request.
func NewMailboxesHandler(newWorker func() imap.MailboxWorker) *MailboxesHandler {
	return &MailboxesHandler{newWorker: newWorker}
}

// ListMailboxes returns every mailbox on the server.
func (h *MailboxesHandler) ListMailboxes(w http.ResponseWriter, r *http.Request) {
	mailboxes, err := runWorker(r.Context(), "imap.ListMailboxes", h.newWorker,
		func(ctx context.Context, worker imap.MailboxWorker) ([]models.Mailbox, error) {
			return worker.ListMailboxes(ctx)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSONResponse(w, mailboxes)
}

// ListMessages returns the message summaries of one mailbox.
func (h *MailboxesHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	mailbox := r.PathValue("mailbox")

	messages, err := runWorker(r.Context(), "imap.ListMessages", h.newWorker,
		func(ctx context.Context, worker imap.MailboxWorker) ([]models.MessageSummary, error) {
			return worker.ListMessages(ctx, mailbox)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSONResponse(w, messages)
}
