package imap

import (
	"context"
	"crypto/tls"
	"errors"

	"github.com/wptechprodigy/mail-sonic/internal/config"
	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// ErrMessageNotFound is returned when the requested UID does not exist in the mailbox.
var ErrMessageNotFound = errors.New("message not found")

//go:generate mockgen -source=worker.go -destination=mock/worker.go -package=mock

// MailboxWorker is the set of mailbox operations the API depends on.
type MailboxWorker interface {
	ListMailboxes(ctx context.Context) ([]models.Mailbox, error)
	ListMessages(ctx context.Context, mailbox string) ([]models.MessageSummary, error)
	GetMessageBody(ctx context.Context, mailbox string, id uint32) (string, error)
	DeleteMessage(ctx context.Context, mailbox string, id uint32) error
}

// Worker talks to one IMAP endpoint. Every call opens its own session and
// closes it before returning; nothing is cached between calls.
type Worker struct {
	endpoint config.Endpoint
	// tlsConfig is used for implicit TLS and STARTTLS; nil means system roots.
	tlsConfig *tls.Config
}

// NewWorker creates a Worker for the given endpoint.
func NewWorker(endpoint config.Endpoint) *Worker {
	return &Worker{endpoint: endpoint}
}

// Ensure Worker implements MailboxWorker interface
var _ MailboxWorker = (*Worker)(nil)
