// Package smtp sends outgoing messages through the configured SMTP server.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/config"
	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/models"
	"github.com/wptechprodigy/mail-sonic/internal/remote"
)

const serviceName = "smtp"

// ErrInvalidMessage is returned when the sender or recipients cannot be parsed.
var ErrInvalidMessage = errors.New("invalid message")

//go:generate mockgen -source=worker.go -destination=mock/worker.go -package=mock

// DispatchWorker is the send operation the API depends on.
type DispatchWorker interface {
	SendMessage(ctx context.Context, msg models.OutgoingMessage) error
}

// Worker sends through one SMTP endpoint, one connection per message.
type Worker struct {
	endpoint  config.Endpoint
	tlsConfig *tls.Config
	now       func() time.Time
}

// NewWorker creates a Worker for the given endpoint.
func NewWorker(endpoint config.Endpoint) *Worker {
	return &Worker{endpoint: endpoint, now: time.Now}
}

// SendMessage composes msg and hands it to the server.
func (w *Worker) SendMessage(ctx context.Context, msg models.OutgoingMessage) error {
	from, to, err := parseAddresses(msg)
	if err != nil {
		return err
	}

	raw, err := compose(from, to, msg, w.now())
	if err != nil {
		return fmt.Errorf("composing message: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return remote.Wrap(serviceName, "send", err)
	}

	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		recipients = append(recipients, addr.Address)
	}

	return remote.Wrap(serviceName, "send", w.deliver(from.Address, recipients, bytes.NewReader(raw)))
}

func (w *Worker) deliver(from string, to []string, r io.Reader) error {
	c, err := w.dial()
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Log.Debug("smtp: close failed", zap.Error(err))
		}
	}()

	if w.endpoint.Auth.User != "" {
		auth := sasl.NewPlainClient("", w.endpoint.Auth.User, w.endpoint.Auth.Pass)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := c.SendMail(from, to, r); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}

	return c.Quit()
}

// dial connects with implicit TLS when the endpoint asks for it. Otherwise the
// session is reopened with STARTTLS if the server's EHLO reply advertises it.
func (w *Worker) dial() (*gosmtp.Client, error) {
	addr := w.endpoint.Address()

	if w.endpoint.TLS {
		c, err := gosmtp.DialTLS(addr, w.tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to dial with TLS: %w", err)
		}
		return c, nil
	}

	c, err := gosmtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return c, nil
	}
	_ = c.Close()

	c, err = gosmtp.DialStartTLS(addr, w.tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}
	// The handshake runs on the first command after STARTTLS.
	if err := c.Hello("localhost"); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}
	return c, nil
}

// parseAddresses checks the sender and the comma-separated recipient list.
func parseAddresses(msg models.OutgoingMessage) (*mail.Address, []*mail.Address, error) {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: from %q: %v", ErrInvalidMessage, msg.From, err)
	}

	to, err := mail.ParseAddressList(msg.To)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: to %q: %v", ErrInvalidMessage, msg.To, err)
	}
	if len(to) == 0 {
		return nil, nil, fmt.Errorf("%w: no recipients", ErrInvalidMessage)
	}

	return from, to, nil
}

// compose renders a single-part text/plain RFC 5322 message.
func compose(from *mail.Address, to []*mail.Address, msg models.OutgoingMessage, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", to)
	h.SetSubject(msg.Subject)
	h.Set("Message-Id", fmt.Sprintf("<%s@mail-sonic>", uuid.New().String()))
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, msg.Text); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Ensure Worker implements DispatchWorker interface
var _ DispatchWorker = (*Worker)(nil)
