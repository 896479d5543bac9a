package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/config"
	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/remote"
)

const (
	serviceName = "imap"
	dialTimeout = 5 * time.Second
)

// connect dials the endpoint with a 5-second timeout.
// With TLS set the connection is encrypted from the start. Otherwise it is
// upgraded with STARTTLS whenever the server offers it.
func connect(endpoint config.Endpoint, tlsConfig *tls.Config) (*client.Client, error) {
	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	if endpoint.TLS {
		c, err := client.DialWithDialerTLS(dialer, endpoint.Address(), tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to dial with TLS: %w", err)
		}
		return c, nil
	}

	c, err := client.DialWithDialer(dialer, endpoint.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	ok, err := c.SupportStartTLS()
	if err != nil {
		_ = c.Terminate()
		return nil, fmt.Errorf("failed to read capabilities: %w", err)
	}
	if ok {
		if err := c.StartTLS(tlsConfig); err != nil {
			_ = c.Terminate()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	return c, nil
}

// withSession runs fn inside a fresh authenticated session and logs out afterwards.
// Any failure is reported as a remote.Error tagged with op.
func (w *Worker) withSession(ctx context.Context, op string, fn func(c *client.Client) error) error {
	if err := ctx.Err(); err != nil {
		return remote.Wrap(serviceName, op, err)
	}

	c, err := connect(w.endpoint, w.tlsConfig)
	if err != nil {
		return remote.Wrap(serviceName, op, err)
	}
	defer func() {
		if err := c.Logout(); err != nil {
			logger.Log.Debug("imap: logout failed", zap.String("op", op), zap.Error(err))
		}
	}()

	if err := c.Login(w.endpoint.Auth.User, w.endpoint.Auth.Pass); err != nil {
		return remote.Wrap(serviceName, op, fmt.Errorf("failed to authenticate: %w", err))
	}

	return remote.Wrap(serviceName, op, fn(c))
}
