package testutil

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/wptechprodigy/mail-sonic/internal/config"
)

const (
	smtpUser = "test-user"
	smtpPass = "test-pass"
)

// ReceivedMessage is one message accepted by the test SMTP server.
type ReceivedMessage struct {
	From     string
	To       []string
	Data     []byte
	AuthUser string
}

// MemoryBackend is a simple in-memory SMTP backend for testing.
type MemoryBackend struct {
	mu       sync.Mutex
	messages []ReceivedMessage
}

// NewSession creates a new SMTP session.
func (b *MemoryBackend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &memorySession{backend: b}, nil
}

// Messages returns a copy of every received message.
func (b *MemoryBackend) Messages() []ReceivedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ReceivedMessage(nil), b.messages...)
}

type memorySession struct {
	backend  *MemoryBackend
	authUser string
	from     string
	to       []string
}

var _ smtp.AuthSession = (*memorySession)(nil)

func (s *memorySession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *memorySession) Auth(mech string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != smtpUser || password != smtpPass {
			return errors.New("invalid credentials")
		}
		s.authUser = username
		return nil
	}), nil
}

func (s *memorySession) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *memorySession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *memorySession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	s.backend.messages = append(s.backend.messages, ReceivedMessage{
		From:     s.from,
		To:       s.to,
		Data:     data,
		AuthUser: s.authUser,
	})

	return nil
}

func (s *memorySession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *memorySession) Logout() error {
	return nil
}

// TestSMTPServer is an in-memory SMTP server bound to a random local port.
// It accepts unauthenticated mail and PLAIN auth as "test-user"/"test-pass".
type TestSMTPServer struct {
	Server  *smtp.Server
	Address string
	Backend *MemoryBackend
	// ClientTLS trusts the server certificate. Nil unless STARTTLS is offered.
	ClientTLS *tls.Config
}

// NewTestSMTPServer starts a test SMTP server and stops it when the test ends.
func NewTestSMTPServer(t *testing.T) *TestSMTPServer {
	t.Helper()
	return newTestSMTPServer(t, nil, nil)
}

// NewTestSMTPServerStartTLS starts a submission-style test SMTP server: it
// advertises STARTTLS and rejects AUTH on a plaintext connection.
func NewTestSMTPServerStartTLS(t *testing.T) *TestSMTPServer {
	t.Helper()
	serverTLS, clientTLS := NewTLSConfigs(t)
	return newTestSMTPServer(t, serverTLS, clientTLS)
}

func newTestSMTPServer(t *testing.T, serverTLS, clientTLS *tls.Config) *TestSMTPServer {
	t.Helper()

	be := &MemoryBackend{}

	s := smtp.NewServer(be)
	s.TLSConfig = serverTLS
	s.AllowInsecureAuth = serverTLS == nil
	s.Domain = "localhost"

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		_ = s.Serve(listener)
	}()

	t.Cleanup(func() {
		_ = s.Close()
	})

	return &TestSMTPServer{
		Server:    s,
		Address:   listener.Addr().String(),
		Backend:   be,
		ClientTLS: clientTLS,
	}
}

// Endpoint returns connection parameters with valid credentials.
func (s *TestSMTPServer) Endpoint(t *testing.T) config.Endpoint {
	t.Helper()
	return endpointFor(t, s.Address, smtpUser, smtpPass)
}

// Messages returns every message received so far.
func (s *TestSMTPServer) Messages() []ReceivedMessage {
	return s.Backend.Messages()
}
