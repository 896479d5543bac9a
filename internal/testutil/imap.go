package testutil

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/backend/memory"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"

	"github.com/wptechprodigy/mail-sonic/internal/config"
)

// TestIMAPServer is an in-memory IMAP server bound to a random local port.
// The memory backend has a single user "username"/"password" whose INBOX
// already holds one message.
type TestIMAPServer struct {
	Server  *server.Server
	Address string
	Backend *memory.Backend
	// ClientTLS trusts the server certificate. Nil unless STARTTLS is offered.
	ClientTLS *tls.Config
}

// NewTestIMAPServer starts a test IMAP server and stops it when the test ends.
func NewTestIMAPServer(t *testing.T) *TestIMAPServer {
	t.Helper()
	return newTestIMAPServer(t, nil, nil)
}

// NewTestIMAPServerStartTLS starts a test IMAP server that offers STARTTLS
// and refuses LOGIN until the connection has been upgraded.
func NewTestIMAPServerStartTLS(t *testing.T) *TestIMAPServer {
	t.Helper()
	serverTLS, clientTLS := NewTLSConfigs(t)
	return newTestIMAPServer(t, serverTLS, clientTLS)
}

func newTestIMAPServer(t *testing.T, serverTLS, clientTLS *tls.Config) *TestIMAPServer {
	t.Helper()

	be := memory.New()

	s := server.New(be)
	s.TLSConfig = serverTLS
	s.AllowInsecureAuth = serverTLS == nil

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

	return &TestIMAPServer{
		Server:    s,
		Address:   listener.Addr().String(),
		Backend:   be,
		ClientTLS: clientTLS,
	}
}

// Endpoint returns connection parameters pointing at the test server.
func (s *TestIMAPServer) Endpoint(t *testing.T) config.Endpoint {
	t.Helper()
	return endpointFor(t, s.Address, "username", "password")
}

// Connect opens a logged-in client for test setup and assertions.
func (s *TestIMAPServer) Connect(t *testing.T) *imapclient.Client {
	t.Helper()

	c, err := imapclient.Dial(s.Address)
	if err != nil {
		t.Fatalf("Failed to connect to test server: %v", err)
	}

	if s.ClientTLS != nil {
		if err := c.StartTLS(s.ClientTLS); err != nil {
			_ = c.Terminate()
			t.Fatalf("Failed to start TLS: %v", err)
		}
	}

	if err := c.Login("username", "password"); err != nil {
		_ = c.Logout()
		t.Fatalf("Failed to login: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Logout()
	})

	return c
}

// CreateMailbox creates a mailbox with the given full name.
func (s *TestIMAPServer) CreateMailbox(t *testing.T, name string) {
	t.Helper()

	if err := s.Connect(t).Create(name); err != nil {
		t.Fatalf("Failed to create mailbox %q: %v", name, err)
	}
}

// AddMessage appends a plain-text message to mailbox and returns its UID.
func (s *TestIMAPServer) AddMessage(t *testing.T, mailbox, from, subject, body string, sentAt time.Time) uint32 {
	t.Helper()

	messageID := fmt.Sprintf("<%d@test.local>", time.Now().UnixNano())
	raw := strings.Join([]string{
		"Message-ID: " + messageID,
		"Date: " + sentAt.Format(time.RFC1123Z),
		"From: " + from,
		"To: username@example.org",
		"Subject: " + subject,
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	return s.AddRawMessage(t, mailbox, messageID, raw)
}

// AddRawMessage appends raw to mailbox and returns the UID of the message
// whose Message-ID header equals messageID.
func (s *TestIMAPServer) AddRawMessage(t *testing.T, mailbox, messageID, raw string) uint32 {
	t.Helper()

	c := s.Connect(t)

	if err := c.Append(mailbox, nil, time.Now(), strings.NewReader(raw)); err != nil {
		t.Fatalf("Failed to append message: %v", err)
	}

	if _, err := c.Select(mailbox, true); err != nil {
		t.Fatalf("Failed to select %q: %v", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Message-ID", messageID)
	uids, err := c.UidSearch(criteria)
	if err != nil {
		t.Fatalf("Failed to search for message: %v", err)
	}
	if len(uids) == 0 {
		t.Fatalf("Message not found after append")
	}

	return uids[0]
}

// MessageUIDs returns the UIDs currently stored in mailbox.
func (s *TestIMAPServer) MessageUIDs(t *testing.T, mailbox string) []uint32 {
	t.Helper()

	c := s.Connect(t)
	if _, err := c.Select(mailbox, true); err != nil {
		t.Fatalf("Failed to select %q: %v", mailbox, err)
	}

	uids, err := c.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		t.Fatalf("Failed to search %q: %v", mailbox, err)
	}
	return uids
}

// FlagMessage adds flag to the message with the given UID, as another mail
// client would.
func (s *TestIMAPServer) FlagMessage(t *testing.T, mailbox string, uid uint32, flag string) {
	t.Helper()

	c := s.Connect(t)
	if _, err := c.Select(mailbox, false); err != nil {
		t.Fatalf("Failed to select %q: %v", mailbox, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := c.UidStore(seqSet, item, []interface{}{flag}, nil); err != nil {
		t.Fatalf("Failed to flag uid %d: %v", uid, err)
	}
}

// MessageFlags returns the flags currently set on the message with the given UID.
func (s *TestIMAPServer) MessageFlags(t *testing.T, mailbox string, uid uint32) []string {
	t.Helper()

	c := s.Connect(t)
	if _, err := c.Select(mailbox, true); err != nil {
		t.Fatalf("Failed to select %q: %v", mailbox, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqSet, []imap.FetchItem{imap.FetchFlags, imap.FetchUid}, messages)
	}()

	var flags []string
	for msg := range messages {
		if msg.Uid == uid {
			flags = msg.Flags
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("Failed to fetch flags for uid %d: %v", uid, err)
	}

	return flags
}

func endpointFor(t *testing.T, address, user, pass string) config.Endpoint {
	t.Helper()

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		t.Fatalf("Bad test server address %q: %v", address, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Bad test server port %q: %v", portStr, err)
	}

	return config.Endpoint{
		Host: host,
		Port: port,
		Auth: config.Credentials{User: user, Pass: pass},
	}
}
