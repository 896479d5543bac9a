package imap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wptechprodigy/mail-sonic/internal/config"
	"github.com/wptechprodigy/mail-sonic/internal/remote"
	"github.com/wptechprodigy/mail-sonic/internal/testutil"
)

func TestWorker_ListMailboxes(t *testing.T) {
	server := testutil.NewTestIMAPServer(t)
	server.CreateMailbox(t, "Archive")
	server.CreateMailbox(t, "Archive/2024")

	mailboxes, err := NewWorker(server.Endpoint(t)).ListMailboxes(context.Background())
	require.NoError(t, err)

	byPath := make(map[string]string)
	for _, m := range mailboxes {
		byPath[m.Path] = m.Name
	}

	assert.Equal(t, "INBOX", byPath["INBOX"])
	assert.Equal(t, "Archive", byPath["Archive"])
	assert.Equal(t, "2024", byPath["Archive/2024"])
}

func TestWorker_ListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a summary per message", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		sentAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		uid := server.AddMessage(t, "INBOX", "Alice <alice@example.com>", "Quarterly report", "numbers", sentAt)

		messages, err := NewWorker(server.Endpoint(t)).ListMessages(ctx, "INBOX")
		require.NoError(t, err)

		var found bool
		for _, m := range messages {
			if m.ID != uid {
				continue
			}
			found = true
			assert.Equal(t, "Quarterly report", m.Subject)
			assert.Equal(t, "Alice <alice@example.com>", m.From)
			assert.True(t, sentAt.Equal(m.Date), "date %v", m.Date)
		}
		assert.True(t, found, "appended message %d not listed", uid)
	})

	t.Run("empty mailbox yields empty slice", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		server.CreateMailbox(t, "Empty")

		messages, err := NewWorker(server.Endpoint(t)).ListMessages(ctx, "Empty")
		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})

	t.Run("unknown mailbox is a remote error", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)

		_, err := NewWorker(server.Endpoint(t)).ListMessages(ctx, "Nope")
		assertRemoteError(t, err, "list messages")
	})
}

func TestWorker_GetMessageBody(t *testing.T) {
	ctx := context.Background()

	t.Run("returns plain text body", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		uid := server.AddMessage(t, "INBOX", "bob@example.com", "Hi", "Hello there", time.Now())

		body, err := NewWorker(server.Endpoint(t)).GetMessageBody(ctx, "INBOX", uid)
		require.NoError(t, err)
		assert.Contains(t, body, "Hello there")
	})

	t.Run("falls back to html when no text part", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		raw := "Message-ID: <html@test.local>\r\n" +
			"From: carol@example.com\r\n" +
			"Subject: Html only\r\n" +
			"Content-Type: text/html; charset=utf-8\r\n" +
			"\r\n" +
			"<p>Rich content</p>"
		uid := server.AddRawMessage(t, "INBOX", "<html@test.local>", raw)

		body, err := NewWorker(server.Endpoint(t)).GetMessageBody(ctx, "INBOX", uid)
		require.NoError(t, err)
		assert.Contains(t, body, "Rich content")
	})

	t.Run("does not mark the message as seen", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		uid := server.AddMessage(t, "INBOX", "bob@example.com", "Unread", "still unread", time.Now())

		_, err := NewWorker(server.Endpoint(t)).GetMessageBody(ctx, "INBOX", uid)
		require.NoError(t, err)

		c := server.Connect(t)
		_, err = c.Select("INBOX", true)
		require.NoError(t, err)
		criteria := unseenCriteria()
		uids, err := c.UidSearch(criteria)
		require.NoError(t, err)
		assert.Contains(t, uids, uid)
	})

	t.Run("missing uid is message not found", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)

		_, err := NewWorker(server.Endpoint(t)).GetMessageBody(ctx, "INBOX", 999999)
		assertRemoteError(t, err, "get message")
		assert.ErrorIs(t, err, ErrMessageNotFound)
	})
}

func TestWorker_DeleteMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the requested message", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		keep := server.AddMessage(t, "INBOX", "a@example.com", "Keep", "keep", time.Now())
		drop := server.AddMessage(t, "INBOX", "b@example.com", "Drop", "drop", time.Now())

		err := NewWorker(server.Endpoint(t)).DeleteMessage(ctx, "INBOX", drop)
		require.NoError(t, err)

		uids := server.MessageUIDs(t, "INBOX")
		assert.Contains(t, uids, keep)
		assert.NotContains(t, uids, drop)
	})

	t.Run("leaves messages flagged deleted by another client", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		pending := server.AddMessage(t, "INBOX", "a@example.com", "Trashed elsewhere", "pending", time.Now())
		drop := server.AddMessage(t, "INBOX", "b@example.com", "Drop", "drop", time.Now())
		server.FlagMessage(t, "INBOX", pending, imap.DeletedFlag)

		err := NewWorker(server.Endpoint(t)).DeleteMessage(ctx, "INBOX", drop)
		require.NoError(t, err)

		uids := server.MessageUIDs(t, "INBOX")
		assert.NotContains(t, uids, drop)
		assert.Contains(t, uids, pending)
		assert.Contains(t, server.MessageFlags(t, "INBOX", pending), imap.DeletedFlag)
	})

	t.Run("target already flagged deleted", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		drop := server.AddMessage(t, "INBOX", "b@example.com", "Drop", "drop", time.Now())
		server.FlagMessage(t, "INBOX", drop, imap.DeletedFlag)

		err := NewWorker(server.Endpoint(t)).DeleteMessage(ctx, "INBOX", drop)
		require.NoError(t, err)
		assert.NotContains(t, server.MessageUIDs(t, "INBOX"), drop)
	})
}

func TestWorker_StartTLS(t *testing.T) {
	ctx := context.Background()
	server := testutil.NewTestIMAPServerStartTLS(t)

	t.Run("upgrades before logging in", func(t *testing.T) {
		uid := server.AddMessage(t, "INBOX", "a@example.com", "Over TLS", "secret body", time.Now())

		worker := NewWorker(server.Endpoint(t))
		worker.tlsConfig = server.ClientTLS

		body, err := worker.GetMessageBody(ctx, "INBOX", uid)
		require.NoError(t, err)
		assert.Contains(t, body, "secret body")
	})

	t.Run("untrusted certificate fails before credentials are sent", func(t *testing.T) {
		_, err := NewWorker(server.Endpoint(t)).ListMailboxes(ctx)
		assertRemoteError(t, err, "list mailboxes")
		assert.Contains(t, err.Error(), "failed to start TLS")
	})
}

func TestWorker_ConnectionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("bad credentials", func(t *testing.T) {
		server := testutil.NewTestIMAPServer(t)
		endpoint := server.Endpoint(t)
		endpoint.Auth.Pass = "wrong"

		_, err := NewWorker(endpoint).ListMailboxes(ctx)
		assertRemoteError(t, err, "list mailboxes")
		assert.Contains(t, err.Error(), "failed to authenticate")
	})

	t.Run("unreachable server", func(t *testing.T) {
		endpoint := config.Endpoint{Host: "127.0.0.1", Port: 1}

		_, err := NewWorker(endpoint).ListMailboxes(ctx)
		assertRemoteError(t, err, "list mailboxes")
	})

	t.Run("cancelled context does not dial", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := NewWorker(config.Endpoint{Host: "127.0.0.1", Port: 1}).DeleteMessage(cancelled, "INBOX", 1)
		assertRemoteError(t, err, "delete message")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func assertRemoteError(t *testing.T, err error, op string) {
	t.Helper()
	require.Error(t, err)

	var remoteErr *remote.Error
	require.True(t, errors.As(err, &remoteErr), "expected remote.Error, got %T", err)
	assert.Equal(t, "imap", remoteErr.Service)
	assert.Equal(t, op, remoteErr.Op)
}
