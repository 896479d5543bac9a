package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/wptechprodigy/mail-sonic/internal/imap"
	imapmock "github.com/wptechprodigy/mail-sonic/internal/imap/mock"
	"github.com/wptechprodigy/mail-sonic/internal/models"
	"github.com/wptechprodigy/mail-sonic/internal/remote"
)

func mailboxFactory(worker imap.MailboxWorker) func() imap.MailboxWorker {
	return func() imap.MailboxWorker { return worker }
}

func TestMailboxesHandler_ListMailboxes(t *testing.T) {
	ctrl := gomock.NewController(t)
	worker := imapmock.NewMockMailboxWorker(ctrl)
	handler := NewMailboxesHandler(mailboxFactory(worker))

	t.Run("returns mailboxes as JSON", func(t *testing.T) {
		worker.EXPECT().ListMailboxes(gomock.Any()).Return([]models.Mailbox{
			{Name: "INBOX", Path: "INBOX", Delimiter: "/"},
			{Name: "Sent", Path: "Archive/Sent", Delimiter: "/"},
		}, nil)

		rr := httptest.NewRecorder()
		handler.ListMailboxes(rr, httptest.NewRequest(http.MethodGet, "/mailboxes", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[
			{"name":"INBOX","path":"INBOX","delimiter":"/"},
			{"name":"Sent","path":"Archive/Sent","delimiter":"/"}
		]`, rr.Body.String())
	})

	t.Run("remote failure is a remote_error envelope", func(t *testing.T) {
		worker.EXPECT().ListMailboxes(gomock.Any()).
			Return(nil, &remote.Error{Service: "imap", Op: "list mailboxes", Err: errors.New("connection refused")})

		rr := httptest.NewRecorder()
		handler.ListMailboxes(rr, httptest.NewRequest(http.MethodGet, "/mailboxes", nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, KindRemoteError, envelope.Kind)
		assert.NotContains(t, envelope.Message, "refused")
	})
}

func TestMailboxesHandler_ListMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	worker := imapmock.NewMockMailboxWorker(ctrl)
	handler := NewMailboxesHandler(mailboxFactory(worker))

	newRequest := func(mailbox string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/mailboxes/"+mailbox, nil)
		req.SetPathValue("mailbox", mailbox)
		return req
	}

	t.Run("passes the mailbox name through", func(t *testing.T) {
		date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		worker.EXPECT().ListMessages(gomock.Any(), "INBOX").Return([]models.MessageSummary{
			{ID: 7, Date: date, From: "a@x.com", Subject: "Hi"},
		}, nil)

		rr := httptest.NewRecorder()
		handler.ListMessages(rr, newRequest("INBOX"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"id":7,"date":"2024-01-02T03:04:05Z","from":"a@x.com","subject":"Hi"}]`, rr.Body.String())
	})

	t.Run("empty mailbox is an empty array", func(t *testing.T) {
		worker.EXPECT().ListMessages(gomock.Any(), "Empty").Return([]models.MessageSummary{}, nil)

		rr := httptest.NewRecorder()
		handler.ListMessages(rr, newRequest("Empty"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("remote failure is a remote_error envelope", func(t *testing.T) {
		worker.EXPECT().ListMessages(gomock.Any(), "Nope").
			Return(nil, &remote.Error{Service: "imap", Op: "list messages", Err: errors.New("no such mailbox")})

		rr := httptest.NewRecorder()
		handler.ListMessages(rr, newRequest("Nope"))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, KindRemoteError, decodeEnvelope(t, rr).Kind)
	})
}
