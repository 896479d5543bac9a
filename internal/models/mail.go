package models

import "time"

// Mailbox is a named container of messages on the IMAP server.
type Mailbox struct {
	// Name is the last hierarchy segment, for display.
	Name string `json:"name"`
	// Path is the full server-side name used to address the mailbox.
	Path      string `json:"path"`
	Delimiter string `json:"delimiter,omitempty"`
}

// MessageSummary describes one message in a mailbox listing.
// ID is the IMAP UID, scoped to the mailbox.
type MessageSummary struct {
	ID      uint32    `json:"id"`
	Date    time.Time `json:"date"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
}

// OutgoingMessage is the payload of POST /messages.
// To holds one address or a comma-separated list.
type OutgoingMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
