// Package remote holds the error type shared by the IMAP and SMTP workers.
package remote

import "fmt"

// Error reports a failed exchange with a remote mail server.
type Error struct {
	Service string // "imap" or "smtp"
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as an *Error for service and op. A nil err stays nil.
func Wrap(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Service: service, Op: op, Err: err}
}
