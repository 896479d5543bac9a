package contacts

import "fmt"

// StoreError wraps any failure of the underlying datastore.
// Not-found is never reported as a StoreError: Update and Delete treat a
// missing id as a no-op.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("contacts: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
