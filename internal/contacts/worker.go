package contacts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/models"
)

//go:generate mockgen -source=worker.go -destination=mock/worker.go -package=mock

// ContactWorker is the set of contact operations the API depends on.
type ContactWorker interface {
	List(ctx context.Context) ([]models.Contact, error)
	Add(ctx context.Context, input models.ContactInput) (models.Contact, error)
	Update(ctx context.Context, id string, input models.ContactInput) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// Worker performs contact CRUD against the shared datastore handle.
// It is cheap to build and holds no state besides the handle, so callers
// create one per request and drop it afterwards. Write serialization is
// left to the datastore.
type Worker struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewWorker creates a Worker bound to db.
func NewWorker(db *sqlx.DB) *Worker {
	return &Worker{db: db, now: time.Now}
}

// List returns every stored contact in insertion order.
func (w *Worker) List(ctx context.Context) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	err := w.db.SelectContext(ctx, &contacts,
		`SELECT id, name, email FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, storeError("list", err)
	}
	return contacts, nil
}

// Add stores a new contact under a freshly generated id and returns it.
// Duplicate emails are allowed.
func (w *Worker) Add(ctx context.Context, input models.ContactInput) (models.Contact, error) {
	contact := models.Contact{
		ID:    uuid.New().String(),
		Name:  input.Name,
		Email: input.Email,
	}

	_, err := w.db.ExecContext(ctx,
		w.db.Rebind(`INSERT INTO contacts (id, name, email, created_at) VALUES (?, ?, ?, ?)`),
		contact.ID, contact.Name, contact.Email, w.now().UnixNano(),
	)
	if err != nil {
		return models.Contact{}, storeError("add", err)
	}

	return contact, nil
}

// Update overwrites name and email of the contact with the given id and
// echoes the input back with the id set; the row is not re-read.
// An unknown id changes nothing and is not an error.
func (w *Worker) Update(ctx context.Context, id string, input models.ContactInput) (models.Contact, error) {
	result, err := w.db.ExecContext(ctx,
		w.db.Rebind(`UPDATE contacts SET name = ?, email = ? WHERE id = ?`),
		input.Name, input.Email, id,
	)
	if err != nil {
		return models.Contact{}, storeError("update", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		logger.Log.Debug("contacts: update matched no contact", zap.String("id", id))
	}

	return models.Contact{ID: id, Name: input.Name, Email: input.Email}, nil
}

// Delete removes the contact with the given id. Deleting an absent id succeeds.
func (w *Worker) Delete(ctx context.Context, id string) error {
	result, err := w.db.ExecContext(ctx,
		w.db.Rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return storeError("delete", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		logger.Log.Debug("contacts: delete matched no contact", zap.String("id", id))
	}

	return nil
}

// Ensure Worker implements ContactWorker interface
var _ ContactWorker = (*Worker)(nil)
