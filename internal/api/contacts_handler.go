package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/wptechprodigy/mail-sonic/internal/contacts"
	"github.com/wptechprodigy/mail-sonic/internal/models"
)

// ContactsHandler handles contact CRUD requests.
type ContactsHandler struct {
	newWorker func() contacts.ContactWorker
}

// NewContactsHandler creates a new ContactsHandler instance.
func NewContactsHandler(newWorker func() contacts.ContactWorker) *ContactsHandler {
	return &ContactsHandler{newWorker: newWorker}
}

// ListContacts returns every stored contact.
func (h *ContactsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	list, err := runWorker(r.Context(), "contacts.List", h.newWorker,
		func(ctx context.Context, worker contacts.ContactWorker) ([]models.Contact, error) {
			return worker.List(ctx)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSONResponse(w, list)
}

// AddContact stores the contact in the request body and returns it with its id.
func (h *ContactsHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	input, err := decodeContactInput(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	contact, err := runWorker(r.Context(), "contacts.Add", h.newWorker,
		func(ctx context.Context, worker contacts.ContactWorker) (models.Contact, error) {
			return worker.Add(ctx, input)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSONResponse(w, contact)
}

// UpdateContact overwrites name and email of the contact in the path.
func (h *ContactsHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	input, err := decodeContactInput(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	contact, err := runWorker(r.Context(), "contacts.Update", h.newWorker,
		func(ctx context.Context, worker contacts.ContactWorker) (models.Contact, error) {
			return worker.Update(ctx, id, input)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSONResponse(w, contact)
}

// DeleteContact removes the contact in the path.
func (h *ContactsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, err := runWorker(r.Context(), "contacts.Delete", h.newWorker,
		func(ctx context.Context, worker contacts.ContactWorker) (struct{}, error) {
			return struct{}{}, worker.Delete(ctx, id)
		})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteText(w, "ok!")
}

func decodeContactInput(w http.ResponseWriter, r *http.Request) (models.ContactInput, error) {
	var input models.ContactInput
	if err := decodeJSON(w, r, &input); err != nil {
		return models.ContactInput{}, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return models.ContactInput{}, invalidRequest("contact name is required")
	}
	return input, nil
}
