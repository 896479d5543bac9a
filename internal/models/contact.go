package models

// Contact is a locally persisted name/email record.
type Contact struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// ContactInput is the client-supplied part of a contact.
// Any id in a create payload is ignored; the store assigns one.
type ContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
