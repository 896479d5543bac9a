package models

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
