package dto

// ErrorResponse is the body of every failed admin API call. Validation, missing resources and
// acknowledgement conflicts all carry the service error text.
type ErrorResponse struct {
	Error string `json:"error"`
}
