package dto

// VerifyEmailRequest is the payload for the email verification endpoint.
type VerifyEmailRequest struct {
	Email string `json:"email"`
}
