package entity

// Deliverability classifications returned by the reputation provider.
const (
	DeliverabilityDeliverable   = "DELIVERABLE"
	DeliverabilityUndeliverable = "UNDELIVERABLE"
	DeliverabilityRisky         = "RISKY"
	DeliverabilityUnknown       = "UNKNOWN"
)

// EmailVerificationResult is the remapped outcome of a reputation lookup.
// It is ephemeral and never persisted.
type EmailVerificationResult struct {
	Email        string `json:"email"`
	Verified     bool   `json:"verified"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
}
