package entity

// BusinessMetrics scores a venue on four axes, each nominally 0-100.
type BusinessMetrics struct {
	Reputation float64 `json:"reputation"`
	Visibility float64 `json:"visibility"`
	Quality    float64 `json:"quality"`
	Price      float64 `json:"price"`
}

// BusinessAttributes captures operational traits relevant to a POS sale.
type BusinessAttributes struct {
	Terrace      bool   `json:"terrace"`
	Reservations bool   `json:"reservations"`
	CardType     string `json:"cardType"`
}

// TechStackItem is a detected vendor tool, e.g. {"CoverManager", "RESERVAS"}.
type TechStackItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DecisionMaker is a person with purchase authority at the target business.
type DecisionMaker struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Validation string `json:"validation"`
	Source     string `json:"source,omitempty"`
}

// DeepAnalysis is the narrative research section with its raw source list.
type DeepAnalysis struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// ContactInfo holds contact vectors; every field is optional.
type ContactInfo struct {
	Address     string `json:"address,omitempty"`
	Website     string `json:"website,omitempty"`
	Phone       string `json:"phone,omitempty"`
	PhoneSource string `json:"phoneSource,omitempty"`
	UberEatsURL string `json:"uberEatsUrl,omitempty"`
	Domain      string `json:"domain,omitempty"`
	OSINTNotes  string `json:"osintNotes,omitempty"`
}

// EmailVector is a candidate outreach address with provenance and risk.
type EmailVector struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	Risk  string `json:"risk"`
}

// OutreachVariant is one draft sales email.
type OutreachVariant struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ConversationStarter is a recent-news icebreaker.
type ConversationStarter struct {
	Headline string `json:"headline"`
	Context  string `json:"context"`
	Date     string `json:"date,omitempty"`
}

// BusinessSource is a web citation attached by the grounding metadata.
type BusinessSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// BusinessProfile is the full OSINT research result for one venue.
//
// The model payload is forwarded to callers as-is, so at runtime the profile
// travels as a generic JSON object; this type documents the contract and
// backs the schema sync test and the history CSV export. Fields the model
// omitted simply stay zero-valued.
type BusinessProfile struct {
	BusinessName         string                `json:"businessName"`
	City                 string                `json:"city"`
	Summary              string                `json:"summary"`
	Score                float64               `json:"score"`
	Metrics              BusinessMetrics       `json:"metrics"`
	Attributes           BusinessAttributes    `json:"attributes"`
	TechStack            []TechStackItem       `json:"techStack"`
	PotentialIntegration bool                  `json:"potentialIntegration"`
	DecisionMakers       []DecisionMaker       `json:"decisionMakers"`
	DeepAnalysis         DeepAnalysis          `json:"deepAnalysis"`
	Contact              ContactInfo           `json:"contact"`
	EmailVectors         []EmailVector         `json:"emailVectors"`
	Outreach             []OutreachVariant     `json:"outreach"`
	ConversationStarters []ConversationStarter `json:"conversationStarters"`
	PriceLevel           string                `json:"priceLevel"`
	CuisineType          string                `json:"cuisineType"`
	GoogleSearchSources  []BusinessSource      `json:"googleSearchSources,omitempty"`
}
