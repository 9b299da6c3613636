package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

// Sentinel errors for the email verification path.
var (
	ErrEmailRequired             = errors.New("email is required")
	ErrMissingVerifierCredential = errors.New("email reputation API key not configured")
)

// ReputationError carries the provider's HTTP status; the handler forwards
// it verbatim, unlike the inference path which always maps to 500.
type ReputationError struct {
	Status int
}

func (e *ReputationError) Error() string {
	return fmt.Sprintf("email reputation provider returned HTTP %d", e.Status)
}

// Defaults for the reputation lookup.
const (
	DefaultReputationBaseURL = "https://emailreputation.abstractapi.com"
	DefaultVerifyTimeout     = 15 * time.Second
)

// EmailVerifier performs single-shot deliverability lookups against the
// reputation provider.
type EmailVerifier struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewEmailVerifier builds a verifier. Credentials are captured once; an
// empty key fails every lookup before any network I/O.
func NewEmailVerifier(httpClient *http.Client, apiKey, baseURL string, timeout time.Duration) *EmailVerifier {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultReputationBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	return &EmailVerifier{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

type reputationResponse struct {
	Deliverability string `json:"deliverability"`
	QualityScore   any    `json:"quality_score"`
}

// Verify checks one address and remaps the provider's classification into
// the three-field result.
func (v *EmailVerifier) Verify(ctx context.Context, email string) (*entity.EmailVerificationResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if v.apiKey == "" {
		return nil, ErrMissingVerifierCredential
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/?api_key=%s&email=%s", v.baseURL, url.QueryEscape(v.apiKey), url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create reputation request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email reputation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ReputationError{Status: resp.StatusCode}
	}

	var data reputationResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode reputation response: %w", err)
	}

	status := normalizeDeliverability(data.Deliverability)
	return &entity.EmailVerificationResult{
		Email:        email,
		Verified:     status == entity.DeliverabilityDeliverable,
		Status:       status,
		StatusDetail: qualityDetail(data.QualityScore),
	}, nil
}

// normalizeDeliverability upper-cases the provider's classification and
// folds anything outside the documented set into UNKNOWN.
func normalizeDeliverability(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case entity.DeliverabilityDeliverable:
		return entity.DeliverabilityDeliverable
	case entity.DeliverabilityUndeliverable:
		return entity.DeliverabilityUndeliverable
	case entity.DeliverabilityRisky:
		return entity.DeliverabilityRisky
	default:
		return entity.DeliverabilityUnknown
	}
}

// qualityDetail renders the provider's quality score, which arrives as a
// number or a string depending on the plan tier.
func qualityDetail(score any) string {
	switch v := score.(type) {
	case nil:
		return "No quality score"
	case string:
		if strings.TrimSpace(v) == "" {
			return "No quality score"
		}
		return fmt.Sprintf("Quality: %s", v)
	case float64:
		if v == 0 {
			return "No quality score"
		}
		return fmt.Sprintf("Quality: %v", v)
	default:
		return fmt.Sprintf("Quality: %v", v)
	}
}
