package service

import (
	"context"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

const defaultPhoneRegion = "ES"

// ProfileGenerator abstracts the grounded-generation client so the service
// can be tested without network access.
type ProfileGenerator interface {
	GenerateProfile(ctx context.Context, prompt string) (map[string]any, []entity.BusinessSource, error)
}

// ProfileService runs one OSINT research pass: prompt, inference, assembly
// and the domain-boundary normalizations.
type ProfileService struct {
	generator   ProfileGenerator
	phoneRegion string
	logger      *zap.Logger
}

// NewProfileService wires a profile service. phoneRegion is the default
// region for parsing national phone numbers found by the model.
func NewProfileService(generator ProfileGenerator, phoneRegion string, logger *zap.Logger) *ProfileService {
	region := strings.ToUpper(strings.TrimSpace(phoneRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{generator: generator, phoneRegion: region, logger: logger}
}

// Research produces a business profile for the given venue. The decoded
// payload is forwarded as-is (missing fields are the presentation layer's
// problem) but conformance issues are logged so data quality stays visible.
func (s *ProfileService) Research(ctx context.Context, businessName, city string) (map[string]any, error) {
	prompt := BuildProfilePrompt(businessName, city)

	payload, sources, err := s.generator.GenerateProfile(ctx, prompt)
	if err != nil {
		return nil, err
	}

	profile := AssembleProfile(payload, sources)
	NormalizeOutreach(profile)
	s.normalizePhone(profile)

	if issues := ConformanceIssues(profile); len(issues) > 0 {
		s.logger.Warn("profile payload does not fully conform to the declared schema",
			zap.String("business_name", businessName),
			zap.String("city", city),
			zap.Strings("issues", issues),
		)
	}

	return profile, nil
}

// AssembleProfile shallow-merges the decoded payload with the citation
// list. The input map is not mutated and no defaults are backfilled, so
// assembling the same inputs twice yields identical output.
func AssembleProfile(payload map[string]any, sources []entity.BusinessSource) map[string]any {
	profile := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		profile[k] = v
	}
	if sources == nil {
		sources = []entity.BusinessSource{}
	}
	profile["googleSearchSources"] = sources
	return profile
}

// NormalizeOutreach rewrites the legacy single-object outreach shape into
// the canonical one-element array. Older model snapshots produced the
// object form; callers only ever see the sequence form.
func NormalizeOutreach(profile map[string]any) {
	if single, ok := profile["outreach"].(map[string]any); ok {
		profile["outreach"] = []any{single}
	}
}

// normalizePhone rewrites contact.phone to E.164 when it parses as a valid
// number. Unparseable values are left untouched rather than dropped; the
// raw string may still be useful to a human.
func (s *ProfileService) normalizePhone(profile map[string]any) {
	contact, ok := profile["contact"].(map[string]any)
	if !ok {
		return
	}
	raw, ok := contact["phone"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	number, err := phonenumbers.Parse(strings.TrimSpace(raw), s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		s.logger.Debug("keeping unnormalized phone", zap.String("phone", raw))
		return
	}
	contact["phone"] = phonenumbers.Format(number, phonenumbers.E164)
}

// stringField fetches a trimmed string value from a generic profile map.
func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}

// numberField fetches a numeric value; ok reports whether it was a number.
func numberField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
