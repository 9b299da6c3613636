package service

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/honeilabs/hap-intel/api/internal/gemini"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// ConformanceIssues checks an assembled profile against the declared
// schema: required-field presence, enum membership and metric-range
// advisories. The result is report-only: the upstream generator is too
// variable to reject on, so callers log these and forward the profile
// unchanged.
func ConformanceIssues(profile map[string]any) []string {
	var issues []string

	for _, field := range gemini.BusinessProfileSchema.Required {
		if _, present := profile[field]; !present {
			issues = append(issues, fmt.Sprintf("missing required field %q", field))
		}
	}

	issues = append(issues, metricIssues(profile)...)
	issues = append(issues, enumIssues(profile, "techStack", "category", gemini.TechCategories)...)
	issues = append(issues, enumIssues(profile, "decisionMakers", "validation", gemini.ValidationLevels)...)
	issues = append(issues, enumIssues(profile, "emailVectors", "type", gemini.EmailVectorTypes)...)
	issues = append(issues, enumIssues(profile, "emailVectors", "risk", gemini.EmailVectorRiskLevels)...)
	issues = append(issues, emailVectorIssues(profile)...)
	issues = append(issues, outreachIssues(profile)...)

	return issues
}

func metricIssues(profile map[string]any) []string {
	var issues []string

	if score, ok := numberField(profile, "score"); ok && (score < 0 || score > 100) {
		issues = append(issues, fmt.Sprintf("score %.1f outside the 0-100 range", score))
	}

	metrics, ok := profile["metrics"].(map[string]any)
	if !ok {
		if _, present := profile["metrics"]; present {
			issues = append(issues, "metrics is not an object")
		}
		return issues
	}
	for _, name := range []string{"reputation", "visibility", "quality", "price"} {
		value, ok := numberField(metrics, name)
		if !ok {
			issues = append(issues, fmt.Sprintf("metrics.%s missing or not numeric", name))
			continue
		}
		if value < 0 || value > 100 {
			issues = append(issues, fmt.Sprintf("metrics.%s %.1f outside the 0-100 range", name, value))
		}
	}
	return issues
}

// enumIssues flags entries of an array field whose sub-field value falls
// outside the schema's closed set. Absent sub-fields are covered by the
// required-field pass, not here.
func enumIssues(profile map[string]any, field, sub string, allowed []string) []string {
	items, ok := profile[field].([]any)
	if !ok {
		return nil
	}

	var issues []string
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value := stringField(entry, sub)
		if value == "" {
			continue
		}
		if !contains(allowed, value) {
			issues = append(issues, fmt.Sprintf("%s[%d].%s %q not in %v", field, i, sub, value, allowed))
		}
	}
	return issues
}

// emailVectorIssues sanity-checks inferred addresses: basic shape plus an
// IDNA round trip on the domain, so internationalized domains are judged on
// their ASCII form.
func emailVectorIssues(profile map[string]any) []string {
	items, ok := profile["emailVectors"].([]any)
	if !ok {
		return nil
	}

	var issues []string
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		email := strings.ToLower(stringField(entry, "email"))
		if email == "" {
			issues = append(issues, fmt.Sprintf("emailVectors[%d].email is empty", i))
			continue
		}
		if !emailPattern.MatchString(email) {
			issues = append(issues, fmt.Sprintf("emailVectors[%d].email %q is not a plausible address", i, email))
			continue
		}
		domain := email[strings.LastIndex(email, "@")+1:]
		if ascii, err := idnaProfile.ToASCII(domain); err != nil || ascii == "" {
			issues = append(issues, fmt.Sprintf("emailVectors[%d].email domain %q fails IDNA conversion", i, domain))
		}
	}
	return issues
}

// outreachIssues flags drafts that would render blank. The decoder keeps
// them; presentation filters them; this report makes the gap observable.
func outreachIssues(profile map[string]any) []string {
	items, ok := profile["outreach"].([]any)
	if !ok {
		return nil
	}

	var issues []string
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if stringField(entry, "subject") == "" {
			issues = append(issues, fmt.Sprintf("outreach[%d].subject is blank", i))
		}
		if stringField(entry, "body") == "" {
			issues = append(issues, fmt.Sprintf("outreach[%d].body is blank", i))
		}
	}
	return issues
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
