package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

var (
	// ErrEmptyResponse means the candidate text concatenated to nothing.
	ErrEmptyResponse = errors.New("no data received from the model")
	// ErrMalformedResponse means the model text could not be parsed as JSON
	// even after the brace-window recovery pass.
	ErrMalformedResponse = errors.New("could not parse OSINT data from model response")
)

// envelope is the generateContent response shape we care about.
type envelope struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error"`
}

type candidate struct {
	Content           *candidateContent  `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type candidateContent struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webSource `json:"web"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// DecodeProfileResponse turns a raw generateContent body into the model's
// JSON payload plus the deduplicated citation list.
//
// The payload is returned as a generic object on purpose: required fields
// are declared in the outbound schema but never enforced here, so a
// structurally valid but incomplete profile flows through unchanged.
func DecodeProfileResponse(body []byte) (map[string]any, []entity.BusinessSource, error) {
	env := parseEnvelope(body)

	text := cleanModelText(concatParts(env))
	if text == "" {
		return nil, nil, ErrEmptyResponse
	}

	payload, err := parseModelText(text)
	if err != nil {
		return nil, nil, err
	}

	return payload, collectSources(env), nil
}

// parseEnvelope tolerates a non-JSON body: decoding proceeds with an empty
// envelope so the failure surfaces as ErrEmptyResponse instead of a parse
// error about the provider's transport frame.
func parseEnvelope(body []byte) envelope {
	var env envelope
	if len(body) == 0 {
		return env
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}
	}
	return env
}

func concatParts(env envelope) string {
	if len(env.Candidates) == 0 || env.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range env.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// cleanModelText strips Markdown code fences the model occasionally wraps
// its JSON in, despite being asked for a bare document.
func cleanModelText(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseModelText parses the cleaned text as JSON. When the direct parse
// fails the text usually carries prose around an otherwise valid object, so
// a second attempt parses the window between the first '{' and the last '}'.
func parseModelText(text string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		return payload, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrMalformedResponse
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, ErrMalformedResponse
	}
	return payload, nil
}

// collectSources projects grounding chunks to citations. Chunks missing a
// uri or a title are dropped entirely; duplicates by uri keep the first
// occurrence and its title, preserving encounter order.
func collectSources(env envelope) []entity.BusinessSource {
	if len(env.Candidates) == 0 || env.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	chunks := env.Candidates[0].GroundingMetadata.GroundingChunks
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]entity.BusinessSource, 0, len(chunks))
	for _, chunk := range chunks {
		web := chunk.Web
		if web == nil || web.URI == "" || web.Title == "" {
			continue
		}
		if _, dup := seen[web.URI]; dup {
			continue
		}
		seen[web.URI] = struct{}{}
		sources = append(sources, entity.BusinessSource{Title: web.Title, URI: web.URI})
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}
