package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

// ErrMissingCredential is returned before any network I/O when the client
// was constructed without an API key.
var ErrMissingCredential = errors.New("missing Gemini API key")

// UpstreamError carries a non-success provider status with the most
// specific message the response offered.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Defaults for the grounded-generation client.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 60 * time.Second
)

// Client issues generateContent calls with web-search grounding enabled.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient builds a grounded-generation client. The API key is captured
// once at construction; an empty key makes every call fail fast with
// ErrMissingCredential instead of reaching the network.
func NewClient(httpClient *http.Client, apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	Tools            []requestTool    `json:"tools"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type requestTool struct {
	GoogleSearch struct{} `json:"googleSearch"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

// GenerateProfile sends the prompt with the profile schema and the search
// tool enabled, then decodes the reply. Exactly one attempt is made; the
// wall-clock budget aborts the in-flight request when exceeded.
func (c *Client) GenerateProfile(ctx context.Context, prompt string) (map[string]any, []entity.BusinessSource, error) {
	if c.apiKey == "" {
		return nil, nil, ErrMissingCredential
	}

	reqBody, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Role: "user", Parts: []contentPart{{Text: prompt}}}},
		Tools:    []requestTool{{}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   BusinessProfileSchema,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal generate request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, nil, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("OSINT research aborted after %s timeout: %w", c.timeout, err)
		}
		return nil, nil, fmt.Errorf("Gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read Gemini response: %w", err)
	}

	c.logger.Debug("generateContent round trip",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(raw)),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(resp.StatusCode, raw)}
	}

	return DecodeProfileResponse(raw)
}

// upstreamMessage picks the most specific error description available:
// error.message, then error.status, then the raw body, then a template.
func upstreamMessage(status int, raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		if env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Error.Status != "" {
			return env.Error.Status
		}
	}
	if body := strings.TrimSpace(string(raw)); body != "" {
		return body
	}
	return fmt.Sprintf("Gemini API error (HTTP %d).", status)
}
