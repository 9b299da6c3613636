package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func successBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{"parts": []map[string]any{{"text": `{"businessName":"Casa Pepe"}`}}},
		}},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return string(body)
}

func TestClient_GenerateProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var captured *http.Request
		var requestBody []byte
		httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			captured = req
			requestBody, _ = io.ReadAll(req.Body)
			return jsonResponse(http.StatusOK, successBody(t)), nil
		})}

		client := NewClient(httpClient, "test-key", "https://example.test", "test-model", time.Minute, nil)
		payload, _, err := client.GenerateProfile(context.Background(), "investigate Casa Pepe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload["businessName"] != "Casa Pepe" {
			t.Fatalf("expected decoded payload, got %v", payload)
		}

		if captured.URL.String() != "https://example.test/v1beta/models/test-model:generateContent" {
			t.Fatalf("unexpected url %s", captured.URL)
		}
		if captured.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("expected api key header, got %q", captured.Header.Get("x-goog-api-key"))
		}

		var req map[string]any
		if err := json.Unmarshal(requestBody, &req); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		tools, ok := req["tools"].([]any)
		if !ok || len(tools) != 1 {
			t.Fatalf("expected one tool entry, got %v", req["tools"])
		}
		if _, ok := tools[0].(map[string]any)["googleSearch"]; !ok {
			t.Fatalf("expected googleSearch tool, got %v", tools[0])
		}
		genCfg, ok := req["generationConfig"].(map[string]any)
		if !ok || genCfg["responseMimeType"] != "application/json" {
			t.Fatalf("expected JSON response mime type, got %v", req["generationConfig"])
		}
		if _, ok := genCfg["responseSchema"]; !ok {
			t.Fatal("expected responseSchema in generationConfig")
		}
	})

	t.Run("missing credential fails before network", func(t *testing.T) {
		called := false
		httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			called = true
			return jsonResponse(http.StatusOK, successBody(t)), nil
		})}

		client := NewClient(httpClient, "", "", "", 0, nil)
		_, _, err := client.GenerateProfile(context.Background(), "prompt")
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got %v", err)
		}
		if called {
			t.Fatal("expected no outbound request")
		}
	})

	t.Run("upstream error message extraction", func(t *testing.T) {
		cases := []struct {
			name string
			body string
			want string
		}{
			{"error.message", `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, "Quota exceeded"},
			{"error.status fallback", `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`, "RESOURCE_EXHAUSTED"},
			{"raw body fallback", `service unavailable`, "service unavailable"},
			{"empty body template", ``, "Gemini API error (HTTP 503)."},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
					return jsonResponse(http.StatusServiceUnavailable, tc.body), nil
				})}

				client := NewClient(httpClient, "key", "", "", time.Minute, nil)
				_, _, err := client.GenerateProfile(context.Background(), "prompt")

				var upstream *UpstreamError
				if !errors.As(err, &upstream) {
					t.Fatalf("expected UpstreamError, got %v", err)
				}
				if upstream.Status != http.StatusServiceUnavailable {
					t.Fatalf("expected status 503, got %d", upstream.Status)
				}
				if upstream.Message != tc.want {
					t.Fatalf("expected message %q, got %q", tc.want, upstream.Message)
				}
			})
		}
	})

	t.Run("timeout surfaces the budget", func(t *testing.T) {
		httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, &timeoutError{req.Context().Err()}
		})}

		client := NewClient(httpClient, "key", "", "", 10*time.Millisecond, nil)
		_, _, err := client.GenerateProfile(context.Background(), "prompt")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "aborted after 10ms timeout") {
			t.Fatalf("expected abort message with budget, got %q", err.Error())
		}
	})
}

// timeoutError wraps the context error the way net/http does, so errors.Is
// still resolves context.DeadlineExceeded through it.
type timeoutError struct{ err error }

func (e *timeoutError) Error() string { return "request canceled: " + e.err.Error() }
func (e *timeoutError) Unwrap() error { return e.err }
