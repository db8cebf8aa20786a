package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/lbjllc/travelbook/internal/domain"
)

const textPath = "candidates.0.content.parts.0.text"

// GeminiClient calls the generateContent REST endpoint. One attempt per call:
// no retry, no backoff, no timeout beyond the caller's context.
type GeminiClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type GeminiOption func(*GeminiClient)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *GeminiClient) { g.httpClient = c }
}

func NewGeminiClient(endpoint, apiKey string, opts ...GeminiOption) *GeminiClient {
	g := &GeminiClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Complete implements domain.Completer. The returned text has any ```json
// fence removed.
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &domain.TransportError{Op: "encode request", Err: err}
	}

	u, err := url.Parse(g.endpoint)
	if err != nil {
		return "", &domain.TransportError{Op: "parse endpoint", Err: err}
	}
	q := u.Query()
	q.Set("key", g.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", &domain.TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &domain.TransportError{Op: "post completion", Err: redactKey(err, g.apiKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.APIError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{Op: "read response", Err: err}
	}
	if !gjson.ValidBytes(data) {
		return "", &domain.TransportError{Op: "decode response", Err: errors.New("body is not valid JSON")}
	}

	text := gjson.GetBytes(data, textPath)
	if text.Type != gjson.String {
		return "", &domain.TransportError{Op: "decode response", Err: fmt.Errorf("no text at %s", textPath)}
	}

	return ExtractJSON(text.String()), nil
}

// redactKey keeps the API key out of error strings; *url.Error embeds the full URL.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("%s %s: %w", uerr.Op, "<completion endpoint>", uerr.Err)
}
