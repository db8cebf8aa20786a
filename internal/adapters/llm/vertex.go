package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/lbjllc/travelbook/internal/domain"
)

// VertexClient is a domain.Completer backed by Vertex AI (Gemini) through the genai SDK.
type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a completer for the given project and region.
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project and location are required for Vertex AI")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements domain.Completer with the same error taxonomy and
// fence handling as GeminiClient.
func (v *VertexClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(8192),
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", classifyVertexError(err)
	}

	text := res.Text()
	if text == "" {
		return "", &domain.TransportError{Op: "vertex generate content", Err: errors.New("empty text")}
	}
	return ExtractJSON(text), nil
}

func classifyVertexError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.APIError{Status: apiErr.Code}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &domain.APIError{Status: apiErrPtr.Code}
	}
	return &domain.TransportError{Op: "vertex generate content", Err: err}
}
