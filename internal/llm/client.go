// Package llm implements the text-completion collaborator over a
// Gemini-style REST API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/errors"
)

// Client implements the Service interface against the generative language API
type Client struct {
	config     config.CompletionConfig
	httpClient *http.Client
	model      string
}

// NewClient creates a client with the default model. Call SelectModel to
// pick a better one from the service's listing.
func NewClient(cfg config.CompletionConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
		model:      DefaultModel,
	}
}

// Model returns the currently selected model identifier
func (c *Client) Model() string {
	return c.model
}

type listModelsResponse struct {
	Models []modelInfo `json:"models"`
}

type modelInfo struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SelectModel queries the model listing once and picks a model by the fixed
// preference order. Listing failures and empty listings fall back to the
// hardcoded default rather than failing startup.
func (c *Client) SelectModel(ctx context.Context) string {
	available, err := c.listAvailableModels(ctx)
	if err != nil || len(available) == 0 {
		c.model = DefaultModel
		return c.model
	}

	for _, preferred := range preferredModels {
		for _, name := range available {
			if strings.Contains(name, preferred) {
				c.model = name
				return c.model
			}
		}
	}

	c.model = available[0]

	return c.model
}

func (c *Client) listAvailableModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.ListTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/models?key=%s", c.config.BaseURL, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model listing returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var listing listModelsResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, err
	}

	var available []string

	for _, m := range listing.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				available = append(available, strings.TrimPrefix(m.Name, "models/"))
				break
			}
		}
	}

	return available, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Complete sends the prompt with temperature 0 and the configured output
// budget, and extracts the first candidate's text
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.CompleteTimeout)
	defer cancel()

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeCompletionService, "failed to marshal request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeCompletionService, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeCompletionService, "completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeCompletionService, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrTypeCompletionService,
			"completion returned status %d: %s", resp.StatusCode, string(body))
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeCompletionService, "failed to parse response")
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.ErrTypeEmptyCompletion, "no completion candidates returned")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
