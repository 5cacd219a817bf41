// ABOUTME: OpenAI chat-completions passthrough for starship questions
// ABOUTME: Builds a per-ship prompt and extracts the first choice's content

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hangarbay/starship-api/internal/store"
)

// ErrNoAPIKey is returned when the OpenAI key is not configured
var ErrNoAPIKey = errors.New("openai api key missing")

const systemPrompt = "You are a Star Wars starship expert. Answer user questions using real ship specs, " +
	"Star Wars lore, and technical perspective. Keep answers under 150 words."

// Client forwards starship questions to an OpenAI-compatible completion API
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates an AI client. baseURL is the API root
// (e.g. "https://api.openai.com"); it is overridable for tests.
func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  slog.Default().With("component", "ai"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AskStarshipQuestion sends a question about the given ship and returns the
// model's answer. Returns ErrNoAPIKey when no key is configured.
func (c *Client) AskStarshipQuestion(ctx context.Context, ship *store.Starship, question string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	userPrompt := fmt.Sprintf(
		"Starship: %s\nModel: %s\nClass: %s\nManufacturer: %s\nSpeed: %s\nCrew: %s\n\nUser question: %s",
		ship.Name, ship.Model, ship.StarshipClass, ship.Manufacturer,
		ship.MaxAtmospheringSpeed, ship.Crew, question,
	)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion api: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion api: empty choices")
	}

	c.logger.Debug("answered starship question", "ship", ship.Name)
	return parsed.Choices[0].Message.Content, nil
}
