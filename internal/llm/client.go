package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"artistpulse/internal/config"
	"artistpulse/internal/metrics"
)

// Attachment is an extra user content block: an image reference or text.
type Attachment struct {
	ImageURL string
	Text     string
}

// ImageAttachment wraps a URL (or data URL) as an image block.
func ImageAttachment(url string) Attachment { return Attachment{ImageURL: url} }

// TextAttachment wraps a text block.
func TextAttachment(text string) Attachment { return Attachment{Text: text} }

// StructuredRequest is a chat completion whose answer must follow Schema.
type StructuredRequest struct {
	System      string
	Prompt      string
	Attachments []Attachment
	SchemaName  string
	Schema      map[string]any
}

// Client talks to an OpenAI-compatible API.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	searchModel string
	httpClient  *http.Client
}

func NewClient(cfg config.LLMConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &Client{
		baseURL:     base,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		searchModel: cfg.SearchModel,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentBlock struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
			Refusal *string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete runs a structured chat completion and returns the raw JSON answer.
func (c *Client) Complete(ctx context.Context, r StructuredRequest) ([]byte, error) {
	blocks := []contentBlock{{Type: "text", Text: r.Prompt}}
	for _, a := range r.Attachments {
		switch {
		case a.ImageURL != "":
			blocks = append(blocks, contentBlock{Type: "image_url", ImageURL: &imageURL{URL: a.ImageURL}})
		case a.Text != "":
			blocks = append(blocks, contentBlock{Type: "text", Text: a.Text})
		}
	}
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: r.System},
			{Role: "user", Content: blocks},
		},
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: r.SchemaName, Strict: true, Schema: r.Schema},
		},
	}
	resp, err := c.post(ctx, "complete", "/chat/completions", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &RequestError{Op: "complete", StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("complete: no choices: %w", ErrSchemaValidation)
	}
	msg := raw.Choices[0].Message
	if msg.Refusal != nil && *msg.Refusal != "" {
		return nil, fmt.Errorf("complete: model refused (%s): %w", *msg.Refusal, ErrSchemaValidation)
	}
	if msg.Content == nil || strings.TrimSpace(*msg.Content) == "" {
		return nil, fmt.Errorf("complete: empty content: %w", ErrSchemaValidation)
	}
	return []byte(*msg.Content), nil
}

type searchRequest struct {
	Model string           `json:"model"`
	Tools []map[string]any `json:"tools"`
	Input string           `json:"input"`
}

// SearchText runs a web-search-augmented completion and returns its free text.
func (c *Client) SearchText(ctx context.Context, prompt string) (string, error) {
	body := searchRequest{
		Model: c.searchModel,
		Tools: []map[string]any{{"type": "web_search_preview"}},
		Input: prompt,
	}
	resp, err := c.post(ctx, "web_search", "/responses", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	text, err := parseOutputText(resp.Body)
	if err != nil {
		return "", &RequestError{Op: "web_search", StatusCode: resp.StatusCode, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("web_search: empty output: %w", ErrSchemaValidation)
	}
	return text, nil
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncUpstream("llm", 0)
		return nil, &RequestError{Op: op, Err: err}
	}
	metrics.IncUpstream("llm", resp.StatusCode)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))}
	}
	return resp, nil
}

// parseOutputText pulls the assistant text out of a Responses API payload.
// The convenience output_text field is used when present; otherwise the
// output_text blocks of every message item are concatenated.
func parseOutputText(r io.Reader) (string, error) {
	var raw struct {
		OutputText *string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if raw.OutputText != nil && *raw.OutputText != "" {
		return *raw.OutputText, nil
	}
	var sb strings.Builder
	for _, item := range raw.Output {
		if item.Type != "message" {
			continue
		}
		for _, blk := range item.Content {
			if blk.Type == "output_text" {
				sb.WriteString(blk.Text)
			}
		}
	}
	return sb.String(), nil
}
