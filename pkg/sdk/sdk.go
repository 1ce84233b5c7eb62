package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the webinar backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Schedule a new webinar
func (c *Client) CreateWebinar(ctx context.Context, req *CreateWebinarRequest) (*Webinar, error) {
	path := "/api/webinars"

	var out ApiResponse[Webinar]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	if out.Data.ID == "" {
		return nil, fmt.Errorf("no id returned")
	}

	return &out.Data, nil
}

// Get a webinar by ID
func (c *Client) GetWebinar(ctx context.Context, id string) (*Webinar, error) {
	path := fmt.Sprintf("/api/webinars/%s", id)

	var out ApiResponse[Webinar]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status == StatusError {
		return nil, fmt.Errorf("error getting webinar (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}

// List all webinars
func (c *Client) ListWebinars(ctx context.Context) ([]Webinar, error) {
	path := "/api/webinars"

	var out ApiResponse[[]Webinar]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// Register a user for a webinar
func (c *Client) Register(ctx context.Context, webinarID, userID string) error {
	path := fmt.Sprintf("/api/webinars/%s/register", webinarID)

	return c.doJSON(ctx, http.MethodPost, path, &RegisterRequest{UserID: userID}, nil)
}

// Post a chat message to a webinar
func (c *Client) PostChat(ctx context.Context, webinarID string, req *PostChatRequest) error {
	path := fmt.Sprintf("/api/webinars/%s/chat", webinarID)

	return c.doJSON(ctx, http.MethodPost, path, req, nil)
}

// Ask a question against the live webinar context
func (c *Client) AnswerQuestion(ctx context.Context, req *AnswerRequest) (*AnswerResponse, error) {
	path := "/api/ai/answer"

	var out ApiResponse[AnswerResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Trigger summary generation for a webinar
func (c *Client) Summarize(ctx context.Context, req *SummarizeRequest) (*Summary, error) {
	path := "/api/ai/summarize"

	var out ApiResponse[Summary]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Fetch the final summary for a webinar, generating it if missing
func (c *Client) FinalSummary(ctx context.Context, webinarID string) (*Summary, error) {
	path := fmt.Sprintf("/api/webinars/%s/summary", webinarID)

	var out ApiResponse[Summary]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[BACKEND]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
