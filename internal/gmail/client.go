package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

// Message is an outgoing email with a single attachment.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	AttachmentMime string
	Attachment     []byte
}

// APIError reports a non-2xx response from the Gmail API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gmail api error: %s (%d %s)", e.Message, e.StatusCode, e.Status)
}

// Client talks to the Gmail REST API using stored OAuth credentials.
type Client struct {
	credsFile  string
	tokenFile  string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gmail client reading OAuth credentials from the
// given client secret and token files.
func NewClient(credsFile, tokenFile string) *Client {
	return &Client{
		credsFile: credsFile,
		tokenFile: tokenFile,
		baseURL:   defaultBaseURL,
	}
}

// CreateDraft creates a Gmail draft and returns the draft ID.
func (c *Client) CreateDraft(ctx context.Context, msg Message) (string, error) {
	raw, err := encodeRaw(msg)
	if err != nil {
		return "", err
	}
	payload := map[string]any{"message": map[string]any{"raw": raw}}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/users/me/drafts", payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Send sends the message immediately and returns the message ID.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	raw, err := encodeRaw(msg)
	if err != nil {
		return "", err
	}
	payload := map[string]any{"raw": raw}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/users/me/messages/send", payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	httpClient := c.httpClient
	if httpClient == nil {
		var err error
		httpClient, err = c.authClient(ctx)
		if err != nil {
			return err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gmail request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gmail response read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrAuth, apiErr)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("gmail response parse: %w", err)
		}
	}
	return nil
}

func decodeAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.Status = envelope.Error.Status
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = "request failed"
		}
	}
	return apiErr
}
