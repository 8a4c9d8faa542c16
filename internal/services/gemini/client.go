// Package gemini calls the Google Generative Language API to answer
// questions about extracted document text.
//
// The request format is the generateContent REST endpoint. The credential is
// passed per request — the same client serves both the shared trial key and
// user-supplied keys.
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
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Sentinel errors for failure classification. Callers use errors.Is — the
// wrapped error carries the provider detail.
var (
	// ErrInvalidCredential means the provider rejected the API key.
	ErrInvalidCredential = errors.New("gemini: invalid API key")
	// ErrProvider covers every other provider-side failure, including timeouts.
	ErrProvider = errors.New("gemini: provider error")
)

// Client calls the Gemini API.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a Gemini client for the given model.
func New(model string, timeout time.Duration) *Client {
	return &Client{
		model:   model,
		baseURL: defaultBaseURL,
		// Go Pattern: Always configure timeouts on HTTP clients.
		// The default http.Client has NO timeout — requests can hang forever!
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// --- Gemini API types ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Ask sends the document text and question to Gemini and returns the answer.
//
// This is a single attempt — no internal retries. A transient provider
// failure surfaces as ErrProvider and the caller decides whether to re-ask.
func (c *Client) Ask(ctx context.Context, apiKey, documentText, question string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: buildPrompt(documentText, question)}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// The key goes in a header, not the query string, so it never ends up
	// in access logs.
	req.Header.Set("x-goog-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are provider errors to the caller.
		return "", fmt.Errorf("%w: request failed: %v", ErrProvider, err)
	}
	defer resp.Body.Close() // Go Pattern: ALWAYS close response bodies!

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrProvider, err)
	}

	if genResp.Error != nil {
		return "", classifyAPIError(genResp.Error.Code, genResp.Error.Status, genResp.Error.Message)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no response from model", ErrProvider)
	}

	var answer strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		answer.WriteString(p.Text)
	}
	return strings.TrimSpace(answer.String()), nil
}

// classifyHTTPError sorts a non-200 response into credential vs provider failure.
func classifyHTTPError(status int, body []byte) error {
	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err == nil && genResp.Error != nil {
		return classifyAPIError(status, genResp.Error.Status, genResp.Error.Message)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: Gemini returned %d", ErrInvalidCredential, status)
	}
	return fmt.Errorf("%w: Gemini returned %d: %s", ErrProvider, status, string(body))
}

// classifyAPIError maps Gemini's structured error to our sentinels.
//
// An invalid key comes back as 400 INVALID_ARGUMENT with an "API key not
// valid" message; expired or restricted keys surface as 401/403.
func classifyAPIError(code int, status, message string) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrInvalidCredential, message)
	case strings.Contains(strings.ToLower(message), "api key"):
		return fmt.Errorf("%w: %s", ErrInvalidCredential, message)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrProvider, message, status)
	}
}

// maxDocumentLen bounds the document portion of the prompt to stay well
// inside token limits.
const maxDocumentLen = 30000

// buildPrompt constructs the question-answering prompt.
func buildPrompt(documentText, question string) string {
	truncated := documentText
	if len(documentText) > maxDocumentLen {
		truncated = documentText[:maxDocumentLen] + "\n\n[Document truncated due to length...]"
	}

	return fmt.Sprintf(`Based on the following document content, please answer the question.
If you can't find the specific information in the document, say so.

Document content:
%s

Question: %s

Answer:`, truncated, question)
}
