// Package cairocoder is a client for the Cairo Coder chat completions API.
//
// A Client sends exactly one POST per Complete call: a JSON body holding
// the conversation messages, plus Content-Type and API key headers. It
// returns choices[0].message.content of the response. Failed calls are
// never retried.
package cairocoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/cairofix/pkg/llm"
	"github.com/papercomputeco/cairofix/pkg/logger"
	"github.com/papercomputeco/cairofix/pkg/utils"
)

const (
	// DefaultEndpoint is the hosted Cairo Coder chat completions URL.
	DefaultEndpoint = "https://api.cairo-coder.com/v1/chat/completions"

	// DefaultAuthHeader carries the API key.
	DefaultAuthHeader = "x-api-key"

	// MaxResponseBytes is the largest response body accepted.
	MaxResponseBytes = 16 << 20

	// DefaultTimeout bounds a call when no timeout is configured. LLM
	// responses can be slow.
	DefaultTimeout = 5 * time.Minute

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = MaxResponseBytes

	// maxErrorBodyLen caps the body kept in a StatusError.
	maxErrorBodyLen = 512
)

// Client invokes the Cairo Coder API.
type Client struct {
	endpoint   string
	apiKey     string
	authHeader string
	timeout    time.Duration
	http       *http.Client
	logger     *slog.Logger
}

// New creates a Client. Unset options fall back to DefaultEndpoint,
// DefaultAuthHeader, DefaultTimeout, http.DefaultClient and a no-op logger.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		authHeader: DefaultAuthHeader,
		timeout:    DefaultTimeout,
		http:       http.DefaultClient,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// NewRequest returns the payload for a single user message.
func NewRequest(prompt string) *llm.ChatRequest {
	return llm.NewChatRequest(llm.NewUserMessage(prompt))
}

// NewHTTPRequest builds the POST for req with both required headers set.
func (c *Client) NewHTTPRequest(ctx context.Context, req *llm.ChatRequest) (*http.Request, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if req == nil {
		return nil, errors.New("nil chat request")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(c.authHeader, c.apiKey)

	return httpReq, nil
}

// Complete sends prompt as a single user message and returns the content
// of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteRequest(ctx, NewRequest(prompt))
}

// CompleteRequest sends req once and returns the content of the first choice.
func (c *Client) CompleteRequest(ctx context.Context, req *llm.ChatRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := c.NewHTTPRequest(ctx, req)
	if err != nil {
		return "", err
	}

	log := c.logger.With("request_id", uuid.NewString())
	log.Debug("sending chat completion request",
		"endpoint", c.endpoint,
		"message_count", len(req.Messages),
	)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", &TransportError{Endpoint: c.endpoint, Err: fmt.Errorf("reading response: %w", err)}
	}
	if len(body) > maxResponseBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	log.Debug("received chat completion response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newStatusError(resp.StatusCode, body)
	}

	content, err := ExtractContent(body)
	if err != nil {
		return "", err
	}

	return content, nil
}

// ExtractContent decodes a chat completions body and returns
// choices[0].message.content.
func ExtractContent(body []byte) (string, error) {
	var resp llm.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	content := resp.Choices[0].Message.Content
	if content == nil {
		return "", ErrMissingContent
	}

	return *content, nil
}

func newStatusError(code int, body []byte) *StatusError {
	se := &StatusError{
		StatusCode: code,
		Body:       utils.Truncate(strings.TrimSpace(string(body)), maxErrorBodyLen),
	}

	var envelope llm.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		se.Message = envelope.Error.Message
	}

	return se
}
