// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a failed call to the backend.
type ClientError struct {
	Type    ErrorType
	Message string

	// StatusCode and Status are set for ErrTypeRequestFailed.
	// Status is the HTTP status text, e.g. "Internal Server Error".
	StatusCode int
	Status     string

	Cause error
}

func (e *ClientError) Error() string {
	switch {
	case e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	case e.Status != "":
		return e.Message + ": " + e.Status
	default:
		return e.Message
	}
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeRequestFailed means the server answered with a non-2xx status.
	ErrTypeRequestFailed
	// ErrTypeConnection means the request never got a response.
	ErrTypeConnection
	// ErrTypeInvalidRequest means the request could not be built.
	ErrTypeInvalidRequest
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeRequestFailed:
		return "request_failed"
	case ErrTypeConnection:
		return "connection"
	case ErrTypeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// IsRequestFailed reports whether err is a non-2xx response from the backend.
func IsRequestFailed(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeRequestFailed
}

// IsConnectionError reports whether err means the backend could not be reached.
func IsConnectionError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeConnection
}

// IsDecodeFailure reports whether err came from decoding a malformed body.
func IsDecodeFailure(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:8000"

// DefaultChatListLimit is the number of chats requested when no limit is given.
const DefaultChatListLimit = 50

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout bounds each request. Zero means no client-side timeout; the
	// caller's context governs cancellation.
	Timeout time.Duration

	// HTTPClient overrides the underlying client (tests, proxies).
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the NutriRAG backend.
// Each method is a single round trip; there is no retry and no caching.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: cfg.API.BaseURL})
//	chatID, err := client.CreateChat(ctx, "Dieta baja en sodio")
//	resp, err := client.Query(ctx, backend.QueryRequest{Query: q, ChatID: chatID})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// BaseURL returns the backend base URL in use.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// QUERY AND HEALTH
// =============================================================================

// Query asks the backend to answer a question.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var result QueryResponse
	if err := c.do(ctx, http.MethodPost, "/api/query", req, &result, "API error"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &result, "health check failed"); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// CreateChat creates a chat with the given title and returns its id.
func (c *Client) CreateChat(ctx context.Context, title string) (string, error) {
	var result CreateChatResponse
	err := c.do(ctx, http.MethodPost, "/api/chats", CreateChatRequest{Title: title}, &result, "failed to create chat")
	if err != nil {
		return "", err
	}
	return result.ChatID, nil
}

// ListChats returns up to limit chats in backend order. A limit of 0 or less
// requests DefaultChatListLimit.
func (c *Client) ListChats(ctx context.Context, limit int) ([]model.Chat, error) {
	if limit <= 0 {
		limit = DefaultChatListLimit
	}
	var result ListChatsResponse
	path := "/api/chats?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &result, "failed to list chats"); err != nil {
		return nil, err
	}
	return result.Chats, nil
}

// GetChat returns the stored messages of a chat in chronological order.
func (c *Client) GetChat(ctx context.Context, chatID string) ([]ChatMessage, error) {
	var result ChatMessagesResponse
	path := "/api/chats/" + url.PathEscape(chatID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result, "failed to get chat"); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// DeleteChat deletes a chat. The response body is ignored.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	path := "/api/chats/" + url.PathEscape(chatID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "failed to delete chat")
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one round trip. body is JSON-encoded when non-nil; out, when
// non-nil, receives the decoded response. failMsg prefixes non-2xx errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to reach backend", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &ClientError{
			Type:       ErrTypeRequestFailed,
			Message:    failMsg,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusText extracts the reason phrase from a response ("Not Found"),
// falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
