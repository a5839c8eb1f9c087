// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway is the HTTP client for the assist backend.
//
// It covers every operation the TUI performs: login/registration, chat
// history hydration, multipart chat sends, and the admin monitoring
// endpoints. Failures surface uniformly as *APIError carrying the backend's
// human-readable message; callers never inspect transport detail beyond
// that.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/assist-tui/internal/model"
)

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	// maxAttachmentSize caps uploaded files; the backend extracts text
	// from PDFs and spreadsheets and chokes on anything bigger.
	maxAttachmentSize = 25 * 1024 * 1024 // 25MB

	userAgent = "assist-tui/1.0"
)

// sharedTransport pools connections across all backend requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Sentinel errors for conditions callers branch on.
var (
	// ErrUnavailable indicates the backend could not be reached at all.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrAttachmentTooLarge indicates the staged file exceeds the upload cap.
	ErrAttachmentTooLarge = errors.New("attachment too large")
)

// APIError is a failure reported by the backend. Message is the backend's
// "error" field when it sent one, otherwise empty.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// ErrorMessage extracts the backend's human-readable message from err, or
// returns fallback. This is the one place the UI gets its inline error text.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the assist backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given backend origin.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates with email and password. A LoginResult with an empty
// Role means the backend accepted the credentials but assigned no role; the
// caller must not create a session from it.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.postJSON(ctx, "/login", body, &resp); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Role:    resp.Role,
		UserID:  resp.ID.String(),
		Message: resp.Message,
	}, nil
}

// Register creates an account. The role is always "Employee"; the backend
// grants Admin out of band. Returns the backend's confirmation message.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	body := map[string]string{
		"first_name": reg.FirstName,
		"last_name":  reg.LastName,
		"email":      reg.Email,
		"password":   reg.Password,
		"role":       model.RoleEmployee.String(),
	}

	var resp messageResponse
	if err := c.postJSON(ctx, "/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// FetchHistory returns the stored question/response turns for a user,
// newest first as the backend sends them.
func (c *Client) FetchHistory(ctx context.Context, userID string) ([]HistoryRecord, error) {
	body := map[string]string{"user_id": userID}

	var records []HistoryRecord
	if err := c.postJSON(ctx, "/history", body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SendChat submits one turn as multipart form data: the user id, the
// message text, and optionally the staged file. It returns the assistant's
// response text.
func (c *Client) SendChat(ctx context.Context, userID, message string, attachment *model.Attachment) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("user_id", userID); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.WriteField("message", message); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if attachment != nil {
		if err := writeAttachment(form, attachment); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)

	var resp chatResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// writeAttachment streams the staged file into the multipart form.
func writeAttachment(form *multipart.Writer, attachment *model.Attachment) error {
	f, err := os.Open(attachment.Path)
	if err != nil {
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.Size() > maxAttachmentSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrAttachmentTooLarge, attachment.Name(), info.Size())
	}

	part, err := form.CreateFormFile("file", attachment.Name())
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}
	return nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// postJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, out)
}

// getJSON performs a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, out)
}

// do executes a request, logs it without bodies or credentials, enforces
// the response size cap and maps failures to *APIError.
func (c *Client) do(req *http.Request, out any) error {
	reqID := uuid.NewString()[:8]
	log.Printf("gateway: [%s] %s %s", reqID, req.Method, req.URL.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("gateway: [%s] failed after %v: %v", reqID, duration, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Printf("gateway: [%s] %d (%v)", reqID, resp.StatusCode, duration)

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads a body with the size cap applied.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", maxResponseSize)
	}
	return body, nil
}

// decodeError maps a failure response to *APIError, pulling the backend's
// "error" field when it parses.
func decodeError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{Status: status, Message: er.Error}
	}
	return &APIError{Status: status}
}
