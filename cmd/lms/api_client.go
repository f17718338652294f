// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/centralib/lms/pkg/logging"
	"github.com/centralib/lms/services/catalog/datatypes"
)

// Rejection is a business-level refusal from the catalog: the request was
// delivered and the server answered, but the operation was not allowed
// (book already issued, invalid ID, insufficient role). Transport failures
// (connection refused, timeout, malformed body) are plain errors, never
// Rejections. Callers use this distinction to decide whether retrying or
// refreshing makes sense.
type Rejection struct {
	Op      string // operation that was refused, e.g. "issue"
	Message string // server-provided reason
	Status  int    // HTTP status code of the response
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", r.Op, r.Message)
}

// AsRejection unwraps err into a *Rejection if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// APIClient talks to the catalog service over HTTP. Mutating calls pass
// through a rate limiter so a scripted session cannot hammer the server.
type APIClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *logging.Logger
}

// NewAPIClient creates a client for the catalog at baseURL.
func NewAPIClient(baseURL string, timeout time.Duration, logger *logging.Logger) *APIClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		logger:  logger,
	}
}

// ============================================================================
// Request plumbing
// ============================================================================

func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// postAction posts body to path and interprets the standard action envelope.
// A decodable envelope with success=false becomes a Rejection; anything
// else that goes wrong is a transport error.
func (c *APIClient) postAction(ctx context.Context, op, path string, body any, headers map[string]string) (*datatypes.ActionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", op, err)
	}

	var action datatypes.ActionResponse
	if err := json.Unmarshal(raw, &action); err != nil {
		return nil, fmt.Errorf("decoding %s response (status %d): %w", op, resp.StatusCode, err)
	}
	if !action.Success {
		msg := action.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		c.logger.Debug("catalog refused operation", "op", op, "status", resp.StatusCode, "message", msg)
		return nil, &Rejection{Op: op, Message: msg, Status: resp.StatusCode}
	}
	return &action, nil
}

// ============================================================================
// Catalog operations
// ============================================================================

// Login authenticates against the catalog and returns the signed-in user.
func (c *APIClient) Login(ctx context.Context, req datatypes.LoginRequest) (*datatypes.User, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building login request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requesting login: %w", err)
	}
	defer resp.Body.Close()

	var loginResp datatypes.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("decoding login response (status %d): %w", resp.StatusCode, err)
	}
	if !loginResp.Success || loginResp.User == nil {
		msg := loginResp.Message
		if msg == "" {
			msg = "login failed"
		}
		return nil, &Rejection{Op: "login", Message: msg, Status: resp.StatusCode}
	}
	return loginResp.User, nil
}

// Books fetches the full inventory.
func (c *APIClient) Books(ctx context.Context) ([]datatypes.Book, error) {
	var books []datatypes.Book
	if err := c.getJSON(ctx, "/api/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Stats fetches the dashboard counters.
func (c *APIClient) Stats(ctx context.Context) (datatypes.Stats, error) {
	var stats datatypes.Stats
	if err := c.getJSON(ctx, "/api/stats", &stats); err != nil {
		return datatypes.Stats{}, err
	}
	return stats, nil
}

// History fetches the transaction log, newest first.
func (c *APIClient) History(ctx context.Context) ([]datatypes.HistoryEntry, error) {
	var entries []datatypes.HistoryEntry
	if err := c.getJSON(ctx, "/api/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Issue requests that bookID be issued to userName.
func (c *APIClient) Issue(ctx context.Context, bookID, userName string) error {
	_, err := c.postAction(ctx, "issue", "/api/issue",
		datatypes.IssueRequest{BookID: bookID, UserName: userName}, nil)
	return err
}

// Return requests that bookID be returned to the shelf.
func (c *APIClient) Return(ctx context.Context, bookID string) error {
	_, err := c.postAction(ctx, "return", "/api/return",
		datatypes.ReturnRequest{BookID: bookID}, nil)
	return err
}

// Add requests a new book with the given title.
func (c *APIClient) Add(ctx context.Context, title string) error {
	_, err := c.postAction(ctx, "add", "/api/add",
		datatypes.AddRequest{Title: title}, nil)
	return err
}

// Delete requests removal of bookID. The caller's role travels in a header
// because the server enforces the admin gate independently of the client.
func (c *APIClient) Delete(ctx context.Context, bookID, role string) error {
	_, err := c.postAction(ctx, "delete", "/api/delete",
		datatypes.DeleteRequest{BookID: bookID, Confirm: "y"},
		map[string]string{"role": role})
	return err
}

// Chat sends one message to the assistant and returns its reply.
func (c *APIClient) Chat(ctx context.Context, message string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	payload, err := json.Marshal(datatypes.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from chat", resp.StatusCode)
	}
	var chatResp datatypes.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	return chatResp.Response, nil
}

// Health checks whether the catalog is reachable.
func (c *APIClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
