// Package outlinestore talks to the outline store service, the HTTP
// collaborator that persists finished outlines and chunk sets.
package outlinestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with the outline store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OutlineRecord is the body for PUT /outlines/{docID}.
type OutlineRecord struct {
	UserID   string         `json:"user_id"`
	Filename string         `json:"filename"`
	Title    string         `json:"title,omitempty"`
	Outline  map[string]any `json:"outline"`
	Source   string         `json:"source,omitempty"`
}

// ChunkRecord is the body for PUT /outlines/{docID}/chunks.
type ChunkRecord struct {
	UserID string `json:"user_id"`
	Chunks any    `json:"chunks"`
}

// OutlineSummary is a single entry from a list call.
type OutlineSummary struct {
	DocID    string `json:"doc_id"`
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Chapters int    `json:"chapters"`
}

// PutOutline stores or replaces the outline for a document.
func (c *Client) PutOutline(ctx context.Context, docID string, rec OutlineRecord) error {
	return c.put(ctx, "/outlines/"+url.PathEscape(docID), rec)
}

// PutChunks stores the chunk set derived from a document's outline.
func (c *Client) PutChunks(ctx context.Context, docID string, rec ChunkRecord) error {
	return c.put(ctx, "/outlines/"+url.PathEscape(docID)+"/chunks", rec)
}

func (c *Client) put(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

// GetOutline retrieves a stored outline. Returns nil without error when
// the document is unknown.
func (c *Client) GetOutline(ctx context.Context, docID string) (*OutlineRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/outlines/"+url.PathEscape(docID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get outline: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get outline %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}

	var rec OutlineRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	return &rec, nil
}

// DeleteOutline deletes an outline and optionally its chunk set.
func (c *Client) DeleteOutline(ctx context.Context, docID string, withChunks bool) error {
	u := c.baseURL + "/outlines/" + url.PathEscape(docID)
	if withChunks {
		u += "?chunks=true"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete outline: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete outline %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
	return nil
}

// ListOutlines returns outline summaries for a user.
func (c *Client) ListOutlines(ctx context.Context, userID string, limit int) ([]OutlineSummary, error) {
	u := c.baseURL + "/outlines?user_id=" + url.QueryEscape(userID)
	if limit > 0 {
		u += fmt.Sprintf("&limit=%d", limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list outlines: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list outlines: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Outlines []OutlineSummary `json:"outlines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode outlines: %w", err)
	}
	return result.Outlines, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
