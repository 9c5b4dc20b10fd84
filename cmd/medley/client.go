package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps HTTP calls to the medley server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new medley API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	Version     string     `json:"version"`
	UptimeSec   int64      `json:"uptime_seconds"`
	Collections int        `json:"collections"`
	Items       int        `json:"items"`
	Episodes    int        `json:"episodes"`
	IndexDocs   int        `json:"index_docs"`
	LastScan    *time.Time `json:"last_scan,omitempty"`
	Scanning    bool       `json:"scanning"`
}

type CollectionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Items    int    `json:"items"`
	Episodes int    `json:"episodes,omitempty"`
}

type ListCollectionsResponse struct {
	Items []CollectionSummary `json:"items"`
	Total int                 `json:"total"`
}

type ItemSummary struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Year     int      `json:"year,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Episodes int      `json:"episodes,omitempty"`
}

type CollectionResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Kind  string        `json:"kind"`
	Dir   string        `json:"dir"`
	Items []ItemSummary `json:"items"`
	Total int           `json:"total"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type GenresResponse struct {
	Genres []GenreCount `json:"genres"`
	Total  int          `json:"total"`
}

type ItemResponse struct {
	Kind         string          `json:"kind"`
	CollectionID string          `json:"collection_id"`
	Item         json.RawMessage `json:"item"`
}

type SearchHit struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
}

type SearchResponse struct {
	Query   string      `json:"query,omitempty"`
	Results []SearchHit `json:"results"`
	Total   int         `json:"total"`
}

type ScanResponse struct {
	Status   string `json:"status"`
	Items    int    `json:"items,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
}

// EventFrame is the envelope shared by all event payloads; fields not
// carried by a given event type stay zero.
type EventFrame struct {
	Type         string `json:"type"`
	CollectionID string `json:"collection_id,omitempty"`
	OccurredAt   string `json:"occurred_at"`
	Name         string `json:"name,omitempty"`
	Collections  int    `json:"collections,omitempty"`
	Items        int    `json:"items,omitempty"`
	Episodes     int    `json:"episodes,omitempty"`
	Degraded     int    `json:"degraded,omitempty"`
	Skipped      int    `json:"skipped,omitempty"`
	DurationMS   int64  `json:"duration_ms,omitempty"`
	Error        string `json:"error,omitempty"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Collections() (*ListCollectionsResponse, error) {
	var resp ListCollectionsResponse
	if err := c.get("/api/v1/collections", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Collection(id string) (*CollectionResponse, error) {
	var resp CollectionResponse
	if err := c.get("/api/v1/collections/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Genres(collectionID string) (*GenresResponse, error) {
	var resp GenresResponse
	if err := c.get("/api/v1/collections/"+url.PathEscape(collectionID)+"/genres", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Item(collectionID, itemID string) (*ItemResponse, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/items/%s",
		url.PathEscape(collectionID), url.PathEscape(itemID))
	var resp ItemResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}

	var resp SearchResponse
	if err := c.get("/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Similar(itemID string, limit int) (*SearchResponse, error) {
	path := fmt.Sprintf("/api/v1/items/%s/similar", url.PathEscape(itemID))
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var resp SearchResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Scan(wait bool) (*ScanResponse, error) {
	path := "/api/v1/scan"
	if wait {
		path += "?wait=true"
	}
	var resp ScanResponse
	if err := c.post(path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StreamEvents connects to the server's event stream and calls fn for each
// received event until ctx is cancelled or the connection drops. A separate
// client without a timeout is used because the stream is long-lived.
func (c *Client) StreamEvents(ctx context.Context, replay int, fn func(EventFrame)) error {
	u := fmt.Sprintf("%s/api/v1/events?replay=%d", c.baseURL, replay)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	sc := bufio.NewScanner(resp.Body)
	var data []byte
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "data: "):
			data = []byte(strings.TrimPrefix(line, "data: "))
		case line == "" && len(data) > 0:
			var frame EventFrame
			if err := json.Unmarshal(data, &frame); err == nil {
				fn(frame)
			}
			data = nil
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream read: %w", err)
	}
	return nil
}
