package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the medialog server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new medialog API client.
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

// do sends a request with an optional JSON body and decodes an optional
// JSON result. Used for PUT, PATCH and bodied POSTs.
func (c *Client) do(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// API response types (mirror server types)

type MediaItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Year         int      `json:"year"`
	Poster       string   `json:"poster,omitempty"`
	Rating       *int     `json:"rating,omitempty"`
	Watched      bool     `json:"watched"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	Director     string   `json:"director,omitempty"`
	RelatedMedia []string `json:"relatedMedia"`
}

type Collection struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MediaIDs []string `json:"mediaIds"`
	Image    string   `json:"image,omitempty"`
}

type ListMediaResponse struct {
	Items []MediaItem `json:"items"`
	Total int         `json:"total"`
}

type StatusResponse struct {
	Version     string `json:"version"`
	Items       int    `json:"items"`
	Collections int    `json:"collections"`
	Watched     int    `json:"watched"`
	Unwatched   int    `json:"unwatched"`
}

type SearchHit struct {
	Item  MediaItem `json:"item"`
	Score float64   `json:"score"`
}

type ImportResponse struct {
	Imported       int `json:"imported"`
	Dropped        int `json:"dropped"`
	NewCollections int `json:"new_collections,omitempty"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type GraphResponse struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type TimelineGroup struct {
	Year  int         `json:"year"`
	Items []MediaItem `json:"items"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListMedia(typeFilter, watchFilter, collection string) (*ListMediaResponse, error) {
	params := url.Values{}
	if typeFilter != "" {
		params.Set("type", typeFilter)
	}
	if watchFilter != "" {
		params.Set("watch", watchFilter)
	}
	if collection != "" {
		params.Set("collection", collection)
	}

	path := "/api/v1/media"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp ListMediaResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddMedia(item *MediaItem) (*MediaItem, error) {
	var resp MediaItem
	if err := c.post("/api/v1/media", item, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetMedia(id string) (*MediaItem, error) {
	var resp MediaItem
	if err := c.get("/api/v1/media/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteMedia(id string) error {
	return c.delete("/api/v1/media/" + url.PathEscape(id))
}

func (c *Client) ToggleWatched(id string) (*MediaItem, error) {
	var resp MediaItem
	if err := c.post("/api/v1/media/"+url.PathEscape(id)+"/watched", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Rate(id string, rating int) (*MediaItem, error) {
	req := map[string]any{"rating": rating}
	var resp MediaItem
	if err := c.do(http.MethodPut, "/api/v1/media/"+url.PathEscape(id)+"/rating", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Related(id string) (*ListMediaResponse, error) {
	var resp ListMediaResponse
	if err := c.get("/api/v1/media/"+url.PathEscape(id)+"/related", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetRelated(id string, relatedIDs []string) error {
	req := map[string]any{"relatedIds": relatedIDs}
	return c.do(http.MethodPut, "/api/v1/media/"+url.PathEscape(id)+"/related", req, nil)
}

func (c *Client) Collections() ([]Collection, error) {
	var resp []Collection
	if err := c.get("/api/v1/collections", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreateCollection(name, image string) (*Collection, error) {
	req := map[string]any{"name": name}
	if image != "" {
		req["image"] = image
	}
	var resp Collection
	if err := c.post("/api/v1/collections", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteCollection(id string) error {
	return c.delete("/api/v1/collections/" + url.PathEscape(id))
}

func (c *Client) AddToCollection(collectionID, mediaID string) error {
	path := "/api/v1/collections/" + url.PathEscape(collectionID) + "/media/" + url.PathEscape(mediaID)
	return c.do(http.MethodPut, path, nil, nil)
}

func (c *Client) RemoveFromCollection(collectionID, mediaID string) error {
	path := "/api/v1/collections/" + url.PathEscape(collectionID) + "/media/" + url.PathEscape(mediaID)
	return c.delete(path)
}

func (c *Client) Search(query string) ([]SearchHit, error) {
	var resp []SearchHit
	if err := c.get("/api/v1/search?q="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Graph() (*GraphResponse, error) {
	var resp GraphResponse
	if err := c.get("/api/v1/graph", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Timeline() ([]TimelineGroup, error) {
	var resp []TimelineGroup
	if err := c.get("/api/v1/timeline", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Export returns the raw export document as served, preserving formatting.
func (c *Client) Export() ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/api/v1/export")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// Import uploads an export document or outline text to the server.
func (c *Client) Import(data []byte, format, mode string) (*ImportResponse, error) {
	params := url.Values{}
	if format != "" {
		params.Set("format", format)
	}
	if mode != "" {
		params.Set("mode", mode)
	}
	path := "/api/v1/import"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	var result ImportResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Clear() error {
	return c.delete("/api/v1/library")
}
