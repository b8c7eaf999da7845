// Package catalog fetches the game catalog and cover images over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"spilcafe/internal/model"
)

// DefaultURL is the published game catalog.
const DefaultURL = "https://raw.githubusercontent.com/cederdorff/race/refs/heads/master/data/games.json"

// Client reads the catalog from a fixed URL.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a catalog client. A zero timeout falls back to 10s.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the catalog address.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes the catalog. Records are returned in source
// order; optional fields that fail to parse are left unknown.
func (c *Client) Fetch(ctx context.Context) ([]model.Game, error) {
	resp, err := c.get(ctx, c.url, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var games []model.Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return games, nil
}

// FetchImage downloads a JPEG or PNG image.
func (c *Client) FetchImage(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("no image")
	}

	resp, err := c.get(ctx, url, "image/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("catalog error: status %d", resp.StatusCode)
	}
	return resp, nil
}
