package bookclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrNotFound    = errors.New("book not found")
	ErrUnavailable = errors.New("book service unavailable")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(bookServiceURL string) *Client {
	return &Client{
		baseURL: bookServiceURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type BookDetails struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

type detailsResponse struct {
	Success bool        `json:"success"`
	Data    BookDetails `json:"data"`
	Message string      `json:"message"`
}

func (c *Client) GetBookDetails(ctx context.Context, bookID uint) (*BookDetails, error) {
	url := fmt.Sprintf("%s/book/details/%d", c.baseURL, bookID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, result.Message)
	}

	return &result.Data, nil
}
