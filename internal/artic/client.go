// Package artic is a minimal client for the artworks listing of the Art
// Institute of Chicago public API. Only the paging contract and the fields
// the table consumes are modelled; unknown fields are ignored.
package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client talks to the artworks endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUserAgent sets the AIC-User-Agent courtesy header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = strings.TrimSpace(ua) }
}

// WithRequestsPerMinute throttles outgoing requests. Zero disables throttling.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRequest selects one page of artworks.
type ListRequest struct {
	Page   int
	Limit  int
	Fields []string
}

// Pagination mirrors the API's pagination block.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Artwork is one raw item of the data array. Every field except ID may be
// null or missing.
type Artwork struct {
	ID            int     `json:"id"`
	Title         *string `json:"title"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	ArtistDisplay *string `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

// ArtworksPage is the decoded listing response.
type ArtworksPage struct {
	Pagination Pagination `json:"pagination"`
	Data       []Artwork  `json:"data"`
	RequestID  string     `json:"-"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("artic: http %d", e.StatusCode)
	}
	return fmt.Sprintf("artic: http %d: %s", e.StatusCode, e.Body)
}

// ListArtworks fetches one page of the artworks listing.
func (c *Client) ListArtworks(ctx context.Context, req ListRequest) (ArtworksPage, error) {
	var out ArtworksPage
	if req.Page < 1 {
		return out, fmt.Errorf("artic: page must be >= 1, got %d", req.Page)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return out, err
		}
	}

	u, err := c.listURL(req)
	if err != nil {
		return out, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return out, err
	}
	out.RequestID = uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", out.RequestID)
	if c.userAgent != "" {
		httpReq.Header.Set("AIC-User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return out, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("artic: decode artworks: %w", err)
	}
	return out, nil
}

func (c *Client) listURL(req ListRequest) (string, error) {
	u, err := url.Parse(c.baseURL + "/artworks")
	if err != nil {
		return "", fmt.Errorf("artic: base url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(req.Page))
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if len(req.Fields) > 0 {
		q.Set("fields", strings.Join(req.Fields, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
