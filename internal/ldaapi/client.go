// Package ldaapi is the client for the Senate Lobbying Disclosure Act REST API
// (https://lda.senate.gov/api/). List endpoints are cursor paginated: each
// page carries its results and the absolute URL of the next page.
package ldaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/logger"
)

// Page is one response of a paginated list endpoint.
type Page struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches paginated record lists. It never retries; any failed page
// aborts the partition.
type Client struct {
	http    *resty.Client
	baseURL string
	sleep   func(time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithSleep replaces the blocking sleep used between page requests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient creates a client for the API rooted at opts.BaseURL.
func NewClient(opts Options, options ...Option) *Client {
	client := resty.New()
	client.SetRetryCount(0)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	client.SetHeader("Accept", "application/json")
	if opts.APIKey != "" {
		client.SetAuthScheme("Token")
		client.SetAuthToken(opts.APIKey)
	}

	c := &Client{
		http:    client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		sleep:   time.Sleep,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// EndpointURL returns the list URL of endpoint.
func (c *Client) EndpointURL(endpoint string) string {
	return c.baseURL + "/" + strings.Trim(endpoint, "/") + "/"
}

// FetchPartition walks every page of job's endpoint filtered to year and
// returns all results in server order. The year filter is sent on the first
// request only; later requests follow the server's next URL as given.
// job.RateLimitDelay is slept between requests, never before the first or
// after the last.
func (c *Client) FetchPartition(ctx context.Context, job jobs.Descriptor, year int) ([]json.RawMessage, error) {
	log := logger.FromContext(ctx).With().Str("job", job.Name).Int("year", year).Logger()

	url := c.EndpointURL(job.Endpoint)
	var all []json.RawMessage

	for page := 1; ; page++ {
		var query map[string]string
		if page == 1 {
			query = map[string]string{"filing_year": strconv.Itoa(year)}
		}

		p, err := c.getPage(ctx, url, query)
		if err != nil {
			return nil, fmt.Errorf("FetchPartition: %s year %d page %d: %w", job.Name, year, page, err)
		}
		all = append(all, p.Results...)

		log.Info().Int("page", page).Int("results", len(p.Results)).Msg("Fetched page")

		if p.Next == nil || *p.Next == "" {
			break
		}
		if job.MaxPages > 0 && page >= job.MaxPages {
			log.Warn().Int("max_pages", job.MaxPages).Msg("Page cap reached, stopping partition early")
			break
		}
		url = *p.Next

		c.sleep(job.RateLimitDelay)
	}

	return all, nil
}

func (c *Client) getPage(ctx context.Context, url string, query map[string]string) (*Page, error) {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		body := resp.String()
		const maxLen = 500
		if len(body) > maxLen {
			body = body[:maxLen]
		}
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode(), Body: body}
	}

	var page Page
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("decode page %s: %w", url, err)
	}
	return &page, nil
}
