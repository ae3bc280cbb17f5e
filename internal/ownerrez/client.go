package ownerrez

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/villarosa/bookline/internal/config"
)

type Client struct {
	baseURL  string
	scheme   config.AuthScheme
	apiKey   string
	username string
	token    string
	http     *http.Client
}

// NewClient builds an OwnerRez API client from resolved configuration.
// The remote has no latency guarantees, so every call is bounded by the
// client timeout.
func NewClient(cfg *config.Config) (*Client, error) {
	scheme, err := cfg.Auth()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:  cfg.OwnerRezBaseURL,
		scheme:   scheme,
		apiKey:   cfg.OwnerRezAPIKey,
		username: cfg.OwnerRezUsername,
		token:    cfg.OwnerRezToken,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreateGuest registers a guest record and returns it with the remote id.
// Every call creates a new record: the API offers no dedup, and neither
// do we.
// Reference: POST /v2/guests
func (c *Client) CreateGuest(ctx context.Context, in GuestInput) (*Guest, error) {
	var guest Guest
	if err := c.post(ctx, "/v2/guests", in, &guest); err != nil {
		return nil, &GuestCreationError{Err: err}
	}
	return &guest, nil
}

// CreateQuote creates a booking quote for an existing guest.
// Reference: POST /v2/quotes
func (c *Client) CreateQuote(ctx context.Context, in QuoteInput) (*Quote, error) {
	var quote Quote
	if err := c.post(ctx, "/v2/quotes", in, &quote); err != nil {
		return nil, &QuoteCreationError{Err: err}
	}
	return &quote, nil
}

// ListProperties returns the full remote property listing.
// Reference: GET /v2/properties
func (c *Client) ListProperties(ctx context.Context) ([]Property, error) {
	var page propertyPage
	if err := c.get(ctx, "/v2/properties", nil, &page); err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	return page.Items, nil
}

// CheckAvailability fetches the per-day calendar for one property and
// reports whether the whole range is bookable.
// Reference: GET /v2/properties/{id}/availability
func (c *Client) CheckAvailability(ctx context.Context, propertyID, checkIn, checkOut string) (bool, error) {
	q := url.Values{}
	q.Set("start", checkIn)
	q.Set("end", checkOut)

	var avail PropertyAvailability
	if err := c.get(ctx, "/v2/properties/"+url.PathEscape(propertyID)+"/availability", q, &avail); err != nil {
		return false, &AvailabilityCheckError{Err: err}
	}
	return avail.AllDaysAvailable(), nil
}

// SearchProperties returns the properties matching the date range and
// occupancy constraints, possibly none.
// Reference: GET /v2/properties/search
func (c *Client) SearchProperties(ctx context.Context, criteria SearchCriteria) ([]Property, error) {
	q := url.Values{}
	q.Set("available_from", criteria.AvailableFrom)
	q.Set("available_to", criteria.AvailableTo)
	if criteria.GuestsMin > 0 {
		q.Set("guests_min", strconv.Itoa(criteria.GuestsMin))
	}
	if criteria.BedroomsMin > 0 {
		q.Set("bedrooms_min", strconv.Itoa(criteria.BedroomsMin))
	}
	if criteria.Pets > 0 {
		q.Set("allows_pets", "true")
	}

	var page propertyPage
	if err := c.get(ctx, "/v2/properties/search", q, &page); err != nil {
		return nil, &AvailabilityCheckError{Err: err}
	}
	return page.Items, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	return c.send(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s status %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// do retries exactly once on a transport-level fault. Error statuses are
// never retried.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err == nil {
		return resp, nil
	}
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, err
		}
		req.Body = body
	}
	return c.http.Do(req)
}

func (c *Client) setAuth(req *http.Request) {
	switch c.scheme {
	case config.AuthBasic:
		req.SetBasicAuth(c.username, c.token)
	case config.AuthAPIKey:
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}
