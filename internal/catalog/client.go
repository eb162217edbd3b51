package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Category is one entry of the upstream category list.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"category_name"`
}

// Plant is a product record, both in list and detail form (the detail
// endpoint returns a superset of the same fields).
type Plant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       Price  `json:"price"`
}

// Price tolerates the upstream's loose typing: a JSON number, a numeric
// string, or null all decode; anything unparsable decodes as 0.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

var (
	// ErrUnavailable covers transport failures and non-2xx responses.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrMalformed covers responses whose body is not the expected shape.
	ErrMalformed = errors.New("catalog response malformed")
)

// Client talks to the remote plant catalog API. No retries; a failed call
// is reported once and the caller decides what the UI shows.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Ping issues a cheap categories request so readiness probes can tell
// whether the upstream is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Categories(ctx)
	return err
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env struct {
		Categories []Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/categories", &env); err != nil {
		return nil, err
	}
	return env.Categories, nil
}

func (c *Client) AllPlants(ctx context.Context) ([]Plant, error) {
	var env struct {
		Plants []Plant `json:"plants"`
	}
	if err := c.getJSON(ctx, "/plants", &env); err != nil {
		return nil, err
	}
	return env.Plants, nil
}

func (c *Client) PlantsByCategory(ctx context.Context, categoryID int) ([]Plant, error) {
	var env struct {
		Plants []Plant `json:"plants"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/category/%d", categoryID), &env); err != nil {
		return nil, err
	}
	return env.Plants, nil
}

// PlantDetail fetches a single plant. The upstream has been observed to
// nest the record under either "plants" or "plant"; both are accepted.
func (c *Client) PlantDetail(ctx context.Context, plantID int) (Plant, error) {
	var env struct {
		Plants json.RawMessage `json:"plants"`
		Plant  json.RawMessage `json:"plant"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/plant/%d", plantID), &env); err != nil {
		return Plant{}, err
	}

	raw := env.Plants
	if !isJSONObject(raw) {
		raw = env.Plant
	}
	if !isJSONObject(raw) {
		return Plant{}, fmt.Errorf("%w: no plant in detail response", ErrMalformed)
	}

	var p Plant
	if err := json.Unmarshal(raw, &p); err != nil {
		return Plant{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func isJSONObject(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "{")
}
