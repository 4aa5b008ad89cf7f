package ofsc

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"equipment-validator/core/validation"

	"github.com/goccy/go-json"
)

// ErrNoCredentials is returned when the instance URL or REST credentials are missing.
var ErrNoCredentials = errors.New("ofsc credentials not configured")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Status)
}

// Client is a minimal REST client for the metadata and core APIs.
type Client struct {
	cfg           Config
	baseURL       string
	authorization string
	http          *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a client from the configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.URL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNoCredentials
	}

	base, err := BaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	c := &Client{
		cfg:           cfg,
		baseURL:       base,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.ClientID+":"+cfg.ClientSecret)),
		http: &http.Client{
			Timeout: timeoutDuration,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeoutDuration,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   timeoutDuration,
				ResponseHeaderTimeout: timeoutDuration,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL reduces an instance URL to scheme and host.
func BaseURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid instance url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid instance url %q: missing host", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/"+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", endpoint, err)
	}
	return nil
}

// Property fetches a metadata property by label.
func (c *Client) Property(ctx context.Context, label string) (*Property, error) {
	var p Property
	if err := c.get(ctx, "ofscMetadata/v1/properties/"+url.PathEscape(label), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadRules reads the rule configuration stored as JSON in the rules property's XSLT.
func (c *Client) LoadRules(ctx context.Context) ([]validation.Rule, error) {
	p, err := c.Property(ctx, c.cfg.RulesProperty)
	if err != nil {
		return nil, err
	}
	if p.Transformation == nil || strings.TrimSpace(p.Transformation.Xslt) == "" {
		return nil, fmt.Errorf("%w: property %s has no transformation", validation.ErrMalformedRules, c.cfg.RulesProperty)
	}

	raw := strings.ReplaceAll(p.Transformation.Xslt, `\"`, `"`)
	return validation.ParseRules([]byte(raw))
}

func (c *Client) inventories(ctx context.Context, activityID, kind string) ([]validation.RawItem, error) {
	var list InventoryList
	endpoint := fmt.Sprintf("ofscCore/v1/activities/%s/%s", url.PathEscape(activityID), kind)
	if err := c.get(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	items := make([]validation.RawItem, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, item.ToRaw())
	}
	return items, nil
}

// InstalledInventories lists the installed inventory of an activity.
func (c *Client) InstalledInventories(ctx context.Context, activityID string) ([]validation.RawItem, error) {
	return c.inventories(ctx, activityID, "installedInventories")
}

// CustomerInventories lists the customer inventory of an activity.
func (c *Client) CustomerInventories(ctx context.Context, activityID string) ([]validation.RawItem, error) {
	return c.inventories(ctx, activityID, "customerInventories")
}

// EnumerationList fetches one page of an enumeration property.
func (c *Client) EnumerationList(ctx context.Context, label string, limit, offset int) (*EnumerationPage, error) {
	var page EnumerationPage
	endpoint := fmt.Sprintf("ofscMetadata/v1/properties/%s/enumerationList?limit=%d&offset=%d", url.PathEscape(label), limit, offset)
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// User fetches a user by login.
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	var u User
	if err := c.get(ctx, "ofscCore/v1/users/"+url.PathEscape(login), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
