// Package catalogapi is the HTTP client of the remote catalog REST API
// (products, contact messages, orders).
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

// ClientConfig configures the catalog client.
type ClientConfig struct {
	BaseURL string

	// Token is sent as a bearer token when set.
	Token string

	Timeout time.Duration

	// Strict makes a single invalid product fail the whole response.
	// Otherwise invalid products are dropped and logged.
	Strict bool

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks to the remote catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	strict     bool
	logger     logger.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg ClientConfig, log logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog api base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid catalog api base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		token:      cfg.Token,
		strict:     cfg.Strict,
		logger:     log,
	}, nil
}

// SearchParams are the query parameters of the paginated product search.
type SearchParams struct {
	CategoryID string
	Size       string
	Material   string
	PriceRange domain.PriceRange
	SortBy     domain.SortBy
	SortOrder  string
	Search     string
	Page       int
	Limit      int
}

func (p SearchParams) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("categoryId", p.CategoryID)
	set("size", p.Size)
	set("material", p.Material)
	if p.PriceRange != "" && p.PriceRange != domain.PriceAll {
		q.Set("priceRange", string(p.PriceRange))
	}
	set("sortBy", string(p.SortBy))
	set("sortOrder", p.SortOrder)
	set("search", p.Search)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	expand(q)
	return q
}

func expand(q url.Values) {
	q.Set("includeVariants", "true")
	q.Set("includeImages", "true")
	q.Set("includeCategory", "true")
}

// SearchProducts runs one paginated product search.
func (c *Client) SearchProducts(ctx context.Context, params SearchParams) (domain.CatalogPage, error) {
	var wire wirePage
	if err := c.do(ctx, http.MethodGet, "/products", params.values(), nil, &wire); err != nil {
		return domain.CatalogPage{}, err
	}

	items, err := c.parseProducts(wire.Items)
	if err != nil {
		return domain.CatalogPage{}, err
	}
	return domain.CatalogPage{Items: items, Meta: wire.Meta.toDomain()}, nil
}

// GetProduct fetches one product with its variants, images and category.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.RawProduct, error) {
	q := url.Values{}
	expand(q)

	var wire wireProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), q, nil, &wire); err != nil {
		return domain.RawProduct{}, err
	}

	p, err := wire.toDomain()
	if err != nil {
		return domain.RawProduct{}, apperror.NewUpstreamError("invalid product payload", 0, err)
	}
	return p, nil
}

// ListContactMessages returns one page of contact messages.
func (c *Client) ListContactMessages(ctx context.Context, params domain.ListParams) (domain.ContactMessagePage, error) {
	var page domain.ContactMessagePage
	err := c.do(ctx, http.MethodGet, "/contact-messages", listValues(params), nil, &page)
	return page, err
}

// GetContactMessage fetches a single contact message.
func (c *Client) GetContactMessage(ctx context.Context, id string) (domain.ContactMessage, error) {
	var msg domain.ContactMessage
	err := c.do(ctx, http.MethodGet, "/contact-messages/"+url.PathEscape(id), nil, nil, &msg)
	return msg, err
}

// CreateContactMessage posts a new contact message.
func (c *Client) CreateContactMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	var created domain.ContactMessage
	err := c.do(ctx, http.MethodPost, "/contact-messages", nil, msg, &created)
	return created, err
}

// MarkContactMessageRead flags a contact message as read.
func (c *Client) MarkContactMessageRead(ctx context.Context, id string) (domain.ContactMessage, error) {
	var msg domain.ContactMessage
	body := map[string]bool{"is_read": true}
	err := c.do(ctx, http.MethodPatch, "/contact-messages/"+url.PathEscape(id), nil, body, &msg)
	return msg, err
}

// DeleteContactMessage removes a contact message.
func (c *Client) DeleteContactMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/contact-messages/"+url.PathEscape(id), nil, nil, nil)
}

// ListOrders returns one page of orders.
func (c *Client) ListOrders(ctx context.Context, params domain.ListParams) (domain.OrderPage, error) {
	var page domain.OrderPage
	err := c.do(ctx, http.MethodGet, "/orders", listValues(params), nil, &page)
	return page, err
}

// CancelOrder asks the remote API to cancel an order.
func (c *Client) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil, &order)
	return order, err
}

func listValues(params domain.ListParams) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	return q
}

// parseProducts validates every wire product. In strict mode the first invalid
// item fails the page; otherwise it is dropped.
func (c *Client) parseProducts(items []wireProduct) ([]domain.RawProduct, error) {
	out := make([]domain.RawProduct, 0, len(items))
	for i, w := range items {
		p, err := w.toDomain()
		if err != nil {
			if c.strict {
				return nil, apperror.NewUpstreamError(fmt.Sprintf("invalid product at index %d", i), 0, err)
			}
			c.logger.Warn("Dropping invalid product from catalog response.", map[string]interface{}{
				"index": i,
				"id":    w.ID,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// do sends a request and decodes a JSON response into out (when non-nil).
// Transport failures and non-2xx answers become UpstreamError, except 404
// which becomes NotFoundError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("failed to encode catalog request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperror.NewInternalError("failed to build catalog request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("Calling catalog API.", map[string]interface{}{"method": method, "path": path})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewUpstreamError("catalog request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperror.NewNotFoundError(fmt.Sprintf("%s was not found in the catalog service", path))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperror.NewUpstreamError("catalog service returned an error", resp.StatusCode,
			fmt.Errorf("%s %s: %s", method, path, strings.TrimSpace(string(snippet))))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstreamError("failed to decode catalog response", resp.StatusCode, err)
	}
	return nil
}
