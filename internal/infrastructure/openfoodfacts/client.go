package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/proteinscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchPageSize bounds free-text search to a small result page
const searchPageSize = 5

// Client handles communication with the Open Food Facts API.
// Every call makes exactly one attempt; retry policy belongs to callers.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	productLimiter *rate.Limiter
	searchLimiter  *rate.Limiter
	debug          bool
}

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	ProductPerMinute int
	SearchPerMinute  int
}

// NewClient creates a new Open Food Facts API client
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	productPerMin := opts.ProductPerMinute
	if productPerMin <= 0 {
		productPerMin = 100
	}
	searchPerMin := opts.SearchPerMinute
	if searchPerMin <= 0 {
		searchPerMin = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        opts.BaseURL,
		userAgent:      opts.UserAgent,
		productLimiter: rate.NewLimiter(rate.Limit(float64(productPerMin)/60.0), 5),
		searchLimiter:  rate.NewLimiter(rate.Limit(float64(searchPerMin)/60.0), 2),
		debug:          false,
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFoodAPIFailure, err)
	}

	return resp, nil
}

// GetProductByBarcode fetches a single product keyed by its barcode.
// Returns domain.ErrProductNotFound when the barcode matches nothing; callers
// must treat that as an expected outcome, not a failure.
func (c *Client) GetProductByBarcode(ctx context.Context, barcode string) (*domain.OFFProduct, error) {
	if err := c.productLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))
	if c.debug {
		log.Printf("[OFF] GetProductByBarcode: %s", reqURL)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// OFF answers 404 for unknown barcodes on some deployments, and 200 with
	// status 0 on others. Both mean not found.
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrFoodAPIFailure, resp.StatusCode, string(body))
	}

	var productResp domain.OFFProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if productResp.Status != 1 || productResp.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	if productResp.Product.Code == "" {
		productResp.Product.Code = barcode
	}

	return productResp.Product, nil
}

// SearchProducts runs a free-text search, requesting a page of at most five
// results. An empty page is domain.ErrProductNotFound.
func (c *Client) SearchProducts(ctx context.Context, query string) (*domain.OFFSearchResponse, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page_size", fmt.Sprintf("%d", searchPageSize))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	if c.debug {
		log.Printf("[OFF] SearchProducts: %s", reqURL)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrFoodAPIFailure, resp.StatusCode, string(body))
	}

	var searchResp domain.OFFSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Products) == 0 {
		if c.debug {
			log.Printf("[OFF] No products found for query: %q", query)
		}
		return nil, domain.ErrProductNotFound
	}

	return &searchResp, nil
}
