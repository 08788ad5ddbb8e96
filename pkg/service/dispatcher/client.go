package dispatcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/utils/safe"
)

const defaultLimit = 50

// client implements Service interface
type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a client for the external dispatch service. The API key is
// sent as X-Dispatcher-Key on every request.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (Service, error) {
	if baseURL == "" {
		return nil, goerr.New("dispatcher base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid dispatcher base URL", goerr.V("baseURL", baseURL))
	}

	c := &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) RunOnce(ctx context.Context, limit int) (*Report, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	endpoint, err := url.Parse(c.baseURL + "/dispatcher")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build dispatcher URL")
	}
	q := endpoint.Query()
	q.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build dispatcher request")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Dispatcher-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "dispatcher request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, goerr.New("dispatcher returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, goerr.Wrap(err, "failed to decode dispatcher response")
	}

	return &report, nil
}
