// Package upstream is the JSON-over-HTTP transport shared by every source adapter.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/platform/resilience"
)

const maxBodyBytes = 6 << 20

var (
	// ErrTransient marks failures worth retrying: network errors, 429 and 5xx.
	ErrTransient = crerr.New("upstream transient failure")
	// ErrSourceDisabled is returned by adapters whose credential is not configured.
	ErrSourceDisabled = crerr.New("source disabled")
)

var secretParamRegex = regexp.MustCompile(`(api_token|apikey|key)=[^&\s"']+`)

// Secrets shorter than this, or made of digits only, would match ordinary
// text, so they are masked only as whole path segments.
const minSubstringSecretLen = 8

// StatusError is a non-success response that is not worth retrying.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status=%d body=%s", e.StatusCode, e.Body)
}

type Config struct {
	// Name labels log lines, e.g. "football-data".
	Name           string
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Secrets are masked in errors and logs.
	Secrets []string
}

type Client struct {
	name       string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.Breaker
	secrets    []string
	flight     singleflight.Group
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, secret := range cfg.Secrets {
		if secret = strings.TrimSpace(secret); secret != "" {
			secrets = append(secrets, secret)
		}
	}

	return &Client{
		name:       cfg.Name,
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger.Named("upstream").With("source", cfg.Name),
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
		secrets:    secrets,
	}
}

// GetJSON fetches rawURL and decodes the body into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, target any) error {
	raw, err := c.Get(ctx, rawURL, header)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s payload", c.name)
	}
	return nil
}

// Get fetches rawURL and returns the body. Concurrent calls for the same URL
// share one request.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	out, err, _ := c.flight.Do(rawURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, rawURL, header)
			return reqErr
		}, isCircuitFailure)
		if crerr.Is(execErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "state", string(c.breaker.State()))
		}
		return raw, execErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		if req.Header.Get("Accept") == "" {
			req.Header.Set("Accept", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(ErrTransient, "send request: %s", c.Sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(ErrTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(ErrTransient, "status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				lastErr = &StatusError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw)}
				c.logger.WarnContext(ctx, "upstream rejected request", "url", c.RedactURL(rawURL), "status", resp.StatusCode)
				return nil, lastErr
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("upstream request failed")
	}
	c.logger.WarnContext(ctx, "upstream request failed", "url", c.RedactURL(rawURL), "error", lastErr)
	return nil, lastErr
}

// Sanitize masks configured secrets and well-known credential query params.
func (c *Client) Sanitize(value string) string {
	value = strings.TrimSpace(value)
	for _, secret := range c.secrets {
		if isWeakSecret(secret) {
			value = strings.ReplaceAll(value, "/"+secret+"/", "/REDACTED/")
			continue
		}
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return secretParamRegex.ReplaceAllString(value, "$1=REDACTED")
}

// RedactURL is Sanitize applied to a URL after decoding its query.
func (c *Client) RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return c.Sanitize(rawURL)
	}
	query := parsed.Query()
	for _, param := range []string{"api_token", "apikey", "key"} {
		if query.Has(param) {
			query.Set(param, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return c.Sanitize(parsed.String())
}

func isWeakSecret(secret string) bool {
	if len(secret) < minSubstringSecretLen {
		return true
	}
	return strings.Trim(secret, "0123456789") == ""
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, ErrTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
