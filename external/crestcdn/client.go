// Package crestcdn downloads club crests from the football-data crest CDN.
package crestcdn

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/grounder-api/internal/domain/crest"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

const (
	defaultTimeout = 10 * time.Second
	maxImageBytes  = 2 << 20
	referer        = "https://www.football-data.org/"
	userAgent      = "Mozilla/5.0"
)

type ClientConfig struct {
	Timeout time.Duration
	Logger  *logging.Logger
}

type Client struct {
	http    *fasthttp.Client
	timeout time.Duration
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "grounder-crest-proxy",
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxResponseBodySize: maxImageBytes,
		},
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// FetchImage downloads rawURL with the headers the CDN expects from a browser.
func (c *Client) FetchImage(ctx context.Context, rawURL string) (crest.Image, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderReferer, referer)
	req.Header.SetUserAgent(userAgent)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "crest fetch failed", "url", rawURL, "error", err)
		return crest.Image{}, fmt.Errorf("%w: fetch crest: %w", usecase.ErrDependencyUnavailable, err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return crest.Image{}, fmt.Errorf("%w: crest %s", usecase.ErrNotFound, rawURL)
	case status < 200 || status > 299:
		c.logger.WarnContext(ctx, "crest upstream returned non-success status", "url", rawURL, "status", status)
		return crest.Image{}, crerr.Mark(crerr.Newf("crest upstream status=%d", status), usecase.ErrDependencyUnavailable)
	}

	contentType := string(resp.Header.ContentType())
	if contentType == "" {
		contentType = crest.DefaultContentType
	}
	return crest.Image{
		ContentType: contentType,
		Body:        append([]byte(nil), resp.Body()...),
	}, nil
}
