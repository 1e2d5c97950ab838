// Package openfootball fetches raw OpenFootball JSON documents.
package openfootball

import (
	"context"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

var ErrInvalidDocument = crerr.New("openfootball document is not valid json")

type Client struct {
	transport *upstream.Client
}

func NewClient(transport *upstream.Client) *Client {
	if transport == nil {
		transport = upstream.New(upstream.Config{Name: source.OpenFootball.String()})
	}
	return &Client{transport: transport}
}

// Document returns the JSON body at rawURL unchanged.
func (c *Client) Document(ctx context.Context, rawURL string) ([]byte, error) {
	raw, err := c.transport.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch openfootball document")
	}
	if !sonic.Valid(raw) {
		return nil, ErrInvalidDocument
	}
	return raw, nil
}
