package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/crest"
)

type CrestService struct {
	fetcher       ImageFetcher
	allowedPrefix string
}

func NewCrestService(fetcher ImageFetcher, allowedPrefix string) *CrestService {
	return &CrestService{
		fetcher:       fetcher,
		allowedPrefix: strings.TrimSpace(allowedPrefix),
	}
}

// Fetch proxies one crest image. Only urls under the allowed prefix are fetched.
func (s *CrestService) Fetch(ctx context.Context, rawURL string) (crest.Image, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrestService.Fetch")
	defer span.End()

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return crest.Image{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if !crest.Allowed(s.allowedPrefix, rawURL) {
		return crest.Image{}, fmt.Errorf("%w: url must start with %s", ErrInvalidInput, s.allowedPrefix)
	}

	image, err := s.fetcher.FetchImage(ctx, rawURL)
	if err != nil {
		return crest.Image{}, err
	}
	if image.ContentType == "" {
		image.ContentType = crest.DefaultContentType
	}
	return image, nil
}
