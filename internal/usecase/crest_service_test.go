package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/grounder-api/internal/domain/crest"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
)

func TestCrestService_Fetch(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewImageFetcher(t)
	service := NewCrestService(fetcher, "https://crests.football-data.org/")

	const crestURL = "https://crests.football-data.org/57.png"
	fetcher.On("FetchImage", mock.Anything, crestURL).Return(crest.Image{Body: []byte("png")}, nil).Once()

	image, err := service.Fetch(context.Background(), crestURL)
	if err != nil {
		t.Fatalf("fetch crest: %v", err)
	}
	if image.ContentType != crest.DefaultContentType {
		t.Fatalf("expected default content type, got=%s", image.ContentType)
	}
	if string(image.Body) != "png" {
		t.Fatalf("unexpected body: %q", image.Body)
	}
}

func TestCrestService_Fetch_RejectsForeignURLs(t *testing.T) {
	t.Parallel()

	service := NewCrestService(usecasemock.NewImageFetcher(t), "https://crests.football-data.org/")
	for _, raw := range []string{"", "https://example.com/57.png", "http://crests.football-data.org/57.png"} {
		if _, err := service.Fetch(context.Background(), raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("url=%q: expected ErrInvalidInput, got=%v", raw, err)
		}
	}
}
