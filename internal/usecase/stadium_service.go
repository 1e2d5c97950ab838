package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/stadium"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

const (
	defaultStadiumsLimit   = 200
	maxStadiumsLimit       = 500
	defaultStadiumCapacity = 5000
)

type StadiumService struct {
	wikidata WikidataSource
	stadiums *reconcile.Reconciler[stadium.Stadium]
	cache    *ResponseCache
}

func NewStadiumService(wikidata WikidataSource, responseCache *ResponseCache, logger *logging.Logger) (*StadiumService, error) {
	// One Wikidata entity can come back once per capacity or coordinate
	// statement; keep the first row of each entity in query order.
	stadiums, err := reconcile.New[stadium.Stadium](
		reconcile.WithIdentity[stadium.Stadium](reconcile.KeyIdentity[stadium.Stadium]{
			Key: func(s stadium.Stadium) string { return s.ID },
		}),
		reconcile.WithSort[stadium.Stadium](nil),
		reconcile.WithLogger[stadium.Stadium](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build stadium reconciler: %w", err)
	}

	return &StadiumService{
		wikidata: wikidata,
		stadiums: stadiums,
		cache:    responseCache,
	}, nil
}

// GlobalStadiums returns one page of Wikidata stadiums holding at least
// minCapacity seats. A non-positive minCapacity means 5000.
func (s *StadiumService) GlobalStadiums(ctx context.Context, limit, offset, minCapacity int) (Merged[stadium.Stadium], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StadiumService.GlobalStadiums")
	defer span.End()

	if offset < 0 {
		return Merged[stadium.Stadium]{}, fmt.Errorf("%w: offset must be zero or greater", ErrInvalidInput)
	}
	limit = clampLimit(limit, defaultStadiumsLimit, maxStadiumsLimit)
	if minCapacity <= 0 {
		minCapacity = defaultStadiumCapacity
	}

	key := "wikidata:stadiums:" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset) + ":" + strconv.Itoa(minCapacity)
	items, err := cached(ctx, s.cache, key, func(ctx context.Context) ([]stadium.Stadium, error) {
		return s.wikidata.Stadiums(ctx, limit, offset, minCapacity)
	})
	if err != nil {
		return Merged[stadium.Stadium]{}, unavailable(err, "list wikidata stadiums")
	}

	batches := []reconcile.Batch[stadium.Stadium]{reconcile.Settled(source.Wikidata, items, nil)}
	return mergedFrom(s.stadiums.Run(ctx, batches, reconcile.Filters{})), nil
}
