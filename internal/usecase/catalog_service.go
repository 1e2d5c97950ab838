package usecase

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/catalog"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/platform/fanout"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

const (
	defaultCompetitionsLimit = 200
	maxCompetitionsLimit     = 500
)

// CatalogQuery selects the sources and filters of the competition catalog.
// Source is "all", "football-data" or "thesportsdb"; empty means all.
type CatalogQuery struct {
	Source  string
	Country string
	Type    string
}

// Document is a raw JSON catalog document. Configured is false when no
// catalog url is set, in which case SourceURL and Data are empty.
type Document struct {
	Configured bool
	SourceURL  string
	Data       []byte
}

type CatalogService struct {
	footballData    FootballDataSource
	theSportsDB     TheSportsDBSource
	wikidata        WikidataSource
	documents       DocumentSource
	catalog         *catalog.Catalog
	competitions    *reconcile.Reconciler[competition.Competition]
	cache           *ResponseCache
	openFootballURL string
	logger          *logging.Logger
}

func NewCatalogService(
	footballData FootballDataSource,
	theSportsDB TheSportsDBSource,
	wikidata WikidataSource,
	documents DocumentSource,
	supported *catalog.Catalog,
	responseCache *ResponseCache,
	openFootballURL string,
	logger *logging.Logger,
) (*CatalogService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if supported == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	competitions, err := reconcile.Competitions(reconcile.WithLogger[competition.Competition](logger))
	if err != nil {
		return nil, fmt.Errorf("build competition reconciler: %w", err)
	}

	return &CatalogService{
		footballData:    footballData,
		theSportsDB:     theSportsDB,
		wikidata:        wikidata,
		documents:       documents,
		catalog:         supported,
		competitions:    competitions,
		cache:           responseCache,
		openFootballURL: strings.TrimSpace(openFootballURL),
		logger:          logger,
	}, nil
}

// ListCompetitions returns the football-data competitions as published.
func (s *CatalogService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCompetitions")
	defer span.End()

	items, err := s.footballDataCompetitions(ctx)
	if err != nil {
		return nil, unavailable(err, "list football-data competitions")
	}
	return items, nil
}

// GlobalCompetitions merges the supported competitions with one page of
// Wikidata competitions. Catalog entries win over Wikidata entries of the
// same competition and are listed on the first page only.
func (s *CatalogService) GlobalCompetitions(ctx context.Context, limit, offset int) (Merged[competition.Competition], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GlobalCompetitions")
	defer span.End()

	if offset < 0 {
		return Merged[competition.Competition]{}, fmt.Errorf("%w: offset must be zero or greater", ErrInvalidInput)
	}
	limit = clampLimit(limit, defaultCompetitionsLimit, maxCompetitionsLimit)

	key := "wikidata:competitions:" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	wikidataItems, err := cached(ctx, s.cache, key, func(ctx context.Context) ([]competition.Competition, error) {
		return s.wikidata.Competitions(ctx, limit, offset)
	})

	batches := []reconcile.Batch[competition.Competition]{
		reconcile.Settled(source.Catalog, s.catalog.Records(), nil),
		reconcile.Settled(source.Wikidata, wikidataItems, err),
	}
	merged := mergedFrom(s.competitions.Run(ctx, batches, reconcile.Filters{}))
	if offset > 0 {
		// Catalog entries belong to the first page only. They still shadow
		// Wikidata duplicates on later pages.
		merged.Items = slices.DeleteFunc(merged.Items, func(c competition.Competition) bool {
			return c.Source == source.Catalog
		})
		merged.Sources[source.Catalog.CountKey()] = 0
	}
	return merged, nil
}

// GlobalCatalog merges football-data and TheSportsDB competitions. TheSportsDB
// leagues already known to football-data are dropped.
func (s *CatalogService) GlobalCatalog(ctx context.Context, query CatalogQuery) (Merged[competition.Competition], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GlobalCatalog")
	defer span.End()

	tags, err := catalogSources(query.Source)
	if err != nil {
		return Merged[competition.Competition]{}, err
	}

	calls := make([]fanout.Call[[]competition.Competition], 0, len(tags))
	for _, tag := range tags {
		switch tag {
		case source.FootballData:
			calls = append(calls, s.footballDataCompetitions)
		case source.TheSportsDB:
			calls = append(calls, s.theSportsDBLeagues)
		}
	}

	outcomes := fanout.Settle(ctx, calls...)
	batches := make([]reconcile.Batch[competition.Competition], 0, len(outcomes))
	for i, outcome := range outcomes {
		batches = append(batches, reconcile.Settled(tags[i], outcome.Value, outcome.Err))
	}

	filters := reconcile.Filters{Country: query.Country, Type: query.Type}
	return mergedFrom(s.competitions.Run(ctx, batches, filters)), nil
}

// OpenFootballDocument fetches the configured catalog document. override may
// point at another document on the same host.
func (s *CatalogService) OpenFootballDocument(ctx context.Context, override string) (Document, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.OpenFootballDocument")
	defer span.End()

	override = strings.TrimSpace(override)
	if s.openFootballURL == "" {
		if override != "" {
			return Document{}, fmt.Errorf("%w: catalog url is not configured", ErrInvalidInput)
		}
		return Document{}, nil
	}

	target := s.openFootballURL
	if override != "" {
		if !sameHost(s.openFootballURL, override) {
			return Document{}, fmt.Errorf("%w: url must be on the configured catalog host", ErrInvalidInput)
		}
		target = override
	}

	data, err := cached(ctx, s.cache, "openfootball:"+target, func(ctx context.Context) ([]byte, error) {
		return s.documents.Document(ctx, target)
	})
	if err != nil {
		return Document{}, unavailable(err, "fetch openfootball document")
	}
	return Document{Configured: true, SourceURL: target, Data: data}, nil
}

func (s *CatalogService) footballDataCompetitions(ctx context.Context) ([]competition.Competition, error) {
	return cached(ctx, s.cache, "football-data:competitions", s.footballData.Competitions)
}

func (s *CatalogService) theSportsDBLeagues(ctx context.Context) ([]competition.Competition, error) {
	return cached(ctx, s.cache, "thesportsdb:leagues", s.theSportsDB.AllLeagues)
}

func catalogSources(raw string) ([]source.Tag, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return []source.Tag{source.FootballData, source.TheSportsDB}, nil
	}
	tag, ok := source.Parse(raw)
	if !ok || (tag != source.FootballData && tag != source.TheSportsDB) {
		return nil, fmt.Errorf("%w: source must be all, football-data or thesportsdb", ErrInvalidInput)
	}
	return []source.Tag{tag}, nil
}

func sameHost(configured, candidate string) bool {
	want, err := url.Parse(configured)
	if err != nil {
		return false
	}
	got, err := url.Parse(candidate)
	if err != nil || (got.Scheme != "https" && got.Scheme != "http") {
		return false
	}
	return got.Host != "" && strings.EqualFold(got.Host, want.Host)
}
