package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/grounder-api/external/crestcdn"
	"github.com/riskibarqy/grounder-api/external/footballdata"
	"github.com/riskibarqy/grounder-api/external/openfootball"
	"github.com/riskibarqy/grounder-api/external/sportmonks"
	"github.com/riskibarqy/grounder-api/external/thesportsdb"
	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/external/wikidata"
	"github.com/riskibarqy/grounder-api/internal/config"
	"github.com/riskibarqy/grounder-api/internal/domain/catalog"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	supported, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	footballData := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:   cfg.FootballDataBaseURL,
		APIKey:    cfg.FootballDataAPIKey,
		Transport: newTransport(cfg, logger, source.FootballData, cfg.FootballDataAPIKey),
	})
	theSportsDB := thesportsdb.NewClient(thesportsdb.ClientConfig{
		BaseURL:   cfg.TheSportsDBBaseURL,
		APIKey:    cfg.TheSportsDBAPIKey,
		Transport: newTransport(cfg, logger, source.TheSportsDB, thesportsdb.Secret(cfg.TheSportsDBAPIKey)),
	})
	sportMonks := sportmonks.NewClient(sportmonks.ClientConfig{
		BaseURL:   cfg.SportMonksBaseURL,
		Token:     cfg.SportMonksToken,
		Transport: newTransport(cfg, logger, source.SportMonks, cfg.SportMonksToken),
	})
	wikidataClient := wikidata.NewClient(wikidata.ClientConfig{
		Endpoint:  cfg.WikidataEndpoint,
		UserAgent: cfg.WikidataUserAgent,
		Transport: newTransport(cfg, logger, source.Wikidata),
	})
	documents := openfootball.NewClient(newTransport(cfg, logger, source.OpenFootball))
	crests := crestcdn.NewClient(crestcdn.ClientConfig{Timeout: cfg.UpstreamTimeout, Logger: logger.Named("crest")})

	var responseCache *usecase.ResponseCache
	if cfg.CacheEnabled {
		responseCache = usecase.NewResponseCache(cfg.CacheTTL)
	}

	catalogSvc, err := usecase.NewCatalogService(footballData, theSportsDB, wikidataClient, documents, supported, responseCache, cfg.OpenFootballCatalogURL, logger)
	if err != nil {
		return nil, fmt.Errorf("build catalog service: %w", err)
	}
	leagueSvc, err := usecase.NewLeagueService(footballData, theSportsDB, sportMonks, responseCache, logger)
	if err != nil {
		return nil, fmt.Errorf("build league service: %w", err)
	}
	matchSvc, err := usecase.NewMatchService(footballData, sportMonks, theSportsDB, supported, cfg.MatchFieldMerge, logger)
	if err != nil {
		return nil, fmt.Errorf("build match service: %w", err)
	}
	stadiumSvc, err := usecase.NewStadiumService(wikidataClient, responseCache, logger)
	if err != nil {
		return nil, fmt.Errorf("build stadium service: %w", err)
	}
	teamSvc := usecase.NewTeamService(theSportsDB, cfg.TeamEnrichWorkers, logger)
	crestSvc := usecase.NewCrestService(crests, cfg.CrestAllowedPrefix)

	handler := httpapi.NewHandler(catalogSvc, leagueSvc, matchSvc, teamSvc, stadiumSvc, crestSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// newTransport builds the retrying, circuit-broken HTTP client for one source.
func newTransport(cfg config.Config, logger *logging.Logger, tag source.Tag, secrets ...string) *upstream.Client {
	return upstream.New(upstream.Config{
		Name:           tag.String(),
		Timeout:        cfg.UpstreamTimeout,
		MaxRetries:     cfg.UpstreamMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuitBreaker(),
		Secrets:        secrets,
	})
}
