package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

const (
	cacheNoStore      = "no-store"
	cacheMatchesDay   = "public, s-maxage=60, stale-while-revalidate=30"
	cacheTeamHistory  = "public, s-maxage=3600, stale-while-revalidate=600"
	cacheCatalog      = "public, s-maxage=3600, stale-while-revalidate=86400"
	cacheLeagues      = "public, s-maxage=86400"
	cacheWikidata     = "public, s-maxage=86400, stale-while-revalidate=604800"
	cacheCrest        = "public, max-age=86400"
	cacheSearchResult = "public, s-maxage=300"
)

type Handler struct {
	catalogService *usecase.CatalogService
	leagueService  *usecase.LeagueService
	matchService   *usecase.MatchService
	teamService    *usecase.TeamService
	stadiumService *usecase.StadiumService
	crestService   *usecase.CrestService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	leagueService *usecase.LeagueService,
	matchService *usecase.MatchService,
	teamService *usecase.TeamService,
	stadiumService *usecase.StadiumService,
	crestService *usecase.CrestService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService: catalogService,
		leagueService:  leagueService,
		matchService:   matchService,
		teamService:    teamService,
		stadiumService: stadiumService,
		crestService:   crestService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// fail logs client errors at warn and everything else at error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if mapError(ctx, err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, "error", err)
	} else {
		h.logger.ErrorContext(ctx, msg, "error", err)
	}
	writeError(ctx, w, err)
}

func writeCached(ctx context.Context, w http.ResponseWriter, cacheControl string, data any) {
	w.Header().Set("Cache-Control", cacheControl)
	writeSuccess(ctx, w, http.StatusOK, data)
}

// queryInt reads an optional integer parameter. Absent or blank means 0.
func queryInt(values url.Values, keys ...string) (int, error) {
	raw := queryString(values, keys...)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, keys[0])
	}
	return value, nil
}

// queryString returns the first non-blank value among keys, so aliases can be
// listed after the canonical name.
func queryString(values url.Values, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(values.Get(key)); value != "" {
			return value
		}
	}
	return ""
}
