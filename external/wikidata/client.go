// Package wikidata queries the Wikidata SPARQL endpoint for football
// competitions and stadiums.
package wikidata

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/stadium"
)

const (
	defaultEndpoint  = "https://query.wikidata.org/sparql"
	defaultUserAgent = "Grounder/1.0"
	sparqlResultType = "application/sparql-results+json"
	labelLanguages   = "fr,en"

	// Wikidata classes the queries walk with wdt:P31/wdt:P279*.
	classCompetition = "wd:Q27020041"
	classStadium     = "wd:Q483110"
)

type ClientConfig struct {
	Endpoint  string
	UserAgent string
	Transport *upstream.Client
}

type Client struct {
	endpoint  string
	userAgent string
	transport *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	transport := cfg.Transport
	if transport == nil {
		transport = upstream.New(upstream.Config{Name: source.Wikidata.String()})
	}
	return &Client{endpoint: endpoint, userAgent: userAgent, transport: transport}
}

// Competitions pages through football competitions with their country label.
func (c *Client) Competitions(ctx context.Context, limit, offset int) ([]competition.Competition, error) {
	query := buildQuery(
		"SELECT ?comp ?compLabel ?countryLabel WHERE {",
		"  ?comp wdt:P31/wdt:P279* "+classCompetition+" .",
		"  OPTIONAL { ?comp wdt:P17 ?country . }",
		labelService(),
		"}",
		pageClause(limit, offset),
	)

	rows, err := c.run(ctx, query)
	if err != nil {
		return nil, crerr.Wrap(err, "query wikidata competitions")
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		name := row.value("compLabel")
		out = append(out, competition.Competition{
			ID:      entityID(row.value("comp")),
			Source:  source.Wikidata,
			Name:    upstream.OptString(name),
			Type:    competition.TypeFromName(name),
			Country: row.value("countryLabel"),
		})
	}
	return out, nil
}

// Stadiums pages through stadiums that have coordinates and either no known
// capacity or a capacity above minCapacity.
func (c *Client) Stadiums(ctx context.Context, limit, offset, minCapacity int) ([]stadium.Stadium, error) {
	query := buildQuery(
		"SELECT ?stadium ?stadiumLabel ?capacity ?lat ?lon ?countryLabel WHERE {",
		"  ?stadium wdt:P31/wdt:P279* "+classStadium+" .",
		"  OPTIONAL { ?stadium wdt:P1083 ?capacity . }",
		"  OPTIONAL { ?stadium wdt:P625 ?coord . }",
		"  OPTIONAL { ?stadium wdt:P17 ?country . }",
		"  FILTER(BOUND(?coord))",
		"  FILTER(!BOUND(?capacity) || ?capacity > "+strconv.Itoa(max(minCapacity, 0))+")",
		"  BIND(geof:latitude(?coord) AS ?lat)",
		"  BIND(geof:longitude(?coord) AS ?lon)",
		labelService(),
		"}",
		pageClause(limit, offset),
	)

	rows, err := c.run(ctx, query)
	if err != nil {
		return nil, crerr.Wrap(err, "query wikidata stadiums")
	}

	out := make([]stadium.Stadium, 0, len(rows))
	for _, row := range rows {
		out = append(out, stadium.Stadium{
			ID:       entityID(row.value("stadium")),
			Source:   source.Wikidata,
			Name:     upstream.OptString(row.value("stadiumLabel")),
			Capacity: row.intValue("capacity"),
			Lat:      row.floatValue("lat"),
			Lon:      row.floatValue("lon"),
			Country:  row.value("countryLabel"),
		})
	}
	return out, nil
}

func (c *Client) run(ctx context.Context, sparql string) ([]binding, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("query", sparql)

	header := http.Header{}
	header.Set("Accept", sparqlResultType)
	header.Set("User-Agent", c.userAgent)

	var payload resultsEnvelope
	if err := c.transport.GetJSON(ctx, c.endpoint+"?"+values.Encode(), header, &payload); err != nil {
		return nil, err
	}
	return payload.Results.Bindings, nil
}

func buildQuery(lines ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, line := range lines {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}
	return strings.TrimSpace(buf.String())
}

func labelService() string {
	return `  SERVICE wikibase:label { bd:serviceParam wikibase:language "` + labelLanguages + `". }`
}

func pageClause(limit, offset int) string {
	return "LIMIT " + strconv.Itoa(max(limit, 1)) + "\nOFFSET " + strconv.Itoa(max(offset, 0))
}

// entityID turns http://www.wikidata.org/entity/Q123 into WD:Q123.
func entityID(uri string) string {
	uri = strings.TrimSpace(uri)
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		uri = uri[idx+1:]
	}
	return source.Wikidata.ID(uri)
}

type resultsEnvelope struct {
	Results struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

type binding map[string]struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (b binding) value(name string) string {
	return strings.TrimSpace(b[name].Value)
}

func (b binding) intValue(name string) *int {
	raw := b.value(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	value := int(parsed)
	return &value
}

func (b binding) floatValue(name string) *float64 {
	raw := b.value(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
