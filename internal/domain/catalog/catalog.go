// Package catalog holds the static list of supported competitions and the
// club name lookups that map them onto SportMonks ids.
package catalog

import (
	_ "embed"
	"os"
	"slices"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Competition is one supported competition and its SportMonks league id.
type Competition struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Country            string `yaml:"country"`
	Type               string `yaml:"type"`
	SportMonksLeagueID int64  `yaml:"sportmonks_league_id"`
}

// Club resolves a club name, or any alias, to a SportMonks team id.
type Club struct {
	Name             string   `yaml:"name"`
	Aliases          []string `yaml:"aliases"`
	SportMonksTeamID int64    `yaml:"sportmonks_team_id"`
}

type document struct {
	Competitions []Competition `yaml:"competitions"`
	Clubs        []Club        `yaml:"clubs"`
}

// Catalog is immutable after Parse and safe for concurrent reads.
type Catalog struct {
	competitions []Competition
	byID         map[string]Competition
	teamIDs      map[string]int64
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read catalog %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode catalog yaml")
	}

	c := &Catalog{
		competitions: make([]Competition, 0, len(doc.Competitions)),
		byID:         make(map[string]Competition, len(doc.Competitions)),
		teamIDs:      make(map[string]int64, len(doc.Clubs)*2),
	}

	for i, item := range doc.Competitions {
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		if item.ID == "" {
			return nil, crerr.Newf("catalog competition #%d has no id", i)
		}
		if item.SportMonksLeagueID <= 0 {
			return nil, crerr.Newf("catalog competition %s has no sportmonks_league_id", item.ID)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, crerr.Newf("catalog competition %s is listed twice", item.ID)
		}
		c.byID[item.ID] = item
		c.competitions = append(c.competitions, item)
	}

	for _, club := range doc.Clubs {
		if club.SportMonksTeamID <= 0 {
			return nil, crerr.Newf("catalog club %q has no sportmonks_team_id", club.Name)
		}
		for _, name := range append([]string{club.Name}, club.Aliases...) {
			key := clubKey(name)
			if key == "" {
				continue
			}
			if existing, ok := c.teamIDs[key]; ok && existing != club.SportMonksTeamID {
				return nil, crerr.Newf("catalog club name %q maps to both %d and %d", name, existing, club.SportMonksTeamID)
			}
			c.teamIDs[key] = club.SportMonksTeamID
		}
	}

	return c, nil
}

// Competitions returns the supported competitions in file order.
func (c *Catalog) Competitions() []Competition {
	return slices.Clone(c.competitions)
}

func (c *Catalog) Competition(id string) (Competition, bool) {
	item, ok := c.byID[strings.TrimSpace(id)]
	return item, ok
}

// TeamID resolves a club name case-insensitively.
func (c *Catalog) TeamID(name string) (int64, bool) {
	id, ok := c.teamIDs[clubKey(name)]
	return id, ok
}

// Records exposes the catalog as competition records tagged with the catalog source.
func (c *Catalog) Records() []competition.Competition {
	out := make([]competition.Competition, 0, len(c.competitions))
	for _, item := range c.competitions {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		out = append(out, competition.Competition{
			ID:         item.ID,
			Source:     source.Catalog,
			Name:       &name,
			Type:       competition.ParseType(item.Type),
			Country:    item.Country,
			ProviderID: item.SportMonksLeagueID,
		})
	}
	return out
}

// LeagueName returns the catalog name for a SportMonks league id.
func (c *Catalog) LeagueName(sportMonksLeagueID int64) (string, bool) {
	for _, item := range c.competitions {
		if item.SportMonksLeagueID == sportMonksLeagueID {
			return item.Name, true
		}
	}
	return "", false
}

func clubKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
