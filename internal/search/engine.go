// Package search implements the creator search and filter engine. Name and
// location predicates are pushed to the record store; everything else is
// applied in-memory as a conjunctive filter chain. Collections are assumed
// small; each call is O(n) in collection size.
package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// Params holds the search filters. An empty string is treated identically to
// an absent filter; nil min/max means no bound on that side.
type Params struct {
	Name           string
	Genre          string
	Country        string
	State          string
	MinSubscribers *int64
	MaxSubscribers *int64
}

// ParseParams maps URL query values onto Params. A subscriber bound that does
// not parse as a non-negative integer is rejected with db.ErrInvalidArgument
// before any store call is made.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Name:    strings.TrimSpace(values.Get("name")),
		Genre:   strings.TrimSpace(values.Get("genre")),
		Country: strings.TrimSpace(values.Get("country")),
		State:   strings.TrimSpace(values.Get("state")),
	}

	var err error
	if p.MinSubscribers, err = parseBound(values.Get("min_subscribers"), "min_subscribers"); err != nil {
		return Params{}, err
	}
	if p.MaxSubscribers, err = parseBound(values.Get("max_subscribers"), "max_subscribers"); err != nil {
		return Params{}, err
	}

	return p, nil
}

func parseBound(raw, key string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer, got %q: %w", key, raw, db.ErrInvalidArgument)
	}

	return &n, nil
}

// Engine answers creator searches against an injected CreatorStore.
type Engine struct {
	creators store.CreatorStore
}

// NewEngine creates a search Engine over the given creator store.
func NewEngine(creators store.CreatorStore) *Engine {
	return &Engine{creators: creators}
}

// Search returns the creators matching all supplied filters. No ordering is
// guaranteed by this operation; callers impose their own when presenting.
func (e *Engine) Search(ctx context.Context, p Params) ([]*models.Creator, error) {
	candidates, locationPushed, err := e.fetchCandidates(ctx, p)
	if err != nil {
		return nil, err
	}

	results := make([]*models.Creator, 0, len(candidates))
	for _, c := range candidates {
		if matches(c, p, locationPushed) {
			results = append(results, c)
		}
	}

	return results, nil
}

// Facets lists the distinct filter values present in the creator collection,
// feeding the discovery filter dropdowns.
type Facets struct {
	Countries []string `json:"countries"`
	States    []string `json:"states"`
}

// ListFacets returns the sorted distinct countries across all creators.
// When country is non-empty, the distinct states within that country are
// included as well; states from other countries never are.
func (e *Engine) ListFacets(ctx context.Context, country string) (*Facets, error) {
	creators, err := e.creators.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	countrySet := make(map[string]struct{})
	stateSet := make(map[string]struct{})
	for _, c := range creators {
		if c.Country != "" {
			countrySet[c.Country] = struct{}{}
		}
		if country != "" && c.Country == country && c.State != "" {
			stateSet[c.State] = struct{}{}
		}
	}

	return &Facets{
		Countries: sortedKeys(countrySet),
		States:    sortedKeys(stateSet),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fetchCandidates pushes the most selective supported predicate to the store:
// name substring first, then country/state equality, else the full collection.
// The returned flag reports whether the location predicates were pushed.
func (e *Engine) fetchCandidates(ctx context.Context, p Params) ([]*models.Creator, bool, error) {
	switch {
	case p.Name != "":
		creators, err := e.creators.SearchByName(ctx, p.Name)
		return creators, false, err
	case p.Country != "":
		creators, err := e.creators.FindByLocation(ctx, p.Country, p.State)
		return creators, true, err
	default:
		creators, err := e.creators.GetAll(ctx)
		return creators, false, err
	}
}

func matches(c *models.Creator, p Params, locationPushed bool) bool {
	if !locationPushed {
		if p.Country != "" && c.Country != p.Country {
			return false
		}
		if p.State != "" && c.State != p.State {
			return false
		}
	}
	if p.Genre != "" && c.Genre != p.Genre {
		return false
	}
	if p.MinSubscribers != nil && c.SubscriberCount < *p.MinSubscribers {
		return false
	}
	if p.MaxSubscribers != nil && c.SubscriberCount > *p.MaxSubscribers {
		return false
	}
	return true
}
