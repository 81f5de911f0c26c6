package geo

import (
	"context"
	"fmt"
)

// Match is a resolved canonical (city, subdivision) pair.
type Match struct {
	City        string
	SubDivision string
}

// Resolver maps free-text city input onto the courier's canonical geography.
type Resolver struct {
	catalog *Cache
}

func NewResolver(catalog *Cache) (*Resolver, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog cache is required")
	}
	return &Resolver{catalog: catalog}, nil
}

// Resolve returns the canonical pair for a free-text city, or nil when the
// catalog knows nothing that matches. Subdivision names are checked before
// city names: subdivision input is more specific, and a subdivision named
// like an unrelated city must still resolve under its own city. When two
// cities share a subdivision name the catalog's first listing wins. Empty
// input resolves to nil without touching the catalog.
func (r *Resolver) Resolve(ctx context.Context, inputCity string) (*Match, error) {
	normalized := Normalize(inputCity)
	if normalized == "" {
		return nil, nil
	}

	regions, err := r.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	for _, region := range regions {
		for _, subDivision := range region.SubDivisions {
			if Normalize(subDivision) == normalized {
				return &Match{City: region.City, SubDivision: subDivision}, nil
			}
		}
	}

	for _, region := range regions {
		if Normalize(region.City) != normalized {
			continue
		}

		match := &Match{City: region.City, SubDivision: region.City}
		if len(region.SubDivisions) > 0 {
			match.SubDivision = region.SubDivisions[0]
		}
		return match, nil
	}

	return nil, nil
}
