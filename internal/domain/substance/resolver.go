package substance

import (
	"strings"

	"github.com/turtacn/EatTrue/pkg/errors"
)

// MatchTier identifies which resolution rule produced a Resolution.
type MatchTier int

const (
	// MatchExact: the token equals a record id.
	MatchExact MatchTier = iota + 1
	// MatchDetectionName: the token and a detection name contain one another.
	MatchDetectionName
	// MatchGenericTerm: the token contains a generic category phrase.
	MatchGenericTerm
	// MatchUnknown: nothing matched; the record is a placeholder.
	MatchUnknown
)

func (t MatchTier) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchDetectionName:
		return "detection_name"
	case MatchGenericTerm:
		return "generic_term"
	case MatchUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Resolution is the outcome of resolving one token. Records has exactly one
// element unless Tier is MatchGenericTerm.
type Resolution struct {
	Token   string
	Tier    MatchTier
	Records []Record
}

// Resolver maps ingredient tokens onto catalog records. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver over catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Lookup returns the record with the given id, or a CodeSubstanceNotFound
// error.
func (r *Resolver) Lookup(id string) (Record, error) {
	rec, ok := r.catalog.Lookup(id)
	if !ok {
		return Record{}, errors.SubstanceNotFound(id)
	}
	return rec, nil
}

// Resolve applies the matching tiers in priority order and stops at the first
// that matches:
//
//  1. exact id
//  2. detection name, either direction of substring containment, records in
//     catalog order and names in declared order
//  3. generic category phrase contained in the token; ids missing from the
//     catalog become placeholders named after the token
//  4. a single placeholder named after the original token
//
// A token that is blank after trimming always resolves to a placeholder.
func (r *Resolver) Resolve(token string) Resolution {
	normalized := strings.ToLower(token)
	if strings.TrimSpace(normalized) == "" {
		return Resolution{Token: token, Tier: MatchUnknown, Records: []Record{Unknown(token)}}
	}

	if rec, ok := r.catalog.Lookup(normalized); ok {
		return Resolution{Token: token, Tier: MatchExact, Records: []Record{rec}}
	}

	for _, rec := range r.catalog.records {
		for _, name := range rec.DetectionNames {
			if strings.Contains(normalized, name) || strings.Contains(name, normalized) {
				return Resolution{Token: token, Tier: MatchDetectionName, Records: []Record{rec}}
			}
		}
	}

	for _, g := range r.catalog.generics {
		if !strings.Contains(normalized, g.Phrase) {
			continue
		}
		recs := make([]Record, 0, len(g.SubstanceIDs))
		for _, id := range g.SubstanceIDs {
			if rec, ok := r.catalog.Lookup(id); ok {
				recs = append(recs, rec)
			} else {
				recs = append(recs, Unknown(normalized))
			}
		}
		return Resolution{Token: token, Tier: MatchGenericTerm, Records: recs}
	}

	return Resolution{Token: token, Tier: MatchUnknown, Records: []Record{Unknown(token)}}
}

// ResolveAll resolves tokens in order.
func (r *Resolver) ResolveAll(tokens []string) []Resolution {
	out := make([]Resolution, len(tokens))
	for i, t := range tokens {
		out[i] = r.Resolve(t)
	}
	return out
}

//Personal.AI order the ending
