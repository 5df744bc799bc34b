package substance

import (
	"fmt"
	"strings"

	"github.com/turtacn/EatTrue/pkg/errors"
)

// GenericTerm maps a lowercase category phrase to an ordered list of record
// ids, e.g. "artificial sweeteners" → [e951, e954].
type GenericTerm struct {
	Phrase       string   `yaml:"phrase" json:"phrase"`
	SubstanceIDs []string `yaml:"substances" json:"substances"`
}

// Catalog is the ordered, read-only knowledge base. Record order is the
// declared insertion order and is the tie-break order for detection-name
// matching; generic terms likewise keep their declared order.
type Catalog struct {
	records  []Record
	index    map[string]int
	generics []GenericTerm
}

// NewCatalog validates and indexes records and generic terms. Detection
// names and generic phrases are lowercased. Duplicate ids, empty ids, records
// without detection names, and empty generic terms are reported as
// CodeDataIntegrity errors.
func NewCatalog(records []Record, generics []GenericTerm) (*Catalog, error) {
	c := &Catalog{
		records:  make([]Record, 0, len(records)),
		index:    make(map[string]int, len(records)),
		generics: make([]GenericTerm, 0, len(generics)),
	}

	for i, r := range records {
		id := strings.ToLower(strings.TrimSpace(r.ID))
		if id == "" {
			return nil, errors.DataIntegrity(fmt.Sprintf("#%d", i), fmt.Errorf("record has no id"))
		}
		if id == UnknownID {
			return nil, errors.DataIntegrity(id, fmt.Errorf("id %q is reserved for placeholders", UnknownID))
		}
		if _, dup := c.index[id]; dup {
			return nil, errors.DataIntegrity(id, fmt.Errorf("duplicate substance id"))
		}

		names := make([]string, 0, len(r.DetectionNames))
		for _, n := range r.DetectionNames {
			n = strings.ToLower(strings.TrimSpace(n))
			if n != "" {
				names = append(names, n)
			}
		}
		if len(names) == 0 {
			return nil, errors.DataIntegrity(id, fmt.Errorf("record has no detection names"))
		}
		if r.SeverityScore < 0 || r.SeverityScore > 100 {
			return nil, errors.DataIntegrity(id, fmt.Errorf("severity %.1f outside [0, 100]", r.SeverityScore))
		}

		r.ID = id
		r.DetectionNames = names
		if r.Citations == nil {
			r.Citations = []string{}
		}
		c.index[id] = len(c.records)
		c.records = append(c.records, r)
	}

	for _, g := range generics {
		phrase := strings.ToLower(strings.TrimSpace(g.Phrase))
		if phrase == "" {
			return nil, errors.DataIntegrity("generic_terms", fmt.Errorf("generic term has an empty phrase"))
		}
		if len(g.SubstanceIDs) == 0 {
			return nil, errors.DataIntegrity("generic_terms", fmt.Errorf("generic term %q maps to no substances", phrase))
		}
		ids := make([]string, len(g.SubstanceIDs))
		for i, id := range g.SubstanceIDs {
			ids[i] = strings.ToLower(strings.TrimSpace(id))
		}
		c.generics = append(c.generics, GenericTerm{Phrase: phrase, SubstanceIDs: ids})
	}

	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns the records in declared order. The slice is a copy; the
// records share their inner slices and maps with the catalog and must not be
// modified.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup returns the record with the given id. The id is matched
// case-insensitively.
func (c *Catalog) Lookup(id string) (Record, bool) {
	i, ok := c.index[strings.ToLower(id)]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// GenericTerms returns the generic terms in declared order.
func (c *Catalog) GenericTerms() []GenericTerm {
	out := make([]GenericTerm, len(c.generics))
	copy(out, c.generics)
	return out
}

// MissingGenericTargets lists "phrase → id" pairs whose id is not in the
// catalog. Such ids resolve to placeholders at scan time.
func (c *Catalog) MissingGenericTargets() []string {
	var missing []string
	for _, g := range c.generics {
		for _, id := range g.SubstanceIDs {
			if _, ok := c.index[id]; !ok {
				missing = append(missing, g.Phrase+" → "+id)
			}
		}
	}
	return missing
}

// Validate checks the fields that are only interpreted at scoring time. At
// present that is the upcoming-ban date; a bad date yields a
// CodeDataIntegrity error naming the first offending record.
func (c *Catalog) Validate() error {
	for _, r := range c.records {
		if r.UpcomingBan == nil {
			continue
		}
		if _, err := r.UpcomingBan.Time(); err != nil {
			return errors.DataIntegrity(r.ID, err)
		}
	}
	return nil
}

//Personal.AI order the ending
