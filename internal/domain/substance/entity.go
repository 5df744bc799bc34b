// Package substance holds the food-substance knowledge base: the immutable
// Record type, the ordered Catalog built once at load time, the Resolver that
// maps free-text ingredient tokens onto catalog records, and ADI formatting.
package substance

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Regulatory status
// ─────────────────────────────────────────────────────────────────────────────

// Jurisdiction names a regulatory region, e.g. "india", "usa", "eu".
type Jurisdiction string

// Jurisdictions present in the built-in catalog.
const (
	JurisdictionIndia Jurisdiction = "india"
	JurisdictionUSA   Jurisdiction = "usa"
	JurisdictionEU    Jurisdiction = "eu"
)

// DefaultJurisdictions is the set every placeholder record reports on.
var DefaultJurisdictions = []Jurisdiction{JurisdictionIndia, JurisdictionUSA, JurisdictionEU}

// Status is an open enumeration. Values outside the known constants are
// accepted and simply never trigger a regulatory penalty.
type Status string

const (
	StatusPermitted  Status = "Permitted"
	StatusRestricted Status = "Restricted"
	StatusBanned     Status = "Banned"
	StatusGRAS       Status = "GRAS"
	StatusPhasedOut  Status = "Phased out"
	StatusUnknown    Status = "Unknown"
)

// ─────────────────────────────────────────────────────────────────────────────
// Upcoming ban
// ─────────────────────────────────────────────────────────────────────────────

// BanDateLayout is the layout of Ban.Date.
const BanDateLayout = "2006-01-02"

// Ban describes a scheduled regulatory change.
type Ban struct {
	Region      string `yaml:"region" json:"region"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
}

// Time parses Date as a UTC calendar day.
func (b Ban) Time() (time.Time, error) {
	t, err := time.Parse(BanDateLayout, b.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ban date %q: %w", b.Date, err)
	}
	return t, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Record
// ─────────────────────────────────────────────────────────────────────────────

// UnknownID is the id carried by every placeholder record.
const UnknownID = "unknown"

// UnknownSeverity is the fixed severity of placeholder records.
const UnknownSeverity = 50.0

// Record is one catalog entry. Records are owned by the Catalog and treated
// as immutable once loaded.
type Record struct {
	ID                    string                  `yaml:"id" json:"id"`
	Name                  string                  `yaml:"name" json:"name"`
	Aliases               []string                `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	ENumber               string                  `yaml:"e_number,omitempty" json:"e_number,omitempty"`
	ADI                   string                  `yaml:"adi,omitempty" json:"adi,omitempty"`
	RegulatoryStatus      map[Jurisdiction]Status `yaml:"regulatory_status" json:"regulatory_status"`
	SeverityScore         float64                 `yaml:"severity_score" json:"severity_score"`
	VulnerablePopulations []string                `yaml:"vulnerable_populations,omitempty" json:"vulnerable_populations,omitempty"`
	DetectionNames        []string                `yaml:"detection_names" json:"detection_names,omitempty"`
	UpcomingBan           *Ban                    `yaml:"upcoming_ban,omitempty" json:"upcoming_ban,omitempty"`
	Citations             []string                `yaml:"citations" json:"citations"`

	// Informational fields shown in detail views.
	MechanismOfHarm  string              `yaml:"mechanism_of_harm,omitempty" json:"mechanism_of_harm,omitempty"`
	OrgansAffected   []string            `yaml:"organs_affected,omitempty" json:"organs_affected,omitempty"`
	CellularDamage   string              `yaml:"cellular_damage,omitempty" json:"cellular_damage,omitempty"`
	CommonlyFoundIn  []string            `yaml:"commonly_found_in,omitempty" json:"commonly_found_in,omitempty"`
	ImmediateEffects map[string][]string `yaml:"immediate_effects,omitempty" json:"immediate_effects,omitempty"`
	LongTermEffects  map[string][]string `yaml:"long_term_effects,omitempty" json:"long_term_effects,omitempty"`
}

// Unknown returns the placeholder used when a token cannot be identified.
func Unknown(name string) Record {
	status := make(map[Jurisdiction]Status, len(DefaultJurisdictions))
	for _, j := range DefaultJurisdictions {
		status[j] = StatusUnknown
	}
	return Record{
		ID:               UnknownID,
		Name:             name,
		SeverityScore:    UnknownSeverity,
		RegulatoryStatus: status,
		Citations:        []string{},
	}
}

// IsUnknown reports whether r is a placeholder.
func (r Record) IsUnknown() bool {
	return r.ID == UnknownID
}

// HasStatus reports whether any jurisdiction lists r with status s.
func (r Record) HasStatus(s Status) bool {
	for _, v := range r.RegulatoryStatus {
		if v == s {
			return true
		}
	}
	return false
}

// FormattedADI returns the display form of the record's ADI.
func (r Record) FormattedADI() string {
	return FormatADI(r.ADI)
}

//Personal.AI order the ending
