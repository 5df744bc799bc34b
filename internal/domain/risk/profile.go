// Package risk scores resolved ingredients against a user's health profile
// and scan history.
package risk

import (
	"strings"

	"github.com/turtacn/EatTrue/pkg/errors"
)

// PregnancyStatus is pregnant or not_pregnant.
type PregnancyStatus string

const (
	Pregnant    PregnancyStatus = "pregnant"
	NotPregnant PregnancyStatus = "not_pregnant"
)

// Dietary preference tags that drive vulnerability rules.
const (
	PreferenceDiabetic  = "diabetic"
	PreferenceLowSodium = "low_sodium"
)

// DefaultAge is the age assumed for a user who never filled in a profile.
const DefaultAge = 30

// Profile is the caller-owned health profile read by the Scorer.
type Profile struct {
	Age                int             `json:"age"`
	DietaryPreferences []string        `json:"dietary_preferences"`
	PregnancyStatus    PregnancyStatus `json:"pregnancy_status"`
}

// DefaultProfile returns age 30, no preferences, not pregnant.
func DefaultProfile() Profile {
	return Profile{
		Age:                DefaultAge,
		DietaryPreferences: []string{},
		PregnancyStatus:    NotPregnant,
	}
}

// HasPreference reports whether tag is one of the profile's preferences.
// Tags are compared exactly.
func (p Profile) HasPreference(tag string) bool {
	for _, t := range p.DietaryPreferences {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate rejects negative ages and unknown pregnancy statuses.
func (p Profile) Validate() error {
	if p.Age < 0 {
		return errors.Newf(errors.CodeProfileInvalid, "age must be ≥ 0, got %d", p.Age)
	}
	switch p.PregnancyStatus {
	case Pregnant, NotPregnant:
	default:
		return errors.Newf(errors.CodeProfileInvalid,
			"pregnancy status %q is invalid; expected pregnant|not_pregnant", p.PregnancyStatus)
	}
	return nil
}

// ParsePreferences splits a comma-separated preference list, trimming each
// tag and dropping empty ones.
func ParsePreferences(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

//Personal.AI order the ending
