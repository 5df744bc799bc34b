package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/turtacn/EatTrue/internal/domain/substance"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// Scoring constants.
const (
	vulnerableMultiplier = 1.2

	bannedPenalty     = 30
	restrictedPenalty = 15

	imminentBanDays = 365
	nearBanDays     = 730
	imminentPenalty = 20
	nearPenalty     = 10

	safeBelow    = 60
	cautionBelow = 80

	weightClean      = 0.4
	weightPackaging  = 0.2
	weightRegulatory = 0.2
	weightTemporal   = 0.2

	// packagingSubstanceID is the only substance that lowers the packaging score.
	packagingSubstanceID = "pfas"
)

// vulnerabilityRule ties a population descriptor fragment to a profile
// predicate. Descriptors match by case-sensitive substring, so "Children
// under 12" satisfies the "Children" rule.
type vulnerabilityRule struct {
	descriptor string
	applies    func(Profile) bool
}

var vulnerabilityRules = []vulnerabilityRule{
	{"Children", func(p Profile) bool { return p.Age < 18 }},
	{"Pregnant", func(p Profile) bool { return p.PregnancyStatus == Pregnant }},
	{"Diabetics", func(p Profile) bool { return p.HasPreference(PreferenceDiabetic) }},
	{"Hypertension", func(p Profile) bool { return p.HasPreference(PreferenceLowSodium) }},
}

// IsVulnerable reports whether any of rec's population descriptors matches a
// rule that applies to profile.
func IsVulnerable(rec substance.Record, profile Profile) bool {
	for _, pop := range rec.VulnerablePopulations {
		for _, rule := range vulnerabilityRules {
			if strings.Contains(pop, rule.descriptor) && rule.applies(profile) {
				return true
			}
		}
	}
	return false
}

// RegulatoryPenalty returns 30 when rec is banned in any jurisdiction,
// otherwise 15 when it is restricted in any, otherwise 0.
func RegulatoryPenalty(rec substance.Record) int {
	switch {
	case rec.HasStatus(substance.StatusBanned):
		return bannedPenalty
	case rec.HasStatus(substance.StatusRestricted):
		return restrictedPenalty
	default:
		return 0
	}
}

// TemporalPenalty returns 20 when rec's upcoming ban is less than 365 days
// after now (bans already in force included), 10 when less than 730 days,
// otherwise 0. An unparsable ban date is a CodeDataIntegrity error naming
// the record.
func TemporalPenalty(rec substance.Record, now time.Time) (int, error) {
	if rec.UpcomingBan == nil {
		return 0, nil
	}
	banAt, err := rec.UpcomingBan.Time()
	if err != nil {
		return 0, errors.DataIntegrity(rec.ID, err)
	}
	days := float64(banAt.Sub(now)) / float64(24*time.Hour)
	switch {
	case days < imminentBanDays:
		return imminentPenalty, nil
	case days < nearBanDays:
		return nearPenalty, nil
	default:
		return 0, nil
	}
}

// round is half-up rounding on the real line, matching how scores have always
// been displayed (-2.5 rounds to -2).
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampRound(x float64) int {
	return round(math.Max(0, x))
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock sets the clock used for upcoming-ban day counts.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scorer) { s.clock = c }
}

// Scorer computes AnalysisResults. It is stateless apart from its resolver
// and clock and is safe for concurrent use.
type Scorer struct {
	resolver *substance.Resolver
	clock    clockwork.Clock
}

// NewScorer returns a Scorer resolving tokens with resolver. The real clock
// is used unless WithClock is given.
func NewScorer(resolver *substance.Resolver, opts ...Option) *Scorer {
	s := &Scorer{resolver: resolver, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// unit is one resolved substance paired with the token it came from.
type unit struct {
	token  string
	tier   substance.MatchTier
	record substance.Record
}

// tally is the running fold over scoring units.
type tally struct {
	clean, packaging, regulatory, temporal float64
	safe, caution, risk                    int
	warnings                               []string
	findings                               []Finding
}

// Score resolves tokens and computes the report. A nil tokens slice is
// treated as absent input and yields PerfectResult; an empty non-nil slice
// is scored normally. A blank token scores as one unknown placeholder rather
// than being matched by substring against the first catalog record, since
// every detection name contains the empty string. The only error is a
// CodeDataIntegrity error for a substance whose ban date cannot be parsed.
func (s *Scorer) Score(tokens []string, profile Profile, history History) (*AnalysisResult, error) {
	if tokens == nil {
		return PerfectResult(), nil
	}

	var units []unit
	for _, res := range s.resolver.ResolveAll(tokens) {
		for _, rec := range res.Records {
			units = append(units, unit{token: res.Token, tier: res.Tier, record: rec})
		}
	}

	t, err := s.fold(units, profile)
	if err != nil {
		return nil, err
	}

	total := t.safe + t.caution + t.risk
	if total == 0 {
		total = 1
	}
	pct := func(c int) int { return round(float64(c) / float64(total) * 100) }

	result := &AnalysisResult{
		CleanScore:      clampRound(t.clean),
		PackagingScore:  clampRound(t.packaging),
		RegulatoryScore: clampRound(t.regulatory),
		TemporalScore:   clampRound(t.temporal),
		Breakdown:       Breakdown{Safe: pct(t.safe), Caution: pct(t.caution), Risk: pct(t.risk)},
		Warnings:        t.warnings,
		Findings:        t.findings,
	}
	result.OverallScore = round(
		weightClean*float64(result.CleanScore) +
			weightPackaging*float64(result.PackagingScore) +
			weightRegulatory*float64(result.RegulatoryScore) +
			weightTemporal*float64(result.TemporalScore))
	result.Trend = history.TrendFor(result.OverallScore)
	result.Badge = BadgeFor(result.OverallScore)
	return result, nil
}

func (s *Scorer) fold(units []unit, profile Profile) (tally, error) {
	t := tally{
		clean:      100,
		packaging:  100,
		regulatory: 100,
		temporal:   100,
		warnings:   []string{},
		findings:   make([]Finding, 0, len(units)),
	}
	n := float64(len(units))
	now := s.clock.Now()

	for _, u := range units {
		rec := u.record

		adjustment := rec.SeverityScore
		vulnerable := IsVulnerable(rec, profile)
		if vulnerable {
			adjustment *= vulnerableMultiplier
			t.warnings = append(t.warnings, fmt.Sprintf("Warning: %s may be harmful for %s",
				rec.Name, strings.Join(rec.VulnerablePopulations, ", ")))
		}

		regPenalty := RegulatoryPenalty(rec)
		tempPenalty, err := TemporalPenalty(rec, now)
		if err != nil {
			return tally{}, err
		}

		t.clean -= adjustment / n
		if rec.ID == packagingSubstanceID {
			t.packaging -= adjustment / n
		}
		t.regulatory -= float64(regPenalty) / n
		t.temporal -= float64(tempPenalty) / n

		switch {
		case rec.SeverityScore < safeBelow:
			t.safe++
		case rec.SeverityScore < cautionBelow:
			t.caution++
		default:
			t.risk++
		}

		t.findings = append(t.findings, Finding{
			Token:             u.token,
			SubstanceID:       rec.ID,
			Name:              rec.Name,
			MatchTier:         u.tier.String(),
			SeverityScore:     rec.SeverityScore,
			Vulnerable:        vulnerable,
			RegulatoryPenalty: regPenalty,
			TemporalPenalty:   tempPenalty,
		})
	}
	return t, nil
}

//Personal.AI order the ending
