package risk

import "github.com/turtacn/EatTrue/internal/domain/substance"

// Trend classifies a score against recent history.
type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendDeclining Trend = "Declining"
	TrendStable    Trend = "Stable"
)

// Badge is the display grade of an overall score.
type Badge string

const (
	BadgeExcellent Badge = "Excellent"
	BadgeGood      Badge = "Good"
	BadgeFair      Badge = "Fair"
	BadgePoor      Badge = "Poor"
)

// BadgeFor grades an overall score: ≥80 Excellent, ≥60 Good, ≥40 Fair,
// otherwise Poor.
func BadgeFor(score int) Badge {
	switch {
	case score >= 80:
		return BadgeExcellent
	case score >= 60:
		return BadgeGood
	case score >= 40:
		return BadgeFair
	default:
		return BadgePoor
	}
}

// Breakdown holds the percentage of scoring units in each severity bucket.
type Breakdown struct {
	Safe    int `json:"safe"`
	Caution int `json:"caution"`
	Risk    int `json:"risk"`
}

// Finding explains how one scoring unit was identified and weighed.
type Finding struct {
	Token             string  `json:"token"`
	SubstanceID       string  `json:"substance_id"`
	Name              string  `json:"name"`
	MatchTier         string  `json:"match_tier"`
	SeverityScore     float64 `json:"severity_score"`
	Vulnerable        bool    `json:"vulnerable"`
	RegulatoryPenalty int     `json:"regulatory_penalty"`
	TemporalPenalty   int     `json:"temporal_penalty"`
}

// AnalysisResult is the risk report for one scan. Component scores lie in
// [0, 100]; OverallScore is their weighted sum and is not clamped.
type AnalysisResult struct {
	CleanScore      int       `json:"clean_score"`
	PackagingScore  int       `json:"packaging_score"`
	RegulatoryScore int       `json:"regulatory_score"`
	TemporalScore   int       `json:"temporal_score"`
	OverallScore    int       `json:"overall_score"`
	Breakdown       Breakdown `json:"breakdown"`
	Warnings        []string  `json:"warnings"`
	Trend           Trend     `json:"trend"`
	Badge           Badge     `json:"badge"`
	Findings        []Finding `json:"findings,omitempty"`
}

// PerfectResult is returned for absent input.
func PerfectResult() *AnalysisResult {
	return &AnalysisResult{
		CleanScore:      100,
		PackagingScore:  100,
		RegulatoryScore: 100,
		TemporalScore:   100,
		OverallScore:    100,
		Breakdown:       Breakdown{Safe: 100},
		Warnings:        []string{},
		Trend:           TrendStable,
		Badge:           BadgeExcellent,
	}
}

// UnknownCount returns the number of findings that resolved to placeholders.
func (r *AnalysisResult) UnknownCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.SubstanceID == substance.UnknownID {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
