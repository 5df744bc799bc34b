package risk

import "time"

// HistoryEntry records the overall score of one past scan.
type HistoryEntry struct {
	Date         time.Time `json:"date"`
	OverallScore int       `json:"overall_score"`
}

// History is the caller-owned, append-only list of past scans, oldest first.
type History []HistoryEntry

// Append adds e at the end.
func (h *History) Append(e HistoryEntry) {
	*h = append(*h, e)
}

// Recent returns the last n entries, or all of them when n ≤ 0 or n exceeds
// the length. The result shares storage with h.
func (h History) Recent(n int) History {
	if n <= 0 || n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}

// trendWindow is the number of most recent entries a new score is compared
// against.
const trendWindow = 3

// TrendFor compares overall with the mean of the last three entries. With
// three or more entries the trend is Improving when overall is strictly
// greater than that mean and Declining otherwise; shorter histories are
// Stable.
func (h History) TrendFor(overall int) Trend {
	if len(h) < trendWindow {
		return TrendStable
	}
	sum := 0
	for _, e := range h.Recent(trendWindow) {
		sum += e.OverallScore
	}
	if float64(overall) > float64(sum)/trendWindow {
		return TrendImproving
	}
	return TrendDeclining
}

//Personal.AI order the ending
