package substance

import "strings"

// FormatADI renders an Acceptable Daily Intake for display. Empty values read
// "Not specified"; values that are already qualified ("Not established",
// "Less than 5g/day") pass through; plain doses get " body weight" appended.
func FormatADI(adi string) string {
	if adi == "" {
		return "Not specified"
	}
	if strings.Contains(adi, "Not") || strings.Contains(adi, "Less than") {
		return adi
	}
	return adi + " body weight"
}

//Personal.AI order the ending
