package catalog

import (
	"strconv"
	"strings"
)

var alignmentNames = map[string]string{
	"L": "Lawful",
	"C": "Chaotic",
	"N": "Neutral",
}

// AlignmentName expands an alignment code (L, C, N) to its display name.
// Unknown codes are returned unchanged.
func AlignmentName(code string) string {
	if n, ok := alignmentNames[code]; ok {
		return n
	}
	return code
}

// FormatModifier renders an ability modifier with an explicit sign: +2, -1, +0.
func FormatModifier(mod int) string {
	if mod >= 0 {
		return "+" + strconv.Itoa(mod)
	}
	return strconv.Itoa(mod)
}

// TierLabel renders a spell tier ("1".."5") as an ordinal ("1st".."5th").
// Values that are not integers are returned unchanged.
func TierLabel(tier string) string {
	n, err := strconv.Atoi(tier)
	if err != nil {
		return tier
	}
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return tier + suffix
}

// ClassNames capitalises spell class tags for display (wizard -> Wizard).
func ClassNames(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c == "" {
			continue
		}
		out = append(out, strings.ToUpper(c[:1])+c[1:])
	}
	return out
}
