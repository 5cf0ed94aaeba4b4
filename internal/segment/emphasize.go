package segment

import "regexp"

// emphasisPattern matches the numeric spans worth highlighting on a
// card: $-prefixed amounts, percentage values, and comma-grouped digit
// runs. Alternatives are ordered longest-match-first so "$3,000" is
// taken whole rather than as "3,000".
var emphasisPattern = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?|\d[\d,]*(?:\.\d+)?%|\d{1,3}(?:,\d{3})+`)

// Emphasize wraps numeric spans in <em> markers. It is a cosmetic
// render-time transform over a single string and plays no part in
// segmentation.
func Emphasize(s string) string {
	return emphasisPattern.ReplaceAllString(s, "<em>$0</em>")
}
