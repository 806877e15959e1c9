package layout

import "strings"

// wrap greedily word-wraps text against a content width. A word wider than
// the width gets a line of its own; the result always has at least one
// line, so empty text still occupies one line of height.
func wrap(m Metrics, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if m.StringWidth(cur+" "+word) <= width {
			cur += " " + word
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}
	return append(lines, cur)
}
