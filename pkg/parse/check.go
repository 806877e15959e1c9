package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strukt-dev/strukt/pkg/dialect"
)

// Warning is a non-fatal finding about a piece of pseudocode. Parsing never
// fails, so warnings are the only channel for telling an interactive caller
// that some text did not mean what it probably intended.
type Warning struct {
	Line    int
	Message string
}

// Check reports best-effort structural warnings for the given source:
// indentation mixing tabs and spaces, column-width suffixes with malformed
// numeric tokens, and repeat blocks that no colonless while line closes.
func Check(src Source, d dialect.Map) []Warning {
	p := newParser(d)
	var ws []Warning
	for i, raw := range strings.Split(src.Code, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		num := i + 1
		indent := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
		if strings.Contains(indent, " ") && strings.Contains(indent, "\t") {
			ws = append(ws, Warning{num, "indentation mixes tabs and spaces"})
		}
		if m := p.ifRe.FindStringSubmatch(text); m != nil {
			ws = append(ws, checkWidths(num, m[1])...)
		} else if m := p.switchRe.FindStringSubmatch(text); m != nil {
			ws = append(ws, checkWidths(num, m[1])...)
		}
	}
	ws = append(ws, checkRepeats(p, groupBlocks(tokenize(src.Code)))...)
	return ws
}

func checkWidths(num int, header string) []Warning {
	m := widthsRe.FindStringSubmatch(header)
	if m == nil {
		return nil
	}
	var ws []Warning
	for _, tok := range strings.Split(m[2], ",") {
		tok = strings.TrimSpace(tok)
		if _, err := strconv.ParseFloat(tok, 64); err != nil {
			ws = append(ws, Warning{num,
				fmt.Sprintf("dropping malformed column width %q", tok)})
		}
	}
	return ws
}

func checkRepeats(p *parser, blocks []block) []Warning {
	var ws []Warning
	consumed := p.markPairs(blocks)
	for i, b := range blocks {
		if p.repeatRe.MatchString(b.head.text) && !consumed[i] {
			if i+1 >= len(blocks) || !consumed[i+1] {
				ws = append(ws, Warning{b.head.num,
					"repeat block has no closing while line and degrades to a plain statement"})
			}
		}
		ws = append(ws, checkRepeats(p, b.children)...)
	}
	return ws
}
