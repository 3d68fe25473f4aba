package layout

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Wrap breaks text into lines of at most width characters. Lines break
// between words; a word longer than width is cut into width-sized pieces
// that fill lines like ordinary words. Runs of whitespace collapse and
// empty lines are dropped.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	pieces := make([]string, 0, len(words))
	for _, w := range words {
		pieces = append(pieces, strings.Fields(wrap.String(w, width))...)
	}
	wrapped := wordwrap.String(strings.Join(pieces, " "), width)

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
