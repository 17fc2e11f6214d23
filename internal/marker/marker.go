// Package marker recognizes the three-level section-separator convention:
// n '#' characters at the start of a line followed by exactly (4-n)
// whitespace characters, so that content at every level starts in the same
// screen column. Lines that do not match exactly are ordinary content.
package marker

import (
	"regexp"
	"strings"

	"github.com/dgallion1/structsum/internal/source"
)

// Kind distinguishes decorative break lines from section comment lines.
type Kind int

const (
	// KindComment is a human-readable section title line.
	KindComment Kind = iota
	// KindBreak is a run of filler glyphs carrying no text payload.
	KindBreak
)

// Line is a classified separator-family line. Text is the full raw line,
// so emitted entries keep the convention's column alignment.
type Line struct {
	Number int
	Level  int
	Kind   Kind
	Text   string
}

// MaxLevel is the finest granularity the convention encodes.
const MaxLevel = 3

// levelRe[n-1] matches a level-n marker: n '#' then exactly (4-n)
// whitespace, then content starting with a non-whitespace character.
// The patterns are mutually exclusive by construction.
var levelRe = [MaxLevel]*regexp.Regexp{
	regexp.MustCompile(`^#[ \t]{3}(\S.*)$`),
	regexp.MustCompile(`^##[ \t]{2}(\S.*)$`),
	regexp.MustCompile(`^###[ \t](\S.*)$`),
}

// breakRe matches content that is pure filler: a run of underscores, or an
// alternating dot-space run. Trailing whitespace is trimmed before matching.
var breakRe = regexp.MustCompile(`^(_+|\.( \.)*)$`)

// Classify reports whether a source line belongs to the separator family
// and, if so, returns it with its granularity level and kind.
func Classify(ln source.Line) (Line, bool) {
	for i, re := range levelRe {
		m := re.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		kind := KindComment
		if breakRe.MatchString(strings.TrimRight(m[1], " \t")) {
			kind = KindBreak
		}
		return Line{Number: ln.Number, Level: i + 1, Kind: kind, Text: ln.Text}, true
	}
	return Line{}, false
}

// ClassifyAll classifies every line, dropping non-matches. Order is
// preserved: output line numbers are strictly increasing.
func ClassifyAll(lines []source.Line) []Line {
	var out []Line
	for _, ln := range lines {
		if cl, ok := Classify(ln); ok {
			out = append(out, cl)
		}
	}
	return out
}

// Direction selects which end of the level range Probe searches from.
type Direction int

const (
	// Up searches coarse to fine (1 -> 3).
	Up Direction = iota
	// Down searches fine to coarse (3 -> 1).
	Down
)

// Probe returns the first level, stepping from the chosen end of {1..3},
// for which any classified line exists. ok is false when the file carries
// no separator lines at all.
func Probe(lines []Line, dir Direction) (level int, ok bool) {
	present := [MaxLevel + 1]bool{}
	for _, ln := range lines {
		present[ln.Level] = true
	}
	if dir == Up {
		for l := 1; l <= MaxLevel; l++ {
			if present[l] {
				return l, true
			}
		}
	} else {
		for l := MaxLevel; l >= 1; l-- {
			if present[l] {
				return l, true
			}
		}
	}
	return 0, false
}
