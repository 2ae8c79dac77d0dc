package text

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tabgrid/model"
)

var spacedLetters = regexp.MustCompile(`^([a-zA-Z] ){2,}[a-zA-Z]`)

// CorrectGrid returns a copy of g with the correction applied to every
// eligible cell. A cell is eligible when it has at least MinCellChars
// non-space characters and contains letters with a strong direction.
// Stacked is delegated to Unstack.
func (c OrientationConfig) CorrectGrid(g *model.Grid, kind Correction) *model.Grid {
	if kind == Stacked {
		return c.Unstack(g)
	}
	out := g.Clone()
	if out == nil || kind == NoCorrection {
		return out
	}
	for r, row := range out.Rows {
		for col, cell := range row {
			if !c.eligible(cell) {
				continue
			}
			switch kind {
			case Vertical:
				out.Rows[r][col] = c.unstackVertical(cell)
			case ReversedRTL:
				out.Rows[r][col] = Reverse(cell)
			case Flipped:
				out.Rows[r][col] = flip(cell)
			}
		}
	}
	return out
}

func (c OrientationConfig) eligible(cell string) bool {
	n := 0
	for _, r := range cell {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= c.MinCellChars && DetectDirection(cell) != Neutral
}

// unstackVertical undoes one-character-per-line extraction by reading the
// lines bottom to top
func (c OrientationConfig) unstackVertical(cell string) string {
	if !strings.Contains(cell, "\n") {
		if spacedLetters.MatchString(cell) {
			return Reverse(strings.ReplaceAll(cell, " ", ""))
		}
		return cell
	}

	lines := strings.Split(cell, "\n")
	if len(lines) < 3 || float64(countShortLines(lines)) <= float64(len(lines))*c.ShortLineFraction {
		return cell
	}
	var sb strings.Builder
	for i := len(lines) - 1; i >= 0; i-- {
		sb.WriteString(strings.TrimSpace(lines[i]))
	}
	if utf8.RuneCountInString(sb.String()) < c.MinCellChars {
		return cell
	}
	return sb.String()
}

// flip rotates text by 180 degrees: line order and characters are reversed
func flip(cell string) string {
	lines := strings.Split(cell, "\n")
	slices.Reverse(lines)
	for i, l := range lines {
		lines[i] = Reverse(l)
	}
	return strings.Join(lines, "\n")
}

// Unstack is the quick fix offered when QuickCheck fires after extraction:
// the non-empty lines of a multi-line cell are each reversed and joined in
// reverse order.
func (c OrientationConfig) Unstack(g *model.Grid) *model.Grid {
	out := g.Clone()
	if out == nil {
		return nil
	}
	for r, row := range out.Rows {
		for col, cell := range row {
			if len(strings.TrimSpace(cell)) < c.MinCellChars || !strings.Contains(cell, "\n") {
				continue
			}
			var lines []string
			for _, l := range strings.Split(cell, "\n") {
				if l = strings.TrimSpace(l); l != "" {
					lines = append(lines, l)
				}
			}
			if len(lines) < 2 {
				continue
			}
			var sb strings.Builder
			for i := len(lines) - 1; i >= 0; i-- {
				sb.WriteString(Reverse(lines[i]))
			}
			out.Rows[r][col] = sb.String()
		}
	}
	return out
}

// Reverse reverses s by user-perceived character. The text is composed to
// NFC first and any remaining combining marks stay with their base.
func Reverse(s string) string {
	s = norm.NFC.String(s)
	var clusters []string
	for i := 0; i < len(s); {
		start := i
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		for i < len(s) {
			r, n := utf8.DecodeRuneInString(s[i:])
			if !unicode.In(r, unicode.Mn, unicode.Me) {
				break
			}
			i += n
		}
		clusters = append(clusters, s[start:i])
	}
	slices.Reverse(clusters)
	return strings.Join(clusters, "")
}
