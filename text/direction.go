package text

import (
	"unicode"
)

// Direction is the inherent writing direction of a character or cell
type Direction int

const (
	LTR Direction = iota
	RTL
	// Digits, punctuation, whitespace and symbols
	Neutral
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// Scripts written right to left
var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection classifies a single rune. Letters outside the right to left
// scripts, CJK included, count as LTR.
func CharDirection(r rune) Direction {
	switch {
	case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSpace(r), unicode.IsSymbol(r):
		return Neutral
	case unicode.IsOneOf(rtlScripts, r):
		return RTL
	case unicode.IsMark(r):
		return Neutral
	default:
		return LTR
	}
}

// DetectDirection returns the direction with more strong characters in s,
// LTR on a tie, or Neutral when s has none.
func DetectDirection(s string) Direction {
	var ltr, rtl int
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}
