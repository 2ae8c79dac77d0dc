// Package text detects and corrects text that was extracted in the wrong
// orientation.
//
// PDF text layers sometimes store rotated or right-to-left text in a way
// that comes out garbled when mapped into table cells: one character per
// line for vertical text, reversed character order for right-to-left text,
// or both for text rotated by 180 degrees.
//
// # Detection
//
// [OrientationConfig.Score] rates a grid with an English-biased heuristic.
// Each signal adds to the score:
//
//   - runs of three or more one- or two-letter tokens
//   - common words spelled backwards ("elbaT", "ataD")
//   - 'n' far more frequent than 'e'
//   - letters separated by a line break
//   - a geometric verdict from [OrientationConfig.DetectFromSpans]
//
// A score at or above the threshold (5 by default) means vertical text. The
// heuristic is best effort: short tables and non-English text can produce
// false positives or miss real problems.
//
// # Correction
//
// A [Corrector] holds one grid through the workflow
//
//	Unanalyzed -> NoIssue | VerticalDetected | RTLDetected | FlippedDetected -> Corrected
//
// and keeps the grid from before the last correction for a single [Corrector.Restore]:
//
//	c := text.NewCorrector(text.DefaultOrientationConfig())
//	c.Analyze(grid, fragments)
//	fixed, changed, err := c.Correct()
//
// Reversal composes text to NFC first so combining marks stay with their
// base character.
//
// # Text Direction
//
// [DetectDirection] reports the dominant writing direction of a string from
// the Unicode properties of its characters. Cells without strong-direction
// letters (numbers, punctuation) are never transformed.
package text
