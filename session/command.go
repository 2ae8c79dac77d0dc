package session

import (
	"errors"
	"strings"
	"unicode"
)

// Intent names a user action
type Intent string

// Intents understood by the Dispatcher
const (
	IntentLoadDocument  Intent = "load-document"
	IntentAddColumn     Intent = "add-column"
	IntentAddRow        Intent = "add-row"
	IntentUndo          Intent = "undo"
	IntentClear         Intent = "clear"
	IntentReset         Intent = "reset"
	IntentSavePage      Intent = "save-page"
	IntentGotoPage      Intent = "goto-page"
	IntentZoom          Intent = "zoom"
	IntentSelect        Intent = "select"
	IntentDetect        Intent = "detect"
	IntentRevertDetect  Intent = "revert-detect"
	IntentExtract       Intent = "extract"
	IntentExtractMarked Intent = "extract-marked"
	IntentOrient        Intent = "orient"
	IntentForceOrient   Intent = "force-orient"
	IntentRestoreOrient Intent = "restore-orient"
	IntentTranspose     Intent = "transpose"
	IntentManualSet     Intent = "manual-set"
	IntentExport        Intent = "export"
	IntentSaveConfig    Intent = "save-config"
	IntentLoadConfig    Intent = "load-config"
)

// Command is one parsed script line
type Command struct {
	Intent Intent
	Args   []string
}

// ErrUnterminatedQuote is returned for lines with an open double quote
var ErrUnterminatedQuote = errors.New("unterminated quote")

// ParseCommand splits a script line into an intent and arguments. Arguments
// are separated by whitespace; double quotes group words and a backslash
// escapes the next character inside quotes. Blank lines and lines starting
// with # yield ok == false.
func ParseCommand(line string) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		escaped bool
		started bool
	)
	for _, r := range trimmed {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && unicode.IsSpace(r):
			if started {
				fields = append(fields, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote || escaped {
		return Command{}, false, ErrUnterminatedQuote
	}
	if started {
		fields = append(fields, cur.String())
	}

	return Command{Intent: Intent(strings.ToLower(fields[0])), Args: fields[1:]}, true, nil
}
