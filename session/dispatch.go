package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/tables"
	"github.com/tsawler/tabgrid/text"
)

// ErrUnknownIntent is returned for commands without a handler
var ErrUnknownIntent = errors.New("unknown command")

// Handler runs one intent against a session and returns a status message
type Handler func(s *Session, args []string) (string, error)

// Dispatcher maps intents to session operations
type Dispatcher struct {
	session  *Session
	handlers map[Intent]Handler
}

// NewDispatcher creates a dispatcher with the built in intents
func NewDispatcher(s *Session) *Dispatcher {
	return &Dispatcher{
		session: s,
		handlers: map[Intent]Handler{
			IntentLoadDocument:  loadDocument,
			IntentAddColumn:     addMarker(markers.Column),
			IntentAddRow:        addMarker(markers.Row),
			IntentUndo:          undo,
			IntentClear:         clearMarkers,
			IntentReset:         resetMarkers,
			IntentSavePage:      savePage,
			IntentGotoPage:      gotoPage,
			IntentZoom:          zoom,
			IntentSelect:        selectArea,
			IntentDetect:        detect,
			IntentRevertDetect:  revertDetect,
			IntentExtract:       extract,
			IntentExtractMarked: extractMarked,
			IntentOrient:        orient,
			IntentForceOrient:   forceOrient,
			IntentRestoreOrient: restoreOrient,
			IntentTranspose:     transpose,
			IntentManualSet:     manualSet,
			IntentExport:        exportGrid,
			IntentSaveConfig:    saveConfig,
			IntentLoadConfig:    loadConfig,
		},
	}
}

// Register adds or replaces the handler for intent
func (d *Dispatcher) Register(intent Intent, h Handler) {
	d.handlers[intent] = h
}

// Intents returns the registered intents in name order
func (d *Dispatcher) Intents() []Intent {
	out := make([]Intent, 0, len(d.handlers))
	for i := range d.handlers {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Dispatch runs cmd
func (d *Dispatcher) Dispatch(cmd Command) (string, error) {
	h, ok := d.handlers[cmd.Intent]
	if !ok {
		return "", model.Errorf(model.KindUserInput, string(cmd.Intent), "%w", ErrUnknownIntent)
	}
	return h(d.session, cmd.Args)
}

// Run executes a script line by line, writing each status message and any
// collected warnings to w. It stops at the first failing line.
func (d *Dispatcher) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		cmd, ok, err := ParseCommand(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if !ok {
			continue
		}
		msg, err := d.Dispatch(cmd)
		for _, warning := range d.session.Warnings() {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", n, cmd.Intent, err)
		}
		if msg != "" {
			fmt.Fprintln(w, msg)
		}
	}
	return sc.Err()
}

func wantArgs(args []string, lo, hi int, usage string) error {
	if len(args) < lo || len(args) > hi {
		return model.Errorf(model.KindUserInput, "command", "usage: %s", usage)
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, model.Errorf(model.KindUserInput, "command", "invalid number %q", s)
	}
	return v, nil
}

// parseIndex parses a 1-based number into a 0-based index
func parseIndex(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, model.Errorf(model.KindUserInput, "command", "invalid %s %q", what, s)
	}
	return v - 1, nil
}

func loadDocument(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "load-document <path>"); err != nil {
		return "", err
	}
	if err := s.LoadDocument(args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("loaded %s (%d pages)", args[0], s.PageCount()), nil
}

func addMarker(axis markers.Axis) Handler {
	return func(s *Session, args []string) (string, error) {
		if err := wantArgs(args, 1, math.MaxInt, fmt.Sprintf("add-%s <value>...", axis)); err != nil {
			return "", err
		}
		values := make([]float64, len(args))
		for i, a := range args {
			v, err := parseFloat(a)
			if err != nil {
				return "", err
			}
			values[i] = v
		}
		if err := s.AddMarkers(axis, values); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %s markers", len(markersOf(s, axis)), axis), nil
	}
}

func markersOf(s *Session, axis markers.Axis) []float64 {
	if axis == markers.Row {
		return s.Markers().Rows()
	}
	return s.Markers().Columns()
}

func undo(s *Session, args []string) (string, error) {
	e, err := s.Undo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("removed %s marker %g", e.Axis, e.Value), nil
}

func clearMarkers(s *Session, args []string) (string, error) {
	s.ClearMarkers()
	return "markers cleared", nil
}

func resetMarkers(s *Session, args []string) (string, error) {
	s.ResetMarkers()
	return "all markers reset", nil
}

func savePage(s *Session, args []string) (string, error) {
	updated, err := s.SavePage()
	if err != nil {
		return "", err
	}
	verb := "saved"
	if updated {
		verb = "updated"
	}
	return fmt.Sprintf("%s markers for page %d", verb, s.Page()+1), nil
}

func gotoPage(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "goto-page <page>"); err != nil {
		return "", err
	}
	page, err := parseIndex(args[0], "page")
	if err != nil {
		return "", err
	}
	if err := s.GotoPage(page); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("page %d of %d", page+1, s.PageCount())
	if _, ok := s.Markers().Record(page); ok {
		msg += " (marked)"
	}
	return msg, nil
}

func zoom(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "zoom in|out|reset|<factor>"); err != nil {
		return "", err
	}
	var z float64
	switch args[0] {
	case "in":
		z = s.Zoom() * ZoomStep
	case "out":
		z = s.Zoom() / ZoomStep
	case "reset":
		z = 1
	default:
		v, err := parseFloat(args[0])
		if err != nil {
			return "", err
		}
		z = v
	}
	if err := s.SetZoom(z); err != nil {
		return "", err
	}
	return fmt.Sprintf("zoom %.0f%%", s.Zoom()*100), nil
}

func selectArea(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 4, 4, "select <x0> <y0> <x1> <y1>"); err != nil {
		return "", err
	}
	var v [4]float64
	for i, a := range args {
		f, err := parseFloat(a)
		if err != nil {
			return "", err
		}
		v[i] = f
	}
	if err := s.SelectArea(model.NewRect(v[0], v[1], v[2], v[3])); err != nil {
		return "", err
	}
	sel, _ := s.Selection()
	return fmt.Sprintf("selected %.1fx%.1f at (%.1f, %.1f)", sel.Width(), sel.Height(), sel.X0, sel.Y0), nil
}

func detect(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 0, 1, "detect [--clear|--dry-run]"); err != nil {
		return "", err
	}
	opts := DetectOptions{Apply: true}
	if len(args) == 1 {
		switch args[0] {
		case "--clear":
			opts.ClearExisting = true
		case "--dry-run":
			opts.Apply = false
		default:
			return "", model.Errorf(model.KindUserInput, "detect", "unknown option %q", args[0])
		}
	}
	det, err := s.DetectLines(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("detected %d vertical and %d horizontal lines", len(det.Columns), len(det.Rows)), nil
}

func revertDetect(s *Session, args []string) (string, error) {
	if err := s.RevertDetection(); err != nil {
		return "", err
	}
	return "detected lines removed", nil
}

func extract(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 0, 1, "extract [space|newline]"); err != nil {
		return "", err
	}
	if len(args) == 1 {
		mode, ok := tables.ParseJoinMode(args[0])
		if !ok {
			return "", model.Errorf(model.KindUserInput, "extract", "unknown join mode %q", args[0])
		}
		s.SetJoinMode(mode)
	}
	g, err := s.Extract()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("extracted %dx%d table\n%s", g.RowCount(), g.ColCount(), g.Preview()), nil
}

func extractMarked(s *Session, args []string) (string, error) {
	opts := MergeOptions{}
	for _, a := range args {
		switch a {
		case "vertical", "horizontal":
			opts.Mode, _ = tables.ParseMergeMode(a)
		case "transpose":
			opts.Transpose = true
		case "pad":
			opts.PadVertical = true
		default:
			return "", model.Errorf(model.KindUserInput, "extract-marked",
				"usage: extract-marked [vertical|horizontal] [transpose] [pad]")
		}
	}
	g, err := s.ExtractMerged(opts)
	if err != nil {
		return "", err
	}
	pages := s.Markers().MarkedPages()
	labels := make([]string, len(pages))
	for i, p := range pages {
		labels[i] = strconv.Itoa(p + 1)
	}
	return fmt.Sprintf("extracted %dx%d table from pages: %s\n%s",
		g.RowCount(), g.ColCount(), strings.Join(labels, ", "), g.Preview()), nil
}

func orient(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 0, 1, "orient [check|analyze|correct]"); err != nil {
		return "", err
	}
	action := "correct"
	if len(args) == 1 {
		action = args[0]
	}
	switch action {
	case "check":
		so, err := s.CheckOrientation(s.Page())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("page %d: %d spans, %d vertical, %d right-to-left: %s",
			s.Page()+1, so.Total, so.Vertical, so.RTL, so.Verdict), nil
	case "analyze":
		a, err := s.AnalyzeOrientation()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("orientation score %d: %s", a.Score, s.OrientationState()), nil
	case "correct":
		g, changed, err := s.CorrectOrientation()
		if err != nil {
			return "", err
		}
		if !changed {
			return "no orientation issues detected", nil
		}
		return fmt.Sprintf("corrected orientation\n%s", g.Preview()), nil
	}
	return "", model.Errorf(model.KindUserInput, "orient", "unknown action %q", action)
}

func forceOrient(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "force-orient vertical|rtl|flipped|unstack"); err != nil {
		return "", err
	}
	kind, ok := text.ParseCorrection(args[0])
	if !ok {
		return "", model.Errorf(model.KindUserInput, "force-orient", "unknown correction %q", args[0])
	}
	g, err := s.ForceOrientation(kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("applied %s correction\n%s", kind, g.Preview()), nil
}

func restoreOrient(s *Session, args []string) (string, error) {
	g, err := s.RestoreOrientation()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("restored original text\n%s", g.Preview()), nil
}

func transpose(s *Session, args []string) (string, error) {
	g, err := s.Transpose()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("transposed to %dx%d", g.RowCount(), g.ColCount()), nil
}

func manualSet(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 4, 4, "manual-set <page> <row> <col> <value>"); err != nil {
		return "", err
	}
	var idx [3]int
	for i, what := range []string{"page", "row", "column"} {
		v, err := parseIndex(args[i], what)
		if err != nil {
			return "", err
		}
		idx[i] = v
	}
	if err := s.SetManualCell(idx[0], idx[1], idx[2], args[3]); err != nil {
		return "", err
	}
	return fmt.Sprintf("page %d cell (%d, %d) set", idx[0]+1, idx[1]+1, idx[2]+1), nil
}

func exportGrid(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "export <path>"); err != nil {
		return "", err
	}
	if err := s.Export(args[0]); err != nil {
		return "", err
	}
	return "saved to " + args[0], nil
}

func saveConfig(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 2, "save-config <path> [description]"); err != nil {
		return "", err
	}
	desc := "Table configuration for tabgrid"
	if len(args) == 2 {
		desc = args[1]
	}
	if err := s.SaveConfig(args[0], desc); err != nil {
		return "", err
	}
	return "configuration saved to " + args[0], nil
}

func loadConfig(s *Session, args []string) (string, error) {
	if err := wantArgs(args, 1, 1, "load-config <path>"); err != nil {
		return "", err
	}
	if err := s.LoadConfig(args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("loaded %d page markers and %d pages of manual data from %s",
		len(s.Markers().MarkedPages()), s.ManualPages(), args[0]), nil
}
