package markers

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/tsawler/tabgrid/model"
)

// Axis identifies which marker set a value belongs to.
type Axis int

const (
	// Column markers are x coordinates.
	Column Axis = iota
	// Row markers are y coordinates.
	Row
)

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}

var (
	// ErrDuplicate is returned when a marker with the same value already exists.
	ErrDuplicate = errors.New("marker already exists")
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrMarkerNotFound is returned by Undo when the recorded value was already removed.
	// The history entry is consumed regardless.
	ErrMarkerNotFound = errors.New("marker no longer present")
	// ErrIncompleteMarkers is returned by SaveForPage when either axis is empty.
	ErrIncompleteMarkers = errors.New("at least one column and one row marker are required")
)

// HistoryEntry records one marker addition.
type HistoryEntry struct {
	Axis  Axis
	Value float64
}

// PageRecord is the saved marker set of one page.
type PageRecord struct {
	Columns []float64 `json:"columns" yaml:"columns"`
	Rows    []float64 `json:"rows" yaml:"rows"`
}

// Clone returns a deep copy of the record
func (r PageRecord) Clone() PageRecord {
	return PageRecord{Columns: slices.Clone(r.Columns), Rows: slices.Clone(r.Rows)}
}

// Store holds working markers, undo history and per-page records.
// A Store is not safe for concurrent use.
type Store struct {
	columns []float64
	rows    []float64
	history []HistoryEntry
	pages   map[int]PageRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{pages: make(map[int]PageRecord)}
}

func (s *Store) set(axis Axis) *[]float64 {
	if axis == Row {
		return &s.rows
	}
	return &s.columns
}

// Add inserts a marker, keeping the set sorted, and records it in the history.
func (s *Store) Add(axis Axis, v float64) error {
	set := s.set(axis)
	i, found := slices.BinarySearch(*set, v)
	if found {
		return model.NewError(model.KindUserInput, "add marker",
			fmt.Errorf("%s %g: %w", axis, v, ErrDuplicate))
	}
	*set = slices.Insert(*set, i, v)
	s.history = append(s.history, HistoryEntry{Axis: axis, Value: v})
	return nil
}

// AddAll inserts several markers in order. If any value already exists, or
// repeats within values, nothing is added.
func (s *Store) AddAll(axis Axis, values []float64) error {
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		if seen[v] || s.Has(axis, v) {
			return model.NewError(model.KindUserInput, "add marker",
				fmt.Errorf("%s %g: %w", axis, v, ErrDuplicate))
		}
		seen[v] = true
	}
	for _, v := range values {
		if err := s.Add(axis, v); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether the value is present on the axis
func (s *Store) Has(axis Axis, v float64) bool {
	_, found := slices.BinarySearch(*s.set(axis), v)
	return found
}

// Undo reverts the most recent addition.
func (s *Store) Undo() (HistoryEntry, error) {
	if len(s.history) == 0 {
		return HistoryEntry{}, model.NewError(model.KindUserInput, "undo", ErrNothingToUndo)
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	set := s.set(last.Axis)
	i, found := slices.BinarySearch(*set, last.Value)
	if !found {
		return last, model.NewError(model.KindUserInput, "undo",
			fmt.Errorf("%s %g: %w", last.Axis, last.Value, ErrMarkerNotFound))
	}
	*set = slices.Delete(*set, i, i+1)
	return last, nil
}

// Clear empties both working sets and the history. Page records are kept.
func (s *Store) Clear() {
	s.columns = nil
	s.rows = nil
	s.history = nil
}

// Reset empties working sets, history and all page records.
func (s *Store) Reset() {
	s.Clear()
	s.pages = make(map[int]PageRecord)
}

// ClearPages removes all page records.
func (s *Store) ClearPages() {
	s.pages = make(map[int]PageRecord)
}

// SaveForPage stores a copy of the working sets for page, replacing any
// existing record. It reports whether a record was replaced.
func (s *Store) SaveForPage(page int) (bool, error) {
	if len(s.columns) == 0 || len(s.rows) == 0 {
		return false, model.NewError(model.KindUserInput, "save page markers",
			fmt.Errorf("page %d: %w", page, ErrIncompleteMarkers))
	}
	_, updated := s.pages[page]
	s.pages[page] = PageRecord{Columns: slices.Clone(s.columns), Rows: slices.Clone(s.rows)}
	return updated, nil
}

// LoadForPage replaces the working sets with a copy of the page's record.
// A page without a record leaves the working sets empty.
// It reports whether a record was found. History is untouched.
func (s *Store) LoadForPage(page int) bool {
	rec, ok := s.pages[page]
	if !ok {
		s.columns = nil
		s.rows = nil
		return false
	}
	s.columns = slices.Clone(rec.Columns)
	s.rows = slices.Clone(rec.Rows)
	return true
}

// Columns returns a copy of the column markers
func (s *Store) Columns() []float64 { return slices.Clone(s.columns) }

// Rows returns a copy of the row markers
func (s *Store) Rows() []float64 { return slices.Clone(s.rows) }

// History returns a copy of the addition history, oldest first
func (s *Store) History() []HistoryEntry { return slices.Clone(s.history) }

// Record returns a copy of the page's record
func (s *Store) Record(page int) (PageRecord, bool) {
	rec, ok := s.pages[page]
	if !ok {
		return PageRecord{}, false
	}
	return rec.Clone(), true
}

// MarkedPages returns the pages with saved records in ascending order
func (s *Store) MarkedPages() []int {
	pages := make([]int, 0, len(s.pages))
	for p := range s.pages {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Records returns a deep copy of all page records
func (s *Store) Records() map[int]PageRecord {
	out := make(map[int]PageRecord, len(s.pages))
	for p, rec := range s.pages {
		out[p] = rec.Clone()
	}
	return out
}

// SetRecords replaces all page records. Marker lists are copied, sorted and
// deduplicated.
func (s *Store) SetRecords(records map[int]PageRecord) {
	s.pages = make(map[int]PageRecord, len(records))
	for p, rec := range records {
		s.pages[p] = PageRecord{Columns: normalize(rec.Columns), Rows: normalize(rec.Rows)}
	}
}

// SetWorking replaces the working sets, clearing the history.
// Used when restoring a snapshot.
func (s *Store) SetWorking(columns, rows []float64) {
	s.columns = normalize(columns)
	s.rows = normalize(rows)
	s.history = nil
}

func normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Checkpoint is a saved copy of the working sets and history
type Checkpoint struct {
	columns []float64
	rows    []float64
	history []HistoryEntry
}

// Checkpoint copies the working sets and history
func (s *Store) Checkpoint() Checkpoint {
	return Checkpoint{
		columns: slices.Clone(s.columns),
		rows:    slices.Clone(s.rows),
		history: slices.Clone(s.history),
	}
}

// Rollback restores the working sets and history from c. Page records are
// not affected.
func (s *Store) Rollback(c Checkpoint) {
	s.columns = slices.Clone(c.columns)
	s.rows = slices.Clone(c.rows)
	s.history = slices.Clone(c.history)
}
