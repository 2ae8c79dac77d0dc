package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

// DateLayout is the layout of Snapshot.CreatedDate
const DateLayout = "2006-01-02 15:04:05"

// UnknownFile is recorded when a snapshot is taken without a document
const UnknownFile = "Unknown"

// ErrInvalidSnapshot is returned for snapshots that hold no markers
var ErrInvalidSnapshot = errors.New("invalid configuration file")

// Format is a snapshot encoding
type Format int

const (
	// JSON is the default snapshot encoding
	JSON Format = iota
	// YAML is used for .yaml and .yml files
	YAML
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Snapshot is a saved marker configuration
type Snapshot struct {
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Description string `json:"description" yaml:"description"`
	CreatedDate string `json:"created_date" yaml:"created_date"`

	// Page the working markers were taken from (0-indexed)
	Page          int       `json:"page" yaml:"page"`
	ColumnMarkers []float64 `json:"column_markers,omitempty" yaml:"column_markers,omitempty"`
	RowMarkers    []float64 `json:"row_markers,omitempty" yaml:"row_markers,omitempty"`

	PageMarkers map[int]markers.PageRecord `json:"page_markers,omitempty" yaml:"page_markers,omitempty"`
	ManualData  map[int][][]string         `json:"manual_data,omitempty" yaml:"manual_data,omitempty"`
}

// New creates an empty snapshot stamped with the current time
func New(description string) *Snapshot {
	return &Snapshot{
		Description: description,
		CreatedDate: time.Now().Format(DateLayout),
	}
}

// Capture records the working and per-page markers of store. The working
// markers are recorded against page.
func (s *Snapshot) Capture(store *markers.Store, page int) {
	s.Page = page
	s.ColumnMarkers = store.Columns()
	s.RowMarkers = store.Rows()
	s.PageMarkers = store.Records()
	if len(s.PageMarkers) == 0 {
		s.PageMarkers = nil
	}
}

// SetManual records manually entered grids by page
func (s *Snapshot) SetManual(data map[int]*model.Grid) {
	s.ManualData = nil
	for page, g := range data {
		if g.IsEmpty() {
			continue
		}
		if s.ManualData == nil {
			s.ManualData = make(map[int][][]string)
		}
		s.ManualData[page] = g.Clone().Rows
	}
}

// Manual returns the manually entered grids by page
func (s *Snapshot) Manual() map[int]*model.Grid {
	out := make(map[int]*model.Grid, len(s.ManualData))
	for page, rows := range s.ManualData {
		out[page] = model.GridFromRows(rows)
	}
	return out
}

// Validate checks that the snapshot carries a working marker set or at least
// one page record
func (s *Snapshot) Validate() error {
	hasWorking := len(s.ColumnMarkers) > 0 && len(s.RowMarkers) > 0
	if !hasWorking && len(s.PageMarkers) == 0 {
		return model.NewError(model.KindUserInput, "load config", ErrInvalidSnapshot)
	}
	for page, rec := range s.PageMarkers {
		if page < 0 {
			return model.Errorf(model.KindUserInput, "load config", "%v: negative page %d", ErrInvalidSnapshot, page)
		}
		if len(rec.Columns) == 0 || len(rec.Rows) == 0 {
			return model.Errorf(model.KindUserInput, "load config", "%v: page %d has no markers", ErrInvalidSnapshot, page+1)
		}
	}
	return nil
}

// Restore replaces the page records of store, then its working markers when
// the snapshot has them. Nothing is changed if the snapshot is invalid.
func (s *Snapshot) Restore(store *markers.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if len(s.PageMarkers) > 0 {
		store.SetRecords(s.PageMarkers)
	}
	if len(s.ColumnMarkers) > 0 && len(s.RowMarkers) > 0 {
		store.SetWorking(s.ColumnMarkers, s.RowMarkers)
	}
	return nil
}

// CheckFilename returns a warning when the snapshot was made for a file other
// than current. Only base names are compared.
func (s *Snapshot) CheckFilename(current string) (string, bool) {
	saved := s.Filename
	if saved == "" {
		saved = UnknownFile
	}
	cur := UnknownFile
	if current != "" {
		cur = filepath.Base(current)
	}
	if saved == cur {
		return "", true
	}
	return fmt.Sprintf("configuration was created for a different file: %q, current file is %q; markers may not line up", saved, cur), false
}

// Encode writes the snapshot to w
func (s *Snapshot) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
}

// Decode reads a snapshot from r
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	s := &Snapshot{}
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, s)
	default:
		err = json.Unmarshal(data, s)
	}
	if err != nil {
		return nil, model.NewError(model.KindUserInput, "load config", fmt.Errorf("%w: %v", ErrInvalidSnapshot, err))
	}
	return s, nil
}

// Save writes the snapshot to path, choosing the encoding from the extension
func (s *Snapshot) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.Encode(f, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logging.For("config").WithFields(logrus.Fields{
		"path":  path,
		"pages": len(s.PageMarkers),
	}).Debug("configuration saved")
	return nil
}

// Load reads and validates the snapshot at path
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.NewError(model.KindUserInput, "load config", err)
	}
	defer f.Close()

	s, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logging.For("config").WithFields(logrus.Fields{
		"path":   path,
		"pages":  len(s.PageMarkers),
		"manual": len(s.ManualData),
	}).Debug("configuration loaded")
	return s, nil
}
