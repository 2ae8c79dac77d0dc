package session

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/config"
	"github.com/tsawler/tabgrid/export"
	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// Snapshot captures the markers and manual data of the session
func (s *Session) Snapshot(description string) *config.Snapshot {
	snap := config.New(description)
	snap.Filename = config.UnknownFile
	if s.path != "" {
		snap.Filename = filepath.Base(s.path)
	}
	snap.Capture(s.store, s.page)
	snap.SetManual(s.manual)
	return snap
}

// Restore loads markers and manual data from snap. A snapshot made for a
// different file is loaded anyway and reported with a warning. Page records
// and working markers in snap replace the session's. When snap carries
// working markers for a page inside the document, that page becomes current.
func (s *Session) Restore(snap *config.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if msg, ok := snap.CheckFilename(s.path); !ok {
		s.warn("%s", msg)
	}

	hasWorking := len(snap.ColumnMarkers) > 0 && len(snap.RowMarkers) > 0
	if hasWorking && snap.Page >= 0 && snap.Page < s.PageCount() {
		s.page = snap.Page
	}
	if err := snap.Restore(s.store); err != nil {
		return err
	}
	if !hasWorking {
		if _, ok := s.store.Record(s.page); ok {
			s.store.LoadForPage(s.page)
		}
	}
	if len(snap.ManualData) > 0 {
		s.manual = snap.Manual()
	}
	s.detection = nil
	s.beforeApply = nil

	logging.For("session").WithFields(logrus.Fields{
		"pages":  len(snap.PageMarkers),
		"manual": len(snap.ManualData),
	}).Info("configuration restored")
	return nil
}

// SaveConfig writes a snapshot of the session to path
func (s *Session) SaveConfig(path, description string) error {
	if len(s.store.MarkedPages()) == 0 && (len(s.store.Columns()) == 0 || len(s.store.Rows()) == 0) {
		return model.NewError(model.KindUserInput, "save config", ErrNoMarkers)
	}
	return s.Snapshot(description).Save(path)
}

// LoadConfig reads the snapshot at path and restores it
func (s *Session) LoadConfig(path string) error {
	snap, err := config.Load(path)
	if err != nil {
		return err
	}
	return s.Restore(snap)
}

// Export writes the current grid to path in the format implied by its
// extension. The session is unchanged on failure.
func (s *Session) Export(path string) error {
	if s.grid == nil {
		return model.NewError(model.KindUserInput, "export", ErrNoGrid)
	}
	if err := export.WriteFile(path, s.grid); err != nil {
		return err
	}
	logging.For("session").WithField("path", path).Info("table exported")
	return nil
}
