package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/tsawler/tabgrid/document"
	"github.com/tsawler/tabgrid/lines"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/region"
	"github.com/tsawler/tabgrid/text"
)

// Tuning gathers every tunable threshold
type Tuning struct {
	Lines       lines.Config           `yaml:"lines" json:"lines"`
	Orientation text.OrientationConfig `yaml:"orientation" json:"orientation"`
	Crop        region.CropPolicy      `yaml:"crop" json:"crop"`
	Spans       document.SpanConfig    `yaml:"spans" json:"spans"`
	OCR         OCRTuning              `yaml:"ocr" json:"ocr"`

	// Minimum render scale for line detection
	Magnification float64 `yaml:"magnification" json:"magnification"`
}

// OCRTuning holds settings for pages recognized with OCR
type OCRTuning struct {
	Magnification float64 `yaml:"magnification" json:"magnification"`
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence"`
	Language      string  `yaml:"language" json:"language"`
}

// DefaultTuning returns default configuration
func DefaultTuning() Tuning {
	return Tuning{
		Lines:       lines.DefaultConfig(),
		Orientation: text.DefaultOrientationConfig(),
		Crop:        region.DefaultCropPolicy(),
		Spans:       document.DefaultSpanConfig(),
		OCR: OCRTuning{
			Magnification: 4,
			MinConfidence: 30,
			Language:      "eng",
		},
		Magnification: region.DefaultMagnification,
	}
}

// LoadTuning overlays the YAML file at path onto the defaults. An empty path
// returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, model.NewError(model.KindUserInput, "load tuning", err)
	}
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return DefaultTuning(), model.NewError(model.KindUserInput, "load tuning", fmt.Errorf("invalid tuning file %s: %w", path, err))
	}
	if t.Magnification <= 0 {
		return DefaultTuning(), model.Errorf(model.KindUserInput, "load tuning", "magnification must be positive, got %g", t.Magnification)
	}
	return t, nil
}
