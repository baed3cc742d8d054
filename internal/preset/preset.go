package preset

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dimensions represents width and height of a video frame
type Dimensions struct {
	Width  int
	Height int
}

// Original is the passthrough target size: keep the source resolution.
const Original = "original"

// Crop ratio keys
const (
	CropNone     = "none"
	CropSquare   = "1:1"
	CropWide     = "16:9"
	CropPortrait = "9:16"
)

// Quality keys
const (
	QualityHigh    = "high"
	QualityMedium  = "medium"
	QualityLow     = "low"
	QualityVeryLow = "verylow"
)

// Defaults for every resolvable parameter
const (
	DefaultStartTime = "0"
	DefaultDuration  = ""
	DefaultSpeed     = "1.0"
	DefaultRotation  = "0"
	DefaultCrop      = CropNone
	DefaultSize      = Original
	DefaultQuality   = QualityMedium
)

// Size presets map a named label to output dimensions. "original" is
// handled separately as a passthrough.
var sizes = map[string]Dimensions{
	"4K":      {Width: 3840, Height: 2160},
	"FHD":     {Width: 1920, Height: 1080},
	"HD":      {Width: 1280, Height: 720},
	"SD":      {Width: 854, Height: 480},
	"512x512": {Width: 512, Height: 512},
	"256x256": {Width: 256, Height: 256},
}

// Quality presets map a named label to an x264 CRF value. Lower CRF
// means better quality and a larger file.
var qualities = map[string]int{
	QualityHigh:    18,
	QualityMedium:  23,
	QualityLow:     28,
	QualityVeryLow: 35,
}

// Rotations maps the accepted rotation inputs to degrees.
var rotations = map[string]int{
	"0":   0,
	"90":  90,
	"180": 180,
	"270": 270,
}

var cropRatios = map[string]bool{
	CropNone:     true,
	CropSquare:   true,
	CropWide:     true,
	CropPortrait: true,
}

// Size returns the dimensions for a named size preset.
func Size(name string) (Dimensions, bool) {
	d, ok := sizes[name]
	return d, ok
}

// ValidSize reports whether name is "original" or a known size preset.
func ValidSize(name string) bool {
	if name == Original {
		return true
	}
	_, ok := sizes[name]
	return ok
}

// QualityCRF returns the CRF value for a quality preset.
func QualityCRF(name string) (int, bool) {
	crf, ok := qualities[name]
	return crf, ok
}

// ValidQuality reports whether name is a known quality preset.
func ValidQuality(name string) bool {
	_, ok := qualities[name]
	return ok
}

// Rotation returns the degrees for an accepted rotation input.
func Rotation(value string) (int, bool) {
	deg, ok := rotations[value]
	return deg, ok
}

// ValidCrop reports whether ratio is a known crop ratio.
func ValidCrop(ratio string) bool {
	return cropRatios[ratio]
}

// SizeNames returns all size preset names in sorted order, with
// "original" first.
func SizeNames() []string {
	names := maps.Keys(sizes)
	slices.Sort(names)
	return append([]string{Original}, names...)
}

// QualityNames returns all quality preset names ordered from best to
// smallest output.
func QualityNames() []string {
	return []string{QualityHigh, QualityMedium, QualityLow, QualityVeryLow}
}

// CropNames returns all crop ratio names.
func CropNames() []string {
	names := maps.Keys(cropRatios)
	slices.Sort(names)
	return names
}

// RotationNames returns the accepted rotation values in ascending order.
func RotationNames() []string {
	names := maps.Keys(rotations)
	slices.SortFunc(names, func(a, b string) int {
		return rotations[a] - rotations[b]
	})
	return names
}
