package resolve

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ZacxDev/video-editor/internal/config"
	"github.com/ZacxDev/video-editor/internal/preset"
)

// PromptFunc asks the user for a field value with the default
// pre-filled. An empty answer accepts the default. A nil PromptFunc
// means non-interactive resolution: defaults are taken as-is and
// invalid explicit values are fatal.
type PromptFunc func(label, defaultValue string) (string, error)

// Parameters is the fully resolved, validated parameter set. Every
// field is valid against its preset table before planning starts.
type Parameters struct {
	InputPath    string
	StartTime    int
	Duration     int // 0 means "to end of source"
	Speed        float64
	Rotation     int
	CropRatio    string
	TargetSize   string
	Quality      string
	SmallestFile bool
}

// ValidationError reports an explicit value that failed its constraint
// in non-interactive mode.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field that was neither supplied
// nor defaultable.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

// InputNotFoundError reports a resolved input path that does not
// reference an existing file.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file does not exist: %s", e.Path)
}

type field struct {
	label    string
	raw      string
	def      string
	required bool
	validate func(string) error
	assign   func(string)
}

// Resolve fills every parameter to a valid value, in the fixed order
// input path, start time, duration, speed, rotation, crop ratio,
// target size, quality. The smallest-file override is applied after
// target size resolution and before quality validation, so an explicit
// quality choice is silently discarded when SmallestFile is set.
func Resolve(opts *config.EditOptions, prompt PromptFunc) (*Parameters, error) {
	p := &Parameters{SmallestFile: opts.SmallestFile}

	input, err := resolveField(field{
		label:    "Input file",
		raw:      opts.InputPath,
		required: true,
		validate: validateNotEmpty,
	}, prompt)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(input); err != nil {
		return nil, &InputNotFoundError{Path: input}
	}
	p.InputPath = input

	fields := []field{
		{
			label:    "Start time in seconds",
			raw:      opts.StartTime,
			def:      preset.DefaultStartTime,
			validate: validateNonNegativeInt,
			assign:   func(v string) { p.StartTime = mustInt(v) },
		},
		{
			label:    "Duration in seconds (empty for full length)",
			raw:      opts.Duration,
			def:      preset.DefaultDuration,
			validate: validateOptionalNonNegativeInt,
			assign: func(v string) {
				if v != "" {
					p.Duration = mustInt(v)
				}
			},
		},
		{
			label:    "Speed modifier",
			raw:      opts.Speed,
			def:      preset.DefaultSpeed,
			validate: validatePositiveReal,
			assign:   func(v string) { p.Speed = mustFloat(v) },
		},
		{
			label:    "Rotation (0/90/180/270)",
			raw:      opts.Rotation,
			def:      preset.DefaultRotation,
			validate: validateRotation,
			assign: func(v string) {
				deg, _ := preset.Rotation(v)
				p.Rotation = deg
			},
		},
		{
			label:    "Crop ratio (none/1:1/16:9/9:16)",
			raw:      opts.CropRatio,
			def:      preset.DefaultCrop,
			validate: validateCrop,
			assign:   func(v string) { p.CropRatio = v },
		},
		{
			label:    "Target size",
			raw:      opts.TargetSize,
			def:      preset.DefaultSize,
			validate: validateSize,
			assign:   func(v string) { p.TargetSize = v },
		},
	}

	for _, f := range fields {
		value, err := resolveField(f, prompt)
		if err != nil {
			return nil, err
		}
		f.assign(value)
	}

	// The smallest-file flag overrides any explicit quality request.
	qualityRaw := opts.Quality
	if opts.SmallestFile {
		qualityRaw = preset.QualityVeryLow
	}
	quality, err := resolveField(field{
		label:    "Quality (high/medium/low/verylow)",
		raw:      qualityRaw,
		def:      preset.DefaultQuality,
		validate: validateQuality,
	}, prompt)
	if err != nil {
		return nil, err
	}
	p.Quality = quality

	return p, nil
}

// resolveField resolves a single field. A valid explicit value is
// accepted as-is and never prompts. An absent field takes the default
// in non-interactive mode, or prompts with the default pre-filled; an
// invalid explicit value is fatal in non-interactive mode and
// re-prompted otherwise.
func resolveField(f field, prompt PromptFunc) (string, error) {
	if f.raw != "" {
		err := f.validate(f.raw)
		if err == nil {
			return f.raw, nil
		}
		if prompt == nil {
			return "", &ValidationError{Field: f.label, Value: f.raw, Err: err}
		}
		fmt.Fprintf(os.Stderr, "Invalid input: %s\n", f.label)
	} else if prompt == nil {
		if f.def == "" && f.required {
			return "", &MissingFieldError{Field: f.label}
		}
		// Defaults come from the preset tables and are always valid.
		return f.def, nil
	}

	for {
		answer, perr := prompt(f.label, f.def)
		if perr != nil {
			return "", perr
		}
		if answer == "" {
			answer = f.def
		}
		if verr := f.validate(answer); verr != nil || (f.required && answer == "") {
			fmt.Fprintf(os.Stderr, "Invalid input: %s\n", f.label)
			continue
		}
		return answer, nil
	}
}

func validateNotEmpty(v string) error {
	if v == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validateNonNegativeInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not an integer")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateOptionalNonNegativeInt(v string) error {
	if v == "" {
		return nil
	}
	return validateNonNegativeInt(v)
}

// validatePositiveReal rejects zero as well: the timestamp remap
// divides by the speed modifier.
func validatePositiveReal(v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if f <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateRotation(v string) error {
	if _, ok := preset.Rotation(v); !ok {
		return fmt.Errorf("unsupported rotation")
	}
	return nil
}

func validateCrop(v string) error {
	if !preset.ValidCrop(v) {
		return fmt.Errorf("unsupported crop ratio")
	}
	return nil
}

func validateSize(v string) error {
	if !preset.ValidSize(v) {
		return fmt.Errorf("unsupported size preset")
	}
	return nil
}

func validateQuality(v string) error {
	if !preset.ValidQuality(v) {
		return fmt.Errorf("unsupported quality preset")
	}
	return nil
}

func mustInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func mustFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
