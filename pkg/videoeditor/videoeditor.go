package videoeditor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ZacxDev/video-editor/internal/config"
	"github.com/ZacxDev/video-editor/internal/ffmpeg"
	"github.com/ZacxDev/video-editor/internal/filter"
	"github.com/ZacxDev/video-editor/internal/naming"
	"github.com/ZacxDev/video-editor/internal/planner"
	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/report"
	"github.com/ZacxDev/video-editor/internal/resolve"
)

// Transcoder is the external prober/encoder collaborator. The real
// implementation shells out to FFmpeg; tests substitute a fake.
type Transcoder interface {
	Probe(path string) (preset.Dimensions, error)
	Encode(req ffmpeg.EncodeRequest) error
	StatSize(path string) (int64, error)
}

// OutputMissingError means the encode step reported success but the
// expected output file does not exist afterwards.
type OutputMissingError struct {
	Path string
}

func (e *OutputMissingError) Error() string {
	return fmt.Sprintf("encode finished but output is missing: %s", e.Path)
}

// Editor runs one linear edit pipeline per invocation: resolve
// parameters, plan the geometry, assemble the filter chain, encode,
// verify the output, report sizes. No state is shared across
// invocations beyond the read-only preset tables.
type Editor struct {
	opts       *config.EditOptions
	transcoder Transcoder
	prompt     resolve.PromptFunc
}

// New creates an editor backed by FFmpeg. prompt may be nil for
// non-interactive resolution.
func New(opts *config.EditOptions, prompt resolve.PromptFunc) *Editor {
	return NewWithTranscoder(opts, prompt, ffmpeg.NewProcessor(opts.Verbose))
}

// NewWithTranscoder creates an editor with an explicit collaborator.
func NewWithTranscoder(opts *config.EditOptions, prompt resolve.PromptFunc, transcoder Transcoder) *Editor {
	return &Editor{
		opts:       opts,
		transcoder: transcoder,
		prompt:     prompt,
	}
}

// Run executes the pipeline and returns the result summary.
func (e *Editor) Run() (*report.Summary, error) {
	params, err := resolve.Resolve(e.opts, e.prompt)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Build(params, e.transcoder)
	if err != nil {
		return nil, err
	}

	settings := filter.Assemble(plan, params)

	base := filepath.Base(params.InputPath)
	base = naming.Sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	outputDir := e.opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(params.InputPath)
	}
	outputPath := filepath.Join(outputDir, naming.OutputName(base, params))

	originalSize, err := e.transcoder.StatSize(params.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat input file")
	}

	if e.opts.Verbose {
		log.Printf("Filter chain: %s\n", settings.VideoFilter)
		if settings.AudioFilter != "" {
			log.Printf("Audio filter: %s\n", settings.AudioFilter)
		}
		log.Printf("Output path: %s\n", outputPath)
	}

	if err := e.transcoder.Encode(ffmpeg.EncodeRequest{
		InputPath:   params.InputPath,
		OutputPath:  outputPath,
		StartTime:   params.StartTime,
		Duration:    params.Duration,
		VideoFilter: settings.VideoFilter,
		AudioFilter: settings.AudioFilter,
		VideoArgs:   settings.VideoArgs,
		AudioArgs:   settings.AudioArgs,
	}); err != nil {
		return nil, err
	}

	newSize, err := e.transcoder.StatSize(outputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &OutputMissingError{Path: outputPath}
		}
		return nil, errors.Wrap(err, "failed to stat output file")
	}

	return &report.Summary{
		OutputPath:    outputPath,
		OriginalBytes: originalSize,
		NewBytes:      newSize,
	}, nil
}
