package ffmpeg

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ZacxDev/video-editor/internal/preset"
)

// DimensionProbeError means the source dimensions could not be
// determined. Planning cannot proceed without them.
type DimensionProbeError struct {
	Path string
	Err  error
}

func (e *DimensionProbeError) Error() string {
	return fmt.Sprintf("could not determine dimensions of %s: %v", e.Path, e.Err)
}

func (e *DimensionProbeError) Unwrap() error { return e.Err }

// EncodeError wraps a failed encoder run.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// EncodeRequest describes a single blocking encode run.
type EncodeRequest struct {
	InputPath   string
	OutputPath  string
	StartTime   int
	Duration    int // 0 encodes to the end of the source
	VideoFilter string
	AudioFilter string
	VideoArgs   ffmpeg.KwArgs
	AudioArgs   ffmpeg.KwArgs
}

// Processor wraps FFmpeg functionality
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// Probe returns the native width and height of the input's video
// stream.
func (p *Processor) Probe(inputPath string) (preset.Dimensions, error) {
	raw, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return preset.Dimensions{}, &DimensionProbeError{Path: inputPath, Err: err}
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return preset.Dimensions{}, &DimensionProbeError{Path: inputPath, Err: errors.WithStack(err)}
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return preset.Dimensions{}, &DimensionProbeError{Path: inputPath, Err: fmt.Errorf("no streams found")}
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			videoStream = s
			break
		}
	}

	if videoStream == nil {
		return preset.Dimensions{}, &DimensionProbeError{Path: inputPath, Err: fmt.Errorf("no video stream found")}
	}

	width, wok := videoStream["width"].(float64)
	height, hok := videoStream["height"].(float64)
	if !wok || !hok || width <= 0 || height <= 0 {
		return preset.Dimensions{}, &DimensionProbeError{Path: inputPath, Err: fmt.Errorf("video stream has no dimensions")}
	}

	return preset.Dimensions{Width: int(width), Height: int(height)}, nil
}

// Encode runs a single blocking FFmpeg encode, overwriting the output
// path without confirmation.
func (p *Processor) Encode(req EncodeRequest) error {
	inputKwargs := ffmpeg.KwArgs{
		"ss": req.StartTime,
	}
	if req.Duration > 0 {
		inputKwargs["t"] = req.Duration
	}

	outputKwargs := ffmpeg.KwArgs{
		"threads": GetOptimalThreadCount(),
	}
	if req.VideoFilter != "" {
		outputKwargs["vf"] = req.VideoFilter
	}
	if req.AudioFilter != "" {
		outputKwargs["af"] = req.AudioFilter
	}
	for k, v := range req.VideoArgs {
		outputKwargs[k] = v
	}
	for k, v := range req.AudioArgs {
		outputKwargs[k] = v
	}

	stream := ffmpeg.Input(req.InputPath, inputKwargs).
		Output(req.OutputPath, outputKwargs)

	if p.verbose {
		log.Printf("FFmpeg command: %s\n", stream.String())
	}

	if err := stream.OverWriteOutput().ErrorToStdOut().Run(); err != nil {
		return &EncodeError{Err: err}
	}

	return nil
}

// StatSize returns the size of path in bytes.
func (p *Processor) StatSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return info.Size(), nil
}

// GetOptimalThreadCount returns the encoder thread count, 75% of the
// available cores to prevent overload.
func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	return int(math.Max(1, float64(cpuCount)*0.75))
}
