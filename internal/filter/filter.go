package filter

import (
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ZacxDev/video-editor/internal/planner"
	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/resolve"
)

// Settings is everything the encoder needs besides the trim window:
// the serialized filter chains and the codec parameter sets.
type Settings struct {
	VideoFilter string
	AudioFilter string
	VideoArgs   ffmpeg.KwArgs
	AudioArgs   ffmpeg.KwArgs
}

// Assemble serializes the plan into the comma-joined filter expression
// the encoder expects and folds in the quality/bitrate policy. The
// encoder is order-sensitive, so operations are emitted strictly in
// plan order.
func Assemble(plan *planner.Plan, params *resolve.Parameters) *Settings {
	var videoFilters []string
	var audioFilters []string

	for _, op := range plan.Ops {
		switch op.Kind {
		case planner.OpRotate:
			videoFilters = append(videoFilters, rotateFilter(op.Degrees))
		case planner.OpCrop:
			videoFilters = append(videoFilters, cropFilter(op.Ratio))
		case planner.OpScaleAndPad:
			videoFilters = append(videoFilters, fmt.Sprintf(
				"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
				op.Width, op.Height, op.Width, op.Height,
			))
		case planner.OpNormalizeFrameRate:
			videoFilters = append(videoFilters, fmt.Sprintf("fps=%d", op.FPS))
		case planner.OpRemapTimestamps:
			videoFilters = append(videoFilters, fmt.Sprintf("setpts=%s*PTS", formatFactor(op.Factor)))
			// Keep audio in sync with the retimed video.
			audioFilters = append(audioFilters, atempoChain(params.Speed)...)
		}
	}

	videoArgs, audioArgs := codecArgs(params)

	return &Settings{
		VideoFilter: strings.Join(videoFilters, ","),
		AudioFilter: strings.Join(audioFilters, ","),
		VideoArgs:   videoArgs,
		AudioArgs:   audioArgs,
	}
}

func rotateFilter(degrees int) string {
	switch degrees {
	case 90:
		return "transpose=1"
	case 180:
		return "transpose=1,transpose=1"
	case 270:
		return "transpose=2"
	}
	return ""
}

func cropFilter(ratio string) string {
	switch ratio {
	case preset.CropSquare:
		return "crop='min(iw,ih)':'min(iw,ih)'"
	case preset.CropWide:
		return "crop=iw:iw*9/16"
	case preset.CropPortrait:
		return "crop=ih*9/16:ih"
	}
	return ""
}

// atempoChain builds the audio tempo filters for a speed change.
// atempo only supports factors in [0.5, 2.0], so larger changes are
// chained.
func atempoChain(speed float64) []string {
	if speed <= 0 || speed == 1.0 {
		return nil
	}

	var parts []string
	remaining := speed
	for remaining > 2.0 {
		parts = append(parts, "atempo=2.0")
		remaining /= 2.0
	}
	for remaining < 0.5 {
		parts = append(parts, "atempo=0.5")
		remaining /= 0.5
	}
	return append(parts, fmt.Sprintf("atempo=%s", formatFactor(remaining)))
}

// codecArgs produces the video and audio codec parameter sets: a
// constant-quality factor from the quality preset, the slow
// bitrate-capped profile when the smallest file is requested, and a
// mono low-bitrate audio policy for verylow/smallest outputs.
func codecArgs(params *resolve.Parameters) (ffmpeg.KwArgs, ffmpeg.KwArgs) {
	crf, _ := preset.QualityCRF(params.Quality)

	videoArgs := ffmpeg.KwArgs{
		"c:v":      "libx264",
		"crf":      crf,
		"preset":   "medium",
		"pix_fmt":  "yuv420p",
		"movflags": "+faststart",
	}
	if params.SmallestFile {
		videoArgs["preset"] = "veryslow"
		videoArgs["maxrate"] = "500k"
		videoArgs["bufsize"] = "1M"
	}

	audioArgs := ffmpeg.KwArgs{
		"c:a": "aac",
		"ar":  44100,
	}
	if params.SmallestFile || params.Quality == preset.QualityVeryLow {
		audioArgs["b:a"] = "64k"
		audioArgs["ac"] = 1
	} else {
		audioArgs["b:a"] = "128k"
		audioArgs["ac"] = 2
	}

	return videoArgs, audioArgs
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
