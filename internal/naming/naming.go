package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/resolve"
)

// OutputExtension is the fixed extension of every produced file.
const OutputExtension = ".mp4"

// OutputName derives the canonical output filename from the base name
// (without extension) and the resolved parameters. Every non-default
// parameter contributes a suffix token in a fixed order, after the
// constant "-edited" marker. No collision detection is performed.
func OutputName(base string, params *resolve.Parameters) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("-edited")

	if params.StartTime > 0 {
		fmt.Fprintf(&sb, "-s%d", params.StartTime)
	}
	if params.Duration > 0 {
		fmt.Fprintf(&sb, "-d%d", params.Duration)
	}
	if params.Speed != 1.0 {
		fmt.Fprintf(&sb, "-speed%s", strconv.FormatFloat(params.Speed, 'g', -1, 64))
	}
	if params.Rotation != 0 {
		fmt.Fprintf(&sb, "-r%d", params.Rotation)
	}
	if params.CropRatio != preset.CropNone {
		fmt.Fprintf(&sb, "-crop%s", strings.ReplaceAll(params.CropRatio, ":", ""))
	}
	if params.TargetSize != preset.Original {
		fmt.Fprintf(&sb, "-%s", params.TargetSize)
	}
	if params.Quality != preset.DefaultQuality {
		fmt.Fprintf(&sb, "-q%s", params.Quality)
	}

	sb.WriteString(OutputExtension)
	return sb.String()
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)
	runs        = regexp.MustCompile(`_+`)
)

// Sanitize replaces filesystem-unfriendly characters in a base name
// with underscores and collapses runs.
func Sanitize(base string) string {
	sanitized := unsafeChars.ReplaceAllString(base, "_")
	sanitized = runs.ReplaceAllString(sanitized, "_")
	return strings.Trim(sanitized, "_")
}
