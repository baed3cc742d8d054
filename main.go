package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ZacxDev/video-editor/internal/config"
	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/resolve"
	"github.com/ZacxDev/video-editor/pkg/videoeditor"
)

var (
	rootCmd = &cobra.Command{
		Use:   "video-editor",
		Short: "A command-line video editor built on FFmpeg",
		Long: `video-editor trims, retimes, rotates, crops, and resizes a video in a
single FFmpeg pass and reports the resulting size reduction.

Examples:
  # Trim 30 seconds starting at 0:10 and scale to 1280x720
  video-editor edit -i input.mp4 -s 10 -d 30 --size HD

  # Square-crop a rotated phone recording into the smallest possible file
  video-editor edit -i input.mp4 -r 90 -c 1:1 --smallest -y`,
	}

	editCmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit a video and re-encode it",
		Long: fmt.Sprintf(`Edit a video file. Unset parameters are prompted for when running in a
terminal, or filled from defaults with --yes.

Size presets:
%s
Quality presets: %s

Example:
  video-editor edit -i input.mp4 --speed 2 --size HD -q low`,
			formatSizePresets(), strings.Join(preset.QualityNames(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.EditOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputDir, _ = cmd.Flags().GetString("output-dir")
			opts.StartTime, _ = cmd.Flags().GetString("start")
			opts.Duration, _ = cmd.Flags().GetString("duration")
			opts.Speed, _ = cmd.Flags().GetString("speed")
			opts.Rotation, _ = cmd.Flags().GetString("rotate")
			opts.CropRatio, _ = cmd.Flags().GetString("crop")
			opts.TargetSize, _ = cmd.Flags().GetString("size")
			opts.Quality, _ = cmd.Flags().GetString("quality")
			opts.SmallestFile, _ = cmd.Flags().GetBool("smallest")
			opts.AssumeYes, _ = cmd.Flags().GetBool("yes")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			var prompt resolve.PromptFunc
			if !opts.AssumeYes && isatty.IsTerminal(os.Stdin.Fd()) {
				prompt = stdinPrompt
			}

			summary, err := videoeditor.New(opts, prompt).Run()
			if err != nil {
				return err
			}

			fmt.Println(summary.Render())
			return nil
		},
	}

	listPresetsCmd = &cobra.Command{
		Use:   "list-presets",
		Short: "List the available size and quality presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Size presets:")
			fmt.Print(formatSizePresets())
			fmt.Println("Quality presets:")
			for _, name := range preset.QualityNames() {
				crf, _ := preset.QualityCRF(name)
				fmt.Printf("- %s (crf %d)\n", name, crf)
			}
		},
	}
)

func stdinPrompt(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func formatSizePresets() string {
	var sb strings.Builder
	for _, name := range preset.SizeNames() {
		if name == preset.Original {
			sb.WriteString("- original (keep source resolution)\n")
			continue
		}
		dims, _ := preset.Size(name)
		sb.WriteString(fmt.Sprintf("- %s (%dx%d)\n", name, dims.Width, dims.Height))
	}
	return sb.String()
}

func init() {
	editCmd.Flags().StringP("input", "i", "", "Input video file")
	editCmd.Flags().StringP("output-dir", "o", "", "Output directory (default: alongside the input)")
	editCmd.Flags().StringP("start", "s", "", "Start time in seconds")
	editCmd.Flags().StringP("duration", "d", "", "Duration in seconds (default: to end of video)")
	editCmd.Flags().String("speed", "", "Playback speed modifier (e.g. 2 doubles the speed)")
	editCmd.Flags().StringP("rotate", "r", "", "Rotation in degrees (0, 90, 180, 270)")
	editCmd.Flags().StringP("crop", "c", "", "Crop ratio (none, 1:1, 16:9, 9:16)")
	editCmd.Flags().String("size", "", "Target size preset or 'original'")
	editCmd.Flags().StringP("quality", "q", "", "Quality preset (high, medium, low, verylow)")
	editCmd.Flags().Bool("smallest", false, "Produce the smallest possible file (forces verylow quality)")
	editCmd.Flags().BoolP("yes", "y", false, "Skip prompts and use defaults for unset parameters")
	editCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listPresetsCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
