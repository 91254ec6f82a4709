package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "chapsplit <url-or-file>",
		Short:        "Download a video and split it into one file per chapter",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("mode", "", "What to download: video or audio")
	root.Flags().String("container", "", "Video container: mp4, mkv or webm")
	root.Flags().String("format", "", "Audio format: mp3, m4a, flac, wav or opus")
	root.Flags().String("bitrate", "", "Audio bitrate in kbps: 128, 160, 192, 256 or 320")
	root.Flags().String("res", "", "Maximum resolution: best, 2160, 1440, 1080, 720, 480 or 360")
	root.Flags().String("out", "", "Destination folder for the files")
	root.Flags().Bool("strict", false, "Fail the run when any chapter fails")
	root.Flags().Bool("no-input", false, "Never prompt; all choices must come from flags or config")
	root.Flags().String("config", "", "Path to a YAML defaults file")

	// Hidden tool overrides (internal)
	root.Flags().String("ffmpeg", "", "ffmpeg binary path")
	root.Flags().String("ffprobe", "", "ffprobe binary path")
	root.Flags().String("ytdlp", "", "yt-dlp binary path")
	_ = root.Flags().MarkHidden("ffmpeg")
	_ = root.Flags().MarkHidden("ffprobe")
	_ = root.Flags().MarkHidden("ytdlp")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
