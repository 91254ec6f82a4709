package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/forPelevin/chapsplit/internal/pipeline"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, input string) error {
	flags := cmd.Flags()
	mode, _ := flags.GetString("mode")
	container, _ := flags.GetString("container")
	format, _ := flags.GetString("format")
	bitrate, _ := flags.GetString("bitrate")
	res, _ := flags.GetString("res")
	out, _ := flags.GetString("out")
	strict, _ := flags.GetBool("strict")
	noInput, _ := flags.GetBool("no-input")
	configPath, _ := flags.GetString("config")

	fc, err := loadFileConfig(configPath, flags.Changed("config"))
	if err != nil {
		return err
	}
	mode = firstOf(mode, fc.Mode)
	container = firstOf(container, fc.Container)
	format = firstOf(format, fc.Format)
	bitrate = firstOf(bitrate, fc.Bitrate)
	res = firstOf(res, fc.Resolution)
	out = firstOf(out, fc.Destination)

	if !noInput {
		if mode == "" {
			if err := promptMode(&mode); err != nil {
				return err
			}
		}
		switch mode {
		case "audio":
			if err := promptAudioOptions(&format, &bitrate); err != nil {
				return err
			}
		default:
			if err := promptVideoOptions(&container, &res); err != nil {
				return err
			}
		}
		if out == "" {
			if err := promptDestination(&out); err != nil {
				return err
			}
		}
	}
	if mode == "" {
		mode = "video"
	}
	if out == "" {
		out = "."
	}

	maxHeight, err := parseHeight(res)
	if err != nil {
		return err
	}

	ffmpegPath, _ := flags.GetString("ffmpeg")
	ffprobePath, _ := flags.GetString("ffprobe")
	ytdlpPath, _ := flags.GetString("ytdlp")

	cfg := pipeline.Config{
		Input:         input,
		AudioOnly:     mode == "audio",
		Bitrate:       bitrate,
		MaxHeight:     maxHeight,
		DestRoot:      out,
		FailOnPartial: strict,
		Logf: func(f string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), f+"\n", args...)
		},

		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
		YtdlpPath:   ytdlpPath,
	}
	if cfg.AudioOnly {
		cfg.Container = format
	} else {
		cfg.Container = container
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, runErr := pipeline.Run(ctx, cfg)
	if sum.Total() > 0 || runErr == nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(sum))
	}
	return runErr
}

// parseHeight maps the resolution choice to a pixel cap. "best" and the empty
// value mean unbounded.
func parseHeight(s string) (int, error) {
	if s == "" || s == "best" {
		return 0, nil
	}
	h, err := strconv.Atoi(s)
	if err != nil || h <= 0 {
		return 0, fmt.Errorf("invalid resolution %q", s)
	}
	return h, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
