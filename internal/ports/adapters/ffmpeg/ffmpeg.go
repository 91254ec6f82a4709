package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/forPelevin/chapsplit/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// Cut trims one time range of the source into outPath. Seek flags are placed
// after the input so ffmpeg decodes to the exact boundary instead of snapping
// to the nearest keyframe.
func (a *Adapter) Cut(ctx context.Context, job types.SplitJob, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, cutArgs(job, outPath)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg cut %q: %w\n%s", job.DisplayName, err, string(b))
	}
	return nil
}

func cutArgs(job types.SplitJob, outPath string) []string {
	args := []string{
		"-y",
		"-i", job.SourcePath,
		"-ss", fmtSeconds(job.Start),
	}
	if job.End != nil {
		// -to is an absolute timestamp, not a duration, so chapter
		// boundaries never drift.
		args = append(args, "-to", fmtSeconds(*job.End))
	}
	if job.Mode == types.ModeReencode {
		args = append(args, "-vn", "-c:a", audioCodec(job.Container))
		if job.Bitrate != "" {
			args = append(args, "-b:a", job.Bitrate+"k")
		}
	} else {
		args = append(args, "-map", "0", "-c", "copy")
	}
	return append(args, outPath)
}

func audioCodec(format string) string {
	switch format {
	case "mp3":
		return "libmp3lame"
	case "m4a":
		return "aac"
	case "opus":
		return "libopus"
	case "flac":
		return "flac"
	case "wav":
		return "pcm_s16le"
	}
	return "copy"
}

type probeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
}

type probeChapter struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Tags      struct {
		Title string `json:"title"`
	} `json:"tags"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeOutput struct {
	Streams  []probeStream  `json:"streams"`
	Chapters []probeChapter `json:"chapters"`
	Format   probeFormat    `json:"format"`
}

// Probe runs ffprobe once and returns the codec set, chapter markers and
// duration of the source file.
func (a *Adapter) Probe(ctx context.Context, path string) (types.MediaProbe, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_chapters",
		"-show_format",
		path,
	)
	b, err := cmd.Output()
	if err != nil {
		return types.MediaProbe{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return decodeProbe(b)
}

func decodeProbe(raw []byte) (types.MediaProbe, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return types.MediaProbe{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	probe := types.MediaProbe{}
	for _, s := range out.Streams {
		if s.CodecName != "" {
			probe.Codecs = append(probe.Codecs, s.CodecName)
		}
	}
	for _, ch := range out.Chapters {
		start, err := strconv.ParseFloat(ch.StartTime, 64)
		if err != nil {
			return types.MediaProbe{}, fmt.Errorf("parse chapter start %q: %w", ch.StartTime, err)
		}
		end, err := strconv.ParseFloat(ch.EndTime, 64)
		if err != nil {
			return types.MediaProbe{}, fmt.Errorf("parse chapter end %q: %w", ch.EndTime, err)
		}
		probe.Chapters = append(probe.Chapters, types.Chapter{
			Title: ch.Tags.Title,
			Start: start,
			End:   end,
		})
	}
	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return types.MediaProbe{}, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
		}
		probe.Duration = d
	}
	return probe, nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
