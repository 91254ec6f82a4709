package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/chapsplit/internal/domain/naming"
	"github.com/forPelevin/chapsplit/internal/domain/plan"
	"github.com/forPelevin/chapsplit/internal/ports"
	"github.com/forPelevin/chapsplit/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/chapsplit/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/chapsplit/internal/types"
	"github.com/forPelevin/chapsplit/internal/usecase"
)

var videoContainers = map[string]bool{"mp4": true, "mkv": true, "webm": true}

type Config struct {
	// Input is a video URL or a path to an existing local media file.
	Input string
	// AudioOnly selects audio extraction; Container then names an audio
	// format (mp3/m4a/opus/flac/wav) instead of a video container.
	AudioOnly bool
	Container string
	// Bitrate in kbps; applies to lossy audio targets only.
	Bitrate string
	// MaxHeight caps the downloaded resolution; 0 means best available.
	MaxHeight int
	// DestRoot is the directory the per-video output folder is created in.
	DestRoot string
	// FailOnPartial makes any failed chapter fail the whole run. Default
	// policy fails only when every job failed.
	FailOnPartial bool
	Logf          func(format string, args ...any)

	FFmpegPath  string
	FFprobePath string
	YtdlpPath   string
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if c.DestRoot == "" {
		return errors.New("destination is empty")
	}
	if c.AudioOnly {
		if !plan.IsAudioTarget(c.Container) {
			return fmt.Errorf("unsupported audio format %q (mp3, m4a, opus, flac, wav)", c.Container)
		}
	} else if !videoContainers[c.Container] {
		return fmt.Errorf("unsupported video container %q (mp4, mkv, webm)", c.Container)
	}
	if !IsURL(c.Input) {
		if _, err := os.Stat(c.Input); err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
	}
	return nil
}

// IsURL reports whether the input names a remote video rather than a local
// file.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Run fetches or locates the source media, then hands it to the split
// usecase. The returned summary is complete even when the run error is
// non-nil due to the exit policy.
func Run(ctx context.Context, cfg Config) (types.Summary, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	cfg.Logf = logf

	// adapters
	av := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	fetch := ytdlp.New(cfg.YtdlpPath)

	src, err := locateSource(ctx, cfg, fetch)
	if err != nil {
		return types.Summary{}, err
	}

	destDir := filepath.Join(cfg.DestRoot, src.title)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return types.Summary{}, fmt.Errorf("create destination: %w", err)
	}
	logf("destination: %s", destDir)

	uc := usecase.New(usecase.Deps{Trim: av, Probe: av})
	sum, err := uc.Run(ctx, usecase.Input{
		SourcePath: src.path,
		VideoTitle: src.title,
		Chapters:   src.chapters,
		Container:  cfg.Container,
		Bitrate:    cfg.Bitrate,
		DestDir:    destDir,
		Logf:       logf,
	})
	if err != nil {
		return sum, err
	}

	if sum.AllFailed() {
		return sum, fmt.Errorf("all %d chapter(s) failed", len(sum.Failed))
	}
	if cfg.FailOnPartial && len(sum.Failed) > 0 {
		return sum, fmt.Errorf("%d of %d chapter(s) failed", len(sum.Failed), sum.Total())
	}
	return sum, nil
}

type source struct {
	path     string
	title    string
	chapters []types.Chapter
}

// locateSource resolves the input to an on-disk media file. Remote inputs are
// downloaded unless the undivided source file already exists at the top-level
// destination, in which case the download step is skipped entirely.
func locateSource(ctx context.Context, cfg Config, fetch ports.Fetcher) (source, error) {
	if !IsURL(cfg.Input) {
		base := filepath.Base(cfg.Input)
		return source{
			path:  cfg.Input,
			title: naming.Sanitize(strings.TrimSuffix(base, filepath.Ext(base))),
		}, nil
	}

	meta, err := fetch.Metadata(ctx, cfg.Input)
	if err != nil {
		return source{}, fmt.Errorf("fetch metadata: %w", err)
	}
	title := naming.Sanitize(meta.Title)

	ext := cfg.Container
	merge := cfg.Container
	if cfg.AudioOnly {
		ext = meta.Ext
		merge = ""
		if ext == "" {
			ext = "m4a"
		}
	}
	srcPath := filepath.Join(cfg.DestRoot, title+"."+ext)

	if _, err := os.Stat(srcPath); err == nil {
		cfg.Logf("source already downloaded: %s", srcPath)
		return source{path: srcPath, title: title, chapters: meta.Chapters}, nil
	}

	if err := os.MkdirAll(cfg.DestRoot, 0o755); err != nil {
		return source{}, fmt.Errorf("create destination: %w", err)
	}
	cfg.Logf("downloading %s", cfg.Input)
	err = fetch.Download(ctx, cfg.Input, ports.DownloadOptions{
		FormatSelector: ytdlp.FormatSelector(cfg.AudioOnly, cfg.MaxHeight),
		MergeContainer: merge,
		OutPath:        srcPath,
	})
	if err != nil {
		return source{}, err
	}
	return source{path: srcPath, title: title, chapters: meta.Chapters}, nil
}

// ensure adapters implement ports
var _ ports.TrimEngine = (*ffmpeg.Adapter)(nil)
var _ ports.MediaProber = (*ffmpeg.Adapter)(nil)
var _ ports.Fetcher = (*ytdlp.Adapter)(nil)
