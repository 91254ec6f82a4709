// Package ytdlp shells out to yt-dlp for the two things the splitter needs
// from the platform: the video metadata (title, chapters, native extension)
// and the media file itself.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/forPelevin/chapsplit/internal/ports"
	"github.com/forPelevin/chapsplit/internal/types"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

func (a *Adapter) Metadata(ctx context.Context, url string) (types.VideoMeta, error) {
	cmd := exec.CommandContext(ctx, a.bin,
		"--dump-json",
		"--no-playlist",
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	b, err := cmd.Output()
	if err != nil {
		return types.VideoMeta{}, fmt.Errorf("yt-dlp metadata: %w\n%s", err, stderr.String())
	}
	return decodeMeta(b)
}

func decodeMeta(raw []byte) (types.VideoMeta, error) {
	var meta types.VideoMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return types.VideoMeta{}, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	if meta.Title == "" {
		return types.VideoMeta{}, fmt.Errorf("yt-dlp metadata has no title")
	}
	return meta, nil
}

func (a *Adapter) Download(ctx context.Context, url string, opts ports.DownloadOptions) error {
	args := []string{
		"-f", opts.FormatSelector,
		"--no-playlist",
		"-o", opts.OutPath,
	}
	if opts.MergeContainer != "" {
		args = append(args, "--merge-output-format", opts.MergeContainer)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("yt-dlp download: %w\n%s", err, string(b))
	}
	return nil
}

// FormatSelector composes the stream selection expression. maxHeight == 0
// means best available.
func FormatSelector(audioOnly bool, maxHeight int) string {
	if audioOnly {
		return "bestaudio/best"
	}
	if maxHeight <= 0 {
		return "bv*+ba/best"
	}
	return fmt.Sprintf("bv*[height<=%d]+ba/best[height<=%d]/best", maxHeight, maxHeight)
}
