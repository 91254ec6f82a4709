package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/chapsplit/internal/domain/plan"
	"github.com/forPelevin/chapsplit/internal/ports"
	"github.com/forPelevin/chapsplit/internal/types"
)

type Deps struct {
	Trim  ports.TrimEngine
	Probe ports.MediaProber
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	SourcePath string
	VideoTitle string
	// Chapters from platform metadata. When empty, chapter markers embedded
	// in the source file are used instead; with neither, the whole source
	// becomes a single output.
	Chapters []types.Chapter
	// Container is the requested target: a video container (mp4/mkv/webm)
	// or an audio format (mp3/m4a/opus/flac/wav).
	Container string
	Bitrate   string
	DestDir   string
	Logf      func(format string, args ...any)
}

// Run probes the source once, plans the cuts, then executes them strictly in
// chapter order, one trim invocation at a time. An output that already exists
// is skipped; a failed trim is recorded and the remaining jobs still run.
// Only probe failures and container resolution failures are fatal.
func (u Usecase) Run(ctx context.Context, in Input) (types.Summary, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	probe, err := u.d.Probe.Probe(ctx, in.SourcePath)
	if err != nil {
		return types.Summary{}, fmt.Errorf("probe source: %w", err)
	}

	chapters := in.Chapters
	if len(chapters) == 0 && len(probe.Chapters) > 0 {
		logf("using %d chapter markers embedded in the source", len(probe.Chapters))
		chapters = probe.Chapters
	}

	container, mode, bitrate, err := plan.ResolveContainer(in.Container, probe, in.Bitrate)
	if err != nil {
		return types.Summary{}, err
	}
	if container != in.Container {
		logf("container %s cannot hold %v, falling back to %s", in.Container, probe.Codecs, container)
	}

	jobs := plan.Jobs(chapters, in.VideoTitle, in.SourcePath)
	logf("planned %d split job(s), target %s (%s)", len(jobs), container, mode)

	var sum types.Summary
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		job.Container = container
		job.Mode = mode
		job.Bitrate = bitrate

		outPath := filepath.Join(in.DestDir, job.DisplayName+"."+container)
		if _, err := os.Stat(outPath); err == nil {
			logf("[%d/%d] %s already exists, skipping", job.Index, len(jobs), job.DisplayName)
			sum.Skipped = append(sum.Skipped, outPath)
			continue
		}

		logf("[%d/%d] cutting %s", job.Index, len(jobs), job.DisplayName)
		if err := u.d.Trim.Cut(ctx, job, outPath); err != nil {
			logf("[%d/%d] %s failed: %v", job.Index, len(jobs), job.DisplayName, err)
			sum.Failed = append(sum.Failed, types.FailedJob{
				Name:   job.DisplayName,
				Reason: err.Error(),
			})
			continue
		}
		sum.Succeeded = append(sum.Succeeded, outPath)
	}
	return sum, nil
}
