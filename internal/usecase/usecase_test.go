package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/chapsplit/internal/types"
)

type fakeTrim struct {
	jobs     []types.SplitJob
	outPaths []string
	failOn   map[string]bool
	touch    bool
}

func (f *fakeTrim) Cut(_ context.Context, job types.SplitJob, outPath string) error {
	f.jobs = append(f.jobs, job)
	f.outPaths = append(f.outPaths, outPath)
	if f.failOn[job.DisplayName] {
		return errors.New("trim engine exit status 1")
	}
	if f.touch {
		if err := os.WriteFile(outPath, []byte("x"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeProbe struct {
	probe types.MediaProbe
	err   error
	calls int
}

func (f *fakeProbe) Probe(_ context.Context, _ string) (types.MediaProbe, error) {
	f.calls++
	return f.probe, f.err
}

func h264aac() types.MediaProbe {
	return types.MediaProbe{Codecs: []string{"h264", "aac"}, Duration: 120}
}

func concertChapters() []types.Chapter {
	return []types.Chapter{
		{Title: "Intro", Start: 0, End: 30},
		{Title: "Song", Start: 30, End: 90},
		{Title: "Intro", Start: 90, End: 120},
	}
}

func TestRun_SplitsChaptersInOrder(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	probe := &fakeProbe{probe: h264aac()}
	uc := New(Deps{Trim: trim, Probe: probe})

	dest := t.TempDir()
	sum, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/concert.mp4",
		VideoTitle: "Concert",
		Chapters:   concertChapters(),
		Container:  "mp4",
		DestDir:    dest,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if probe.calls != 1 {
		t.Fatalf("expected exactly one probe call, got %d", probe.calls)
	}
	if len(sum.Succeeded) != 3 || len(sum.Skipped) != 0 || len(sum.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	wantNames := []string{"01 - Intro", "Song", "03 - Intro"}
	wantStarts := []float64{0, 30, 90}
	wantEnds := []float64{30, 90, 120}
	if len(trim.jobs) != 3 {
		t.Fatalf("expected 3 cuts, got %d", len(trim.jobs))
	}
	for i, job := range trim.jobs {
		if job.DisplayName != wantNames[i] {
			t.Fatalf("job %d name = %q, want %q", i, job.DisplayName, wantNames[i])
		}
		if job.Start != wantStarts[i] {
			t.Fatalf("job %d start = %v, want %v", i, job.Start, wantStarts[i])
		}
		if job.End == nil || *job.End != wantEnds[i] {
			t.Fatalf("job %d end = %v, want %v", i, job.End, wantEnds[i])
		}
		if job.Container != "mp4" || job.Mode != types.ModeCopy {
			t.Fatalf("job %d container/mode = %s/%s", i, job.Container, job.Mode)
		}
	}
	if !strings.HasSuffix(trim.outPaths[0], filepath.Join(dest, "01 - Intro.mp4")) {
		t.Fatalf("unexpected out path: %s", trim.outPaths[0])
	}
}

func TestRun_NoChaptersSingleJob(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	uc := New(Deps{Trim: trim, Probe: &fakeProbe{probe: h264aac()}})

	sum, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/talk.mp4",
		VideoTitle: "Full Talk",
		Container:  "mp4",
		DestDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sum.Succeeded) != 1 {
		t.Fatalf("expected 1 success, got %+v", sum)
	}
	job := trim.jobs[0]
	if job.DisplayName != "Full Talk" || job.Start != 0 || job.End != nil {
		t.Fatalf("unexpected single job: %+v", job)
	}
}

func TestRun_EmbeddedChaptersFallback(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	probe := &fakeProbe{probe: types.MediaProbe{
		Codecs:   []string{"h264", "aac"},
		Chapters: concertChapters(),
	}}
	uc := New(Deps{Trim: trim, Probe: probe})

	_, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/concert.mkv",
		VideoTitle: "Concert",
		Container:  "mkv",
		DestDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(trim.jobs) != 3 {
		t.Fatalf("expected jobs from embedded chapters, got %d", len(trim.jobs))
	}
}

func TestRun_IdempotentRerun(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	for _, name := range []string{"01 - Intro.mp4", "Song.mp4", "03 - Intro.mp4"} {
		if err := os.WriteFile(filepath.Join(dest, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("fixture: %v", err)
		}
	}

	trim := &fakeTrim{}
	uc := New(Deps{Trim: trim, Probe: &fakeProbe{probe: h264aac()}})

	sum, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/concert.mp4",
		VideoTitle: "Concert",
		Chapters:   concertChapters(),
		Container:  "mp4",
		DestDir:    dest,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(trim.jobs) != 0 {
		t.Fatalf("expected zero trim invocations on re-run, got %d", len(trim.jobs))
	}
	if len(sum.Skipped) != 3 || len(sum.Succeeded) != 0 || len(sum.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestRun_PartialFailureContinues(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{failOn: map[string]bool{"Song": true}}
	uc := New(Deps{Trim: trim, Probe: &fakeProbe{probe: h264aac()}})

	sum, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/concert.mp4",
		VideoTitle: "Concert",
		Chapters:   concertChapters(),
		Container:  "mp4",
		DestDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(trim.jobs) != 3 {
		t.Fatalf("expected all 3 jobs attempted, got %d", len(trim.jobs))
	}
	if len(sum.Succeeded) != 2 || len(sum.Failed) != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.Failed[0].Name != "Song" || sum.Failed[0].Reason == "" {
		t.Fatalf("unexpected failure record: %+v", sum.Failed[0])
	}
	if sum.AllFailed() {
		t.Fatal("partial failure must not count as all-failed")
	}
}

func TestRun_ContainerFallbackAppliedToJobs(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	probe := &fakeProbe{probe: types.MediaProbe{Codecs: []string{"vp9", "opus"}}}
	uc := New(Deps{Trim: trim, Probe: probe})

	dest := t.TempDir()
	sum, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/concert.webm",
		VideoTitle: "Concert",
		Chapters:   concertChapters(),
		Container:  "mp4",
		DestDir:    dest,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, job := range trim.jobs {
		if job.Container != "mkv" || job.Mode != types.ModeCopy {
			t.Fatalf("job %d not remapped to mkv copy: %+v", i, job)
		}
	}
	for _, p := range sum.Succeeded {
		if filepath.Ext(p) != ".mkv" {
			t.Fatalf("output %s does not use fallback container", p)
		}
	}
}

func TestRun_ProbeFailureIsFatal(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	uc := New(Deps{Trim: trim, Probe: &fakeProbe{err: errors.New("no such file")}})

	_, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/missing.mp4",
		VideoTitle: "v",
		Container:  "mp4",
		DestDir:    t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if len(trim.jobs) != 0 {
		t.Fatalf("no job may run after a fatal probe error, got %d", len(trim.jobs))
	}
}

func TestRun_AudioReencode(t *testing.T) {
	t.Parallel()

	trim := &fakeTrim{}
	uc := New(Deps{Trim: trim, Probe: &fakeProbe{probe: types.MediaProbe{Codecs: []string{"opus"}}}})

	_, err := uc.Run(context.Background(), Input{
		SourcePath: "/in/audio.webm",
		VideoTitle: "Mix",
		Chapters:   concertChapters()[:2],
		Container:  "mp3",
		Bitrate:    "192",
		DestDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, job := range trim.jobs {
		if job.Mode != types.ModeReencode || job.Bitrate != "192" || job.Container != "mp3" {
			t.Fatalf("job %d not a bitrate reencode: %+v", i, job)
		}
	}
}
