//go:build integration

package itest

import (
	"os"
	"path/filepath"
	"testing"
)

// Fake external binaries stand in for ffmpeg, ffprobe and yt-dlp so the CLI
// can be exercised end to end without media files or network access.

const fakeProbeJSON = `{
  "streams": [
    {"codec_name": "h264", "codec_type": "video"},
    {"codec_name": "aac", "codec_type": "audio"}
  ],
  "chapters": [
    {"start_time": "0.000000", "end_time": "30.000000", "tags": {"title": "Intro"}},
    {"start_time": "30.000000", "end_time": "90.000000", "tags": {"title": "Song"}},
    {"start_time": "90.000000", "end_time": "120.000000", "tags": {"title": "Intro"}}
  ],
  "format": {"duration": "120.000000"}
}`

const fakeMetaJSON = `{"title": "Fake Video", "ext": "mp4", "duration": 120,` +
	` "chapters": [{"title": "Intro", "start_time": 0, "end_time": 30},` +
	` {"title": "Song", "start_time": 30, "end_time": 90},` +
	` {"title": "Intro", "start_time": 90, "end_time": 120}]}`

func writeFakeBin(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write fake %s: %v", name, err)
	}
}

// fakeToolDir creates a directory of fake binaries. failGlob, when non-empty,
// makes fake ffmpeg exit non-zero for output paths matching the pattern.
func fakeToolDir(t *testing.T, failGlob string) string {
	t.Helper()
	dir := t.TempDir()

	writeFakeBin(t, dir, "ffprobe", "cat <<'EOF'\n"+fakeProbeJSON+"\nEOF")

	ffmpeg := `for last in "$@"; do :; done`
	if failGlob != "" {
		ffmpeg += "\ncase \"$last\" in " + failGlob + ") echo 'fake ffmpeg boom' >&2; exit 1;; esac"
	}
	ffmpeg += "\nprintf media > \"$last\""
	writeFakeBin(t, dir, "ffmpeg", ffmpeg)

	ytdlp := `case "$*" in
*--dump-json*)
  cat <<'EOF'
` + fakeMetaJSON + `
EOF
  ;;
*)
  out=""
  prev=""
  for a in "$@"; do
    if [ "$prev" = "-o" ]; then out="$a"; fi
    prev="$a"
  done
  printf media > "$out"
  ;;
esac`
	writeFakeBin(t, dir, "yt-dlp", ytdlp)

	return dir
}
