package plan

import (
	"errors"
	"fmt"

	"github.com/forPelevin/chapsplit/internal/types"
)

// ErrNoContainer is the modeled compatibility failure: no container can hold
// the source codecs and no fallback applies. Unreachable with the current
// table since mkv accepts everything, but callers must treat it as possible.
var ErrNoContainer = errors.New("no container can hold the source codecs")

// codec whitelists per video container. mkv is the universal fallback and is
// deliberately absent: it accepts anything.
var containerCodecs = map[string]map[string]bool{
	"mp4": {
		"h264": true, "hevc": true, "av1": true,
		"aac": true, "mp3": true, "ac3": true,
	},
	"webm": {
		"vp8": true, "vp9": true, "av1": true,
		"opus": true, "vorbis": true,
	},
}

var lossyAudio = map[string]bool{"mp3": true, "m4a": true, "opus": true}
var losslessAudio = map[string]bool{"flac": true, "wav": true}

// IsAudioTarget reports whether the requested format is an audio-only target.
func IsAudioTarget(format string) bool {
	return lossyAudio[format] || losslessAudio[format]
}

// ResolveContainer decides the effective container and trim mode for one run.
//
// Video targets stream-copy into the requested container when every probed
// codec fits it, and fall back to mkv (still a stream copy) when any codec
// does not. Audio targets always re-encode: lossy ones carry the bitrate
// through, lossless ones drop it.
func ResolveContainer(requested string, probe types.MediaProbe, bitrate string) (string, types.Mode, string, error) {
	if IsAudioTarget(requested) {
		if losslessAudio[requested] {
			return requested, types.ModeReencode, "", nil
		}
		return requested, types.ModeReencode, bitrate, nil
	}

	switch requested {
	case "mkv":
		return "mkv", types.ModeCopy, "", nil
	case "mp4", "webm":
		if holdsAll(containerCodecs[requested], probe.Codecs) {
			return requested, types.ModeCopy, "", nil
		}
		return "mkv", types.ModeCopy, "", nil
	}
	return "", 0, "", fmt.Errorf("%w: requested %q", ErrNoContainer, requested)
}

func holdsAll(allowed map[string]bool, codecs []string) bool {
	for _, c := range codecs {
		if !allowed[c] {
			return false
		}
	}
	return true
}
