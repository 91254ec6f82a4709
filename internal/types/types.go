package types

// Chapter is one named time interval of the source video, as supplied by the
// platform metadata. Start and End are absolute seconds from the beginning of
// the source. Chapters arrive ordered by start time and contiguous.
type Chapter struct {
	Title string  `json:"title"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

// Mode says how a split job materializes its output.
type Mode int

const (
	// ModeCopy trims the time range with a stream copy, preserving the
	// original codec bits.
	ModeCopy Mode = iota
	// ModeReencode decodes and re-compresses into the target codec.
	ModeReencode
)

func (m Mode) String() string {
	if m == ModeReencode {
		return "reencode"
	}
	return "copy"
}

// SplitJob is one planned cut: an exact time range of the source mapped to a
// named output file. End == nil means "until the end of the source".
type SplitJob struct {
	Index       int
	DisplayName string
	Start       float64
	End         *float64
	SourcePath  string
	Container   string
	Mode        Mode
	Bitrate     string
}

// MediaProbe describes the source file as reported by one probe call. It is
// fetched once per run and read-only afterwards.
type MediaProbe struct {
	Codecs   []string
	Chapters []Chapter
	Duration float64
}

// HasCodec reports whether the probe saw the given codec identifier.
func (p MediaProbe) HasCodec(name string) bool {
	for _, c := range p.Codecs {
		if c == name {
			return true
		}
	}
	return false
}

// VideoMeta is the slice of platform metadata the splitter needs: enough to
// name the source file and to plan the cuts.
type VideoMeta struct {
	Title    string    `json:"title"`
	Ext      string    `json:"ext"`
	Duration float64   `json:"duration"`
	Chapters []Chapter `json:"chapters"`
}

// FailedJob records one chapter whose trim invocation did not complete.
type FailedJob struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary is the structured result of a full run.
type Summary struct {
	Succeeded []string    `json:"succeeded"`
	Skipped   []string    `json:"skipped"`
	Failed    []FailedJob `json:"failed"`
}

// Total returns the number of jobs the run attempted or skipped.
func (s Summary) Total() int {
	return len(s.Succeeded) + len(s.Skipped) + len(s.Failed)
}

// AllFailed reports whether every attempted job failed. Skipped outputs count
// as prior successes, so a fully skipped re-run is not a failure.
func (s Summary) AllFailed() bool {
	return len(s.Failed) > 0 && len(s.Succeeded) == 0 && len(s.Skipped) == 0
}
