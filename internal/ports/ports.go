package ports

import (
	"context"

	"github.com/forPelevin/chapsplit/internal/types"
)

type TrimEngine interface {
	Cut(ctx context.Context, job types.SplitJob, outPath string) error
}

type MediaProber interface {
	Probe(ctx context.Context, path string) (types.MediaProbe, error)
}

type Fetcher interface {
	Metadata(ctx context.Context, url string) (types.VideoMeta, error)
	Download(ctx context.Context, url string, opts DownloadOptions) error
}

// DownloadOptions shape one fetch of the source media file.
type DownloadOptions struct {
	// FormatSelector is the stream selection expression, e.g.
	// "bv*[height<=1080]+ba/best[height<=1080]/best" or "bestaudio/best".
	FormatSelector string
	// MergeContainer forces the muxed container for video downloads.
	// Empty means the fetcher's native choice.
	MergeContainer string
	// OutPath is the exact destination path for the downloaded file.
	OutPath string
}
