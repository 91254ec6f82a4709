// Package plan turns a chapter list into an ordered sequence of split jobs
// and decides, up front, which container each output can use. All decisions
// that could fail at trim time are made here, before any file is touched.
package plan

import (
	"github.com/forPelevin/chapsplit/internal/domain/naming"
	"github.com/forPelevin/chapsplit/internal/types"
)

// Jobs converts the chapter list into split jobs, one per chapter, in chapter
// order. With no chapters the whole source becomes a single job named after
// the video. Colliding chapter names are rewritten with their stable numeric
// prefix before the jobs are returned.
func Jobs(chapters []types.Chapter, videoTitle, sourcePath string) []types.SplitJob {
	if len(chapters) == 0 {
		return []types.SplitJob{{
			Index:       1,
			DisplayName: naming.Sanitize(videoTitle),
			Start:       0,
			End:         nil,
			SourcePath:  sourcePath,
		}}
	}

	names := make([]string, len(chapters))
	for i, ch := range chapters {
		names[i] = naming.Sanitize(ch.Title)
	}
	names = naming.ResolveDuplicates(names)

	jobs := make([]types.SplitJob, len(chapters))
	for i, ch := range chapters {
		start := ch.Start
		if i == 0 {
			// Never drop leading content when the first chapter
			// starts past zero.
			start = 0
		}
		end := ch.End
		jobs[i] = types.SplitJob{
			Index:       i + 1,
			DisplayName: names[i],
			Start:       start,
			End:         &end,
			SourcePath:  sourcePath,
		}
	}
	return jobs
}
