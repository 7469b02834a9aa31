package input

import (
	"context"
	"fmt"

	log "github.com/leakydata/srt-voiceover/logger"
)

// ValidateSegments rejects inverted or non-monotonic segment windows.
// A failure here is fatal; the run must abort before any synthesis.
func ValidateSegments(ctx context.Context, segments []TimedSegment) *log.Status {
	var prevStart int64 = -1
	var prevEnd int64
	for i, seg := range segments {
		if seg.StartMS >= seg.EndMS {
			return log.ErrorNoErr(ctx, 400,
				fmt.Sprintf("Segment %d has start %dms >= end %dms", i, seg.StartMS, seg.EndMS))
		}
		if seg.StartMS < prevStart {
			return log.ErrorNoErr(ctx, 400,
				fmt.Sprintf("Segment %d start %dms is before segment %d start %dms", i, seg.StartMS, i-1, prevStart))
		}
		if seg.StartMS < prevEnd {
			return log.ErrorNoErr(ctx, 400,
				fmt.Sprintf("Segment %d start %dms overlaps segment %d end %dms", i, seg.StartMS, i-1, prevEnd))
		}
		prevStart = seg.StartMS
		prevEnd = seg.EndMS
	}
	return nil
}

// ValidateWordTimings rejects inverted words and out-of-order sequences.
func ValidateWordTimings(ctx context.Context, words []WordTiming) *log.Status {
	var prevStart int64 = -1
	for i, word := range words {
		if word.StartMS > word.EndMS {
			return log.ErrorNoErr(ctx, 400,
				fmt.Sprintf("Word %d %q has start %dms > end %dms", i, word.Word, word.StartMS, word.EndMS))
		}
		if word.StartMS < prevStart {
			return log.ErrorNoErr(ctx, 400,
				fmt.Sprintf("Word %d %q at %dms is out of time order", i, word.Word, word.StartMS))
		}
		prevStart = word.StartMS
	}
	return nil
}
