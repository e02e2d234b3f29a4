package value

import (
	"math"
	"time"

	"github.com/netnix-sa/moquist/internal/schema"
)

// soonRecentSpan and futurePastSpan bound the day offsets Soon/Recent and
// Future/Past draw from, per the Date offsets table.
const (
	soonRecentSpan = 35
	futurePastSpan = 84
)

// renderDate maps key to a day offset from the current instant per frame
// and formats the result as RFC 3339. Date is the one expression kind
// that doesn't reproduce byte-identical output across runs, since it
// reads the wall clock at render time rather than anything derived only
// from ctx.
func renderDate(frame schema.Frame, key uint64) string {
	now := time.Now().UTC()

	var offsetDays int64

	switch frame {
	case schema.FrameNow:
		offsetDays = 0

	case schema.FrameSoon:
		offsetDays = 1 + int64(key%soonRecentSpan)

	case schema.FrameRecent:
		offsetDays = -(1 + int64(key%soonRecentSpan))

	case schema.FrameFuture:
		offsetDays = 36 + int64(key%futurePastSpan)

	case schema.FramePast:
		offsetDays = -(36 + int64(key%futurePastSpan))
	}

	return now.AddDate(0, 0, int(offsetDays)).Format(time.RFC3339)
}

// remEuclidF is the non-negative floating point remainder of a/b: Go's %
// operator keeps the sign of its dividend, but a hashed key cast to
// float64 is always non-negative, so this only has to guard against a
// zero divisor.
func remEuclidF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}
	return r
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
