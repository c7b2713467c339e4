package pbp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Interval is one continuous stretch a player spends on the ice, bounded by
// within-period clock values in seconds elapsed.
type Interval struct {
	PlayerID int64
	Name     string
	Team     string // team abbreviation
	Period   int
	Start    int
	End      int
}

// ParseClock converts a "MM:SS" clock string to seconds.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil || secs < 0 || secs > 59 || mins < 0 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	return mins*60 + secs, nil
}

// FormatClock renders seconds as "MM:SS".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

type shiftBucket struct {
	Period int
	Team   string
}

// ShiftIndex answers "which intervals could cover time t" queries, bucketed
// by (period, team) with each bucket sorted by start time. This replaces the
// events x intervals nested scan: a query binary-searches the bucket and only
// touches intervals whose start does not exceed t.
type ShiftIndex struct {
	buckets map[shiftBucket][]Interval
	size    int
}

// NewShiftIndex builds an index over the given intervals.
func NewShiftIndex(intervals []Interval) *ShiftIndex {
	idx := &ShiftIndex{buckets: make(map[shiftBucket][]Interval), size: len(intervals)}
	for _, iv := range intervals {
		key := shiftBucket{Period: iv.Period, Team: iv.Team}
		idx.buckets[key] = append(idx.buckets[key], iv)
	}
	for key, bucket := range idx.buckets {
		sort.Slice(bucket, func(a, b int) bool {
			if bucket[a].Start != bucket[b].Start {
				return bucket[a].Start < bucket[b].Start
			}
			return bucket[a].End < bucket[b].End
		})
		idx.buckets[key] = bucket
	}
	return idx
}

// Len reports the number of indexed intervals.
func (x *ShiftIndex) Len() int {
	if x == nil {
		return 0
	}
	return x.size
}

// Candidates returns the intervals for (period, team) whose start time is at
// or before t. Callers still apply the boundary membership rule; intervals
// that ended before t are included here and rejected there.
func (x *ShiftIndex) Candidates(period int, team string, t int) []Interval {
	bucket := x.buckets[shiftBucket{Period: period, Team: team}]
	// First interval starting strictly after t.
	hi := sort.Search(len(bucket), func(i int) bool { return bucket[i].Start > t })
	return bucket[:hi]
}
