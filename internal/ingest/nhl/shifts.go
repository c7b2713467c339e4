package nhl

import (
	"log"
	"strings"

	"github.com/fortuna/rinkside/internal/pbp"
)

// ParseShiftChart converts shift-chart records to intervals. Records with a
// null name are placeholder rows in the feed and are dropped, as are records
// whose clock values do not parse or run backwards; all are logged and never
// abort the game.
func ParseShiftChart(doc *ShiftChartDocument, roster *pbp.Roster) []pbp.Interval {
	if doc == nil {
		return nil
	}
	intervals := make([]pbp.Interval, 0, len(doc.Data))
	dropped := 0
	for _, rec := range doc.Data {
		if rec.FirstName == nil || rec.LastName == nil {
			dropped++
			continue
		}
		start, err := pbp.ParseClock(rec.StartTime)
		if err != nil {
			dropped++
			continue
		}
		end, err := pbp.ParseClock(rec.EndTime)
		if err != nil {
			dropped++
			continue
		}
		if end < start {
			dropped++
			continue
		}

		team := strings.ToUpper(rec.TeamAbbrev)
		if team == "" {
			team = roster.AbbrevFor(rec.TeamID)
		}

		intervals = append(intervals, pbp.Interval{
			PlayerID: rec.PlayerID,
			Name:     strings.ToUpper(strings.TrimSpace(*rec.FirstName + " " + *rec.LastName)),
			Team:     team,
			Period:   rec.Period,
			Start:    start,
			End:      end,
		})
	}
	if dropped > 0 {
		log.Printf("[nhl-shifts] dropped %d unusable shift records (%d kept)", dropped, len(intervals))
	}
	return intervals
}
