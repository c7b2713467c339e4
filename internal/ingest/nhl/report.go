package nhl

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/rinkside/internal/pbp"
)

// ReportSeason derives the htmlreports season directory from a game id, e.g.
// 2023020001 -> "20232024".
func ReportSeason(gameID int64) string {
	year := gameID / 1000000
	return fmt.Sprintf("%d%d", year, year+1)
}

// ReportFiles returns the visitor and home time-on-ice report file names for
// a game id, e.g. 2023020001 -> "TV020001.HTM", "TH020001.HTM".
func ReportFiles(gameID int64) (visitor, home string) {
	suffix := fmt.Sprintf("%06d", gameID%1000000)
	return "TV" + suffix + ".HTM", "TH" + suffix + ".HTM"
}

// ParseShiftReport extracts shift intervals from one published HTML
// time-on-ice report. The report carries names but no player ids, so each
// player is matched back to the roster by name; players the roster cannot
// resolve are dropped.
//
// Report layout: a playerHeading cell ("24 LASTNAME, FIRSTNAME") introduces
// each player's block, followed by one row per shift whose cells are shift
// number, period, start, end, duration, event. Start and end cells read
// "elapsed / remaining"; only the elapsed half is used.
func ParseShiftReport(html []byte, team string, roster *pbp.Roster) ([]pbp.Interval, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse shift report: %w", err)
	}

	idsByName := make(map[string]int64, len(roster.Names))
	for id, name := range roster.Names {
		idsByName[name] = id
	}

	var (
		intervals []pbp.Interval
		playerID  int64
		name      string
		dropped   int
	)
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if heading := row.Find("td.playerHeading"); heading.Length() > 0 {
			name = reportPlayerName(heading.First().Text())
			playerID = idsByName[name]
			if playerID == 0 && name != "" {
				log.Printf("[nhl-report] player %q not on roster, shifts dropped", name)
			}
			return
		}
		if playerID == 0 {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		if _, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text())); err != nil {
			// Not a shift row (column headers, spacers, summary tables).
			return
		}

		period := reportPeriod(cells.Eq(1).Text())
		start, errStart := pbp.ParseClock(reportElapsed(cells.Eq(2).Text()))
		end, errEnd := pbp.ParseClock(reportElapsed(cells.Eq(3).Text()))
		if period == 0 || errStart != nil || errEnd != nil {
			dropped++
			return
		}

		intervals = append(intervals, pbp.Interval{
			PlayerID: playerID,
			Name:     name,
			Team:     team,
			Period:   period,
			Start:    start,
			End:      end,
		})
	})

	if dropped > 0 {
		log.Printf("[nhl-report] dropped %d unusable shift rows for %s (%d kept)", dropped, team, len(intervals))
	}
	return intervals, nil
}

// reportPlayerName turns "24 LASTNAME, FIRSTNAME" into "FIRSTNAME LASTNAME".
func reportPlayerName(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		if _, err := strconv.Atoi(s[:i]); err == nil {
			s = s[i+1:]
		}
	}
	last, first, ok := strings.Cut(s, ",")
	if !ok {
		return strings.ToUpper(strings.TrimSpace(s))
	}
	return strings.ToUpper(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// reportPeriod parses the period cell; overtime prints as "OT".
func reportPeriod(raw string) int {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "OT") {
		return 4
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// reportElapsed takes the elapsed half of an "elapsed / remaining" cell.
func reportElapsed(raw string) string {
	elapsed, _, _ := strings.Cut(raw, "/")
	return strings.TrimSpace(elapsed)
}
