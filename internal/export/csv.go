// Package export serializes assembled play-by-play tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fortuna/rinkside/internal/pbp"
)

// WriteCSV writes the table with the standard header. Absent optional values
// serialize as empty cells, never as zeros.
func WriteCSV(w io.Writer, table *pbp.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pbp.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, ev := range table.Rows {
		if err := cw.Write(Row(ev)); err != nil {
			return fmt.Errorf("write csv row (game %d, sortOrder %d): %w", ev.GameID, ev.SortOrder, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row flattens one event into the column order of pbp.Columns.
func Row(ev *pbp.Event) []string {
	row := make([]string, 0, len(pbp.Columns))
	row = append(row,
		strconv.FormatInt(ev.GameID, 10),
		strconv.Itoa(ev.Period),
		strconv.Itoa(ev.TypeCode),
		string(ev.Kind),
		ev.TimeRemaining,
		ev.TimeElapsed,
		ev.Strength,
		ev.Detail,
	)
	row = append(row, participantID(ev.P1), participantName(ev.P1), ev.EvTeam)
	row = append(row, participantID(ev.P2), participantName(ev.P2))
	row = append(row, participantID(ev.P3), participantName(ev.P3))
	row = append(row, optInt(ev.XCoord), optInt(ev.YCoord))
	row = append(row, optInt(ev.HomeSkaters), optInt(ev.AwaySkaters))
	row = append(row,
		strconv.Itoa(ev.HomeScore),
		strconv.Itoa(ev.AwayScore),
		ev.AwayTeam,
		ev.HomeTeam,
		strconv.Itoa(ev.SortOrder),
	)

	for _, slots := range [][]pbp.Participant{ev.AwayOnIce, ev.HomeOnIce} {
		for i := 0; i < pbp.MaxSkaterSlots; i++ {
			if i < len(slots) {
				row = append(row, slots[i].Name, strconv.FormatInt(slots[i].ID, 10))
			} else {
				row = append(row, "", "")
			}
		}
	}
	row = append(row, participantName(ev.AwayGoalie), participantID(ev.AwayGoalie))
	row = append(row, participantName(ev.HomeGoalie), participantID(ev.HomeGoalie))
	return row
}

func participantID(p *pbp.Participant) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}

func participantName(p *pbp.Participant) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
