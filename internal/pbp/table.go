package pbp

import "sort"

// Columns is the flattened output header, in the exact order downstream
// consumers depend on.
var Columns = []string{
	"Game_Id", "Period", "Event_tc", "Event", "Time_Remaining", "Time_Elapsed",
	"Strength", "Type", "p1_ID", "p1_name", "Ev_Team", "p2_ID", "p2_name",
	"p3_ID", "p3_name", "xC", "yC", "Home_Skaters", "Away_Skaters",
	"Home_Score", "Away_Score", "Away_Team", "Home_Team", "sortOrder",
	"awayPlayer1", "awayPlayer1_id", "awayPlayer2", "awayPlayer2_id",
	"awayPlayer3", "awayPlayer3_id", "awayPlayer4", "awayPlayer4_id",
	"awayPlayer5", "awayPlayer5_id", "awayPlayer6", "awayPlayer6_id",
	"homePlayer1", "homePlayer1_id", "homePlayer2", "homePlayer2_id",
	"homePlayer3", "homePlayer3_id", "homePlayer4", "homePlayer4_id",
	"homePlayer5", "homePlayer5_id", "homePlayer6", "homePlayer6_id",
	"Away_Goalie", "Away_Goalie_Id", "Home_Goalie", "Home_Goalie_Id",
}

// Table is an ordered sequence of normalized events: one game's rows in
// sortOrder, or several games concatenated in caller order.
type Table struct {
	Rows []*Event `json:"rows"`
}

// NewTable sorts the events by sortOrder and wraps them. Sort order is the
// canonical chronology: timestamps repeat across stoppages and faceoffs and
// must never be used to order rows.
func NewTable(events []*Event) *Table {
	rows := make([]*Event, len(events))
	copy(rows, events)
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].SortOrder < rows[b].SortOrder
	})
	return &Table{Rows: rows}
}

// Len reports the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append concatenates another table's rows after this table's, preserving
// both block orders.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// ResolveNames fills participant names from the roster. Names already set
// (from shift records, for example) are kept. Unresolvable ids keep an empty
// name rather than leaking a raw id into a name field.
func (t *Table) ResolveNames(roster *Roster) {
	for _, ev := range t.Rows {
		for _, p := range []*Participant{ev.P1, ev.P2, ev.P3} {
			if p != nil && p.Name == "" {
				p.Name = roster.NameFor(p.ID)
			}
		}
	}
}
