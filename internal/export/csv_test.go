package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/fortuna/rinkside/internal/pbp"
)

func colIndex(t *testing.T, name string) int {
	t.Helper()
	for i, c := range pbp.Columns {
		if c == name {
			return i
		}
	}
	t.Fatalf("column %q not in header", name)
	return -1
}

func TestWriteCSV(t *testing.T) {
	five := 5
	x := -42
	table := pbp.NewTable([]*pbp.Event{
		{
			GameID: 2023020001, SortOrder: 2, Period: 1,
			TypeCode: pbp.CodeGoal, Kind: pbp.KindGoal,
			TimeElapsed: "05:00", TimeRemaining: "15:00",
			Strength: "1551", Detail: "WRIST",
			HomeSkaters: &five, AwaySkaters: &five,
			XCoord: &x,
			P1:     &pbp.Participant{ID: 8478402, Name: "CONNOR MCDAVID"},
			EvTeam: "EDM", HomeTeam: "WSH", AwayTeam: "EDM",
			HomeScore: 0, AwayScore: 1,
			AwayOnIce:  []pbp.Participant{{ID: 8478402, Name: "CONNOR MCDAVID"}},
			HomeGoalie: &pbp.Participant{ID: 8475683, Name: "CHARLIE LINDGREN"},
		},
		{
			GameID: 2023020001, SortOrder: 1, Period: 1,
			TypeCode: pbp.CodePeriodStart, Kind: pbp.KindPeriodStart,
			TimeElapsed: "00:00", TimeRemaining: "20:00",
			Strength: "1551", HomeTeam: "WSH", AwayTeam: "EDM",
		},
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}

	header := records[0]
	if len(header) != len(pbp.Columns) {
		t.Fatalf("header width = %d, want %d", len(header), len(pbp.Columns))
	}
	for i, c := range pbp.Columns {
		if header[i] != c {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], c)
		}
	}

	// Table was sorted, so the period start comes first.
	first, goal := records[1], records[2]
	if first[colIndex(t, "Event")] != "PERIOD_START" {
		t.Errorf("first row event = %q", first[colIndex(t, "Event")])
	}

	if got := goal[colIndex(t, "p1_name")]; got != "CONNOR MCDAVID" {
		t.Errorf("p1_name = %q", got)
	}
	if got := goal[colIndex(t, "xC")]; got != "-42" {
		t.Errorf("xC = %q, want -42", got)
	}
	if got := goal[colIndex(t, "awayPlayer1_id")]; got != "8478402" {
		t.Errorf("awayPlayer1_id = %q", got)
	}
	if got := goal[colIndex(t, "Home_Goalie")]; got != "CHARLIE LINDGREN" {
		t.Errorf("Home_Goalie = %q", got)
	}

	// Absent optionals must be empty cells, not zeros.
	for _, col := range []string{"xC", "yC", "Home_Skaters", "p1_ID", "awayPlayer1", "Home_Goalie_Id"} {
		if got := first[colIndex(t, col)]; got != "" {
			t.Errorf("period start %s = %q, want empty", col, got)
		}
	}
	// Scores are always present, zero included.
	if got := first[colIndex(t, "Home_Score")]; got != "0" {
		t.Errorf("Home_Score = %q, want 0", got)
	}
}

func TestRowWidth(t *testing.T) {
	row := Row(&pbp.Event{})
	if len(row) != len(pbp.Columns) {
		t.Fatalf("row width = %d, want %d", len(row), len(pbp.Columns))
	}
}
