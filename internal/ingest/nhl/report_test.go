package nhl

import "testing"

const reportFixture = `
<html><body>
<table>
<tr><td class="playerHeading" colspan="6">8 OVECHKIN, ALEX</td></tr>
<tr><td>Shift #</td><td>Per</td><td>Start of Shift</td><td>End of Shift</td><td>Duration</td><td>Event</td></tr>
<tr class="oddColor"><td>1</td><td>1</td><td>0:00 / 20:00</td><td>0:45 / 19:15</td><td>00:45</td><td>&nbsp;</td></tr>
<tr class="evenColor"><td>2</td><td>OT</td><td>1:02 / 3:58</td><td>1:40 / 3:20</td><td>00:38</td><td>&nbsp;</td></tr>
<tr class="oddColor"><td>3</td><td>2</td><td>junk</td><td>5:00 / 15:00</td><td>00:00</td><td>&nbsp;</td></tr>
<tr><td class="playerHeading" colspan="6">99 UNKNOWN, PLAYER</td></tr>
<tr class="oddColor"><td>1</td><td>1</td><td>2:00 / 18:00</td><td>2:30 / 17:30</td><td>00:30</td><td>&nbsp;</td></tr>
</table>
</body></html>`

func TestParseShiftReport(t *testing.T) {
	intervals, err := ParseShiftReport([]byte(reportFixture), "WSH", testRoster())
	if err != nil {
		t.Fatalf("ParseShiftReport: %v", err)
	}

	// Two usable rows for Ovechkin; the malformed row and the off-roster
	// player's block are dropped.
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(intervals), intervals)
	}

	first := intervals[0]
	if first.PlayerID != 8471214 || first.Name != "ALEX OVECHKIN" {
		t.Errorf("first = %+v, want Ovechkin matched to roster id", first)
	}
	if first.Period != 1 || first.Start != 0 || first.End != 45 {
		t.Errorf("first bounds = p%d %d..%d, want p1 0..45", first.Period, first.Start, first.End)
	}

	second := intervals[1]
	if second.Period != 4 {
		t.Errorf("overtime period = %d, want 4", second.Period)
	}
	if second.Start != 62 || second.End != 100 {
		t.Errorf("second bounds = %d..%d, want 62..100", second.Start, second.End)
	}
	if second.Team != "WSH" {
		t.Errorf("team = %q, want WSH", second.Team)
	}
}

func TestReportPlayerName(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"8 OVECHKIN, ALEX", "ALEX OVECHKIN"},
		{"OVECHKIN, ALEX", "ALEX OVECHKIN"},
		{"24 SMITH", "SMITH"},
	}
	for _, tt := range tests {
		if got := reportPlayerName(tt.raw); got != tt.want {
			t.Errorf("reportPlayerName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestReportSeasonAndFiles(t *testing.T) {
	if got := ReportSeason(2023020001); got != "20232024" {
		t.Errorf("ReportSeason = %q, want 20232024", got)
	}
	visitor, home := ReportFiles(2023020001)
	if visitor != "TV020001.HTM" || home != "TH020001.HTM" {
		t.Errorf("ReportFiles = %q, %q", visitor, home)
	}
}
