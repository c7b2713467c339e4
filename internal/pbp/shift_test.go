package pbp

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"05:30", 330, false},
		{"19:59", 1199, false},
		{"20:00", 1200, false},
		{" 12:34 ", 754, false},
		{"", 0, true},
		{"1234", 0, true},
		{"12:xx", 0, true},
		{"-1:30", 0, true},
		{"12:75", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(330); got != "05:30" {
		t.Errorf("FormatClock(330) = %q, want %q", got, "05:30")
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %q, want %q", got, "00:00")
	}
}

func TestShiftIndexCandidates(t *testing.T) {
	intervals := []Interval{
		{PlayerID: 1, Team: "WSH", Period: 1, Start: 0, End: 40},
		{PlayerID: 2, Team: "WSH", Period: 1, Start: 35, End: 80},
		{PlayerID: 3, Team: "WSH", Period: 1, Start: 100, End: 140},
		{PlayerID: 4, Team: "WSH", Period: 2, Start: 0, End: 40},
		{PlayerID: 5, Team: "PIT", Period: 1, Start: 0, End: 40},
	}
	idx := NewShiftIndex(intervals)

	if idx.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", idx.Len())
	}

	got := idx.Candidates(1, "WSH", 50)
	if len(got) != 2 {
		t.Fatalf("Candidates(1, WSH, 50) returned %d intervals, want 2", len(got))
	}
	for _, iv := range got {
		if iv.Start > 50 {
			t.Errorf("candidate starts at %d, after query time 50", iv.Start)
		}
		if iv.Team != "WSH" || iv.Period != 1 {
			t.Errorf("candidate from wrong bucket: %+v", iv)
		}
	}

	if got := idx.Candidates(3, "WSH", 50); len(got) != 0 {
		t.Errorf("Candidates for empty bucket returned %d intervals", len(got))
	}
}
