package nhl

import (
	"testing"

	"github.com/fortuna/rinkside/internal/pbp"
)

func testRoster() *pbp.Roster {
	return &pbp.Roster{
		Names: map[int64]string{
			8471214: "ALEX OVECHKIN",
			8476880: "TOM WILSON",
			8478402: "CONNOR MCDAVID",
			8477934: "LEON DRAISAITL",
		},
		Goalies: map[int64]bool{8475683: true},
		Home:    pbp.TeamRef{ID: 15, Abbrev: "WSH"},
		Away:    pbp.TeamRef{ID: 22, Abbrev: "EDM"},
	}
}

func i64(v int64) *int64 { return &v }
func iptr(v int) *int    { return &v }

func TestNormalizePlayFaceoff(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodeFaceoff,
		SortOrder:     10,
		TimeInPeriod:  "00:00",
		TimeRemaining: "20:00",
		SituationCode: "1551",
		Details: &PlayDetails{
			EventOwnerTeamID: 15,
			WinningPlayerID:  i64(8471214),
			LosingPlayerID:   i64(8478402),
			XCoord:           iptr(0),
			YCoord:           iptr(0),
		},
	}
	play.PeriodDescriptor.Number = 1

	ev := normalizePlay(2023020001, play, testRoster())

	if ev.Kind != pbp.KindFaceoff {
		t.Fatalf("kind = %s, want FACEOFF", ev.Kind)
	}
	if ev.P1 == nil || ev.P1.ID != 8471214 {
		t.Errorf("p1 = %+v, want winner 8471214", ev.P1)
	}
	if ev.P2 == nil || ev.P2.ID != 8478402 {
		t.Errorf("p2 = %+v, want loser 8478402", ev.P2)
	}
	if ev.EvTeam != "WSH" {
		t.Errorf("evTeam = %q, want WSH", ev.EvTeam)
	}
	if ev.XCoord == nil || *ev.XCoord != 0 || ev.YCoord == nil || *ev.YCoord != 0 {
		t.Error("zero coordinates must survive as explicit zeros")
	}
	if ev.Elapsed == nil || *ev.Elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", ev.Elapsed)
	}
}

func TestNormalizePlayGoal(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodeGoal,
		SortOrder:     300,
		TimeInPeriod:  "12:34",
		TimeRemaining: "07:26",
		SituationCode: "1451",
		Details: &PlayDetails{
			EventOwnerTeamID: 22,
			ScoringPlayerID:  i64(8478402),
			Assist1PlayerID:  i64(8477934),
			ShotType:         "wrist",
			HomeScore:        iptr(1),
			AwayScore:        iptr(2),
		},
	}
	play.PeriodDescriptor.Number = 2

	ev := normalizePlay(2023020001, play, testRoster())

	if ev.P1.ID != 8478402 || ev.P2.ID != 8477934 || ev.P3 != nil {
		t.Errorf("participants = %v %v %v", ev.P1, ev.P2, ev.P3)
	}
	if ev.EvTeam != "EDM" {
		t.Errorf("evTeam = %q, want EDM", ev.EvTeam)
	}
	if ev.Detail != "WRIST" {
		t.Errorf("detail = %q, want WRIST", ev.Detail)
	}
	if ev.ScoreUpdate == nil || ev.ScoreUpdate.Home != 1 || ev.ScoreUpdate.Away != 2 {
		t.Errorf("scoreUpdate = %+v", ev.ScoreUpdate)
	}
	if ev.AwaySkaters == nil || *ev.AwaySkaters != 4 || ev.HomeSkaters == nil || *ev.HomeSkaters != 5 {
		t.Errorf("skaters = %v/%v, want away 4 home 5", ev.AwaySkaters, ev.HomeSkaters)
	}
}

func TestNormalizePlayBlockedShot(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodeBlockedShot,
		SortOrder:     50,
		TimeInPeriod:  "05:00",
		SituationCode: "1551",
		Details: &PlayDetails{
			EventOwnerTeamID: 22,
			ShootingPlayerID: i64(8478402),
			BlockingPlayerID: i64(8476880),
		},
	}
	play.PeriodDescriptor.Number = 1

	ev := normalizePlay(1, play, testRoster())

	if ev.P1.ID != 8478402 {
		t.Errorf("p1 = %v, want shooter", ev.P1)
	}
	if ev.P2.ID != 8476880 {
		t.Errorf("p2 = %v, want blocker", ev.P2)
	}
}

func TestNormalizePlayPenaltyDetail(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodePenalty,
		SortOrder:     60,
		TimeInPeriod:  "10:00",
		SituationCode: "1451",
		Details: &PlayDetails{
			EventOwnerTeamID:    15,
			CommittedByPlayerID: i64(8476880),
			DrawnByPlayerID:     i64(8478402),
			TypeCode:            "MIN",
			DescKey:             "tripping",
		},
	}
	play.PeriodDescriptor.Number = 3

	ev := normalizePlay(1, play, testRoster())

	if ev.Detail != "MIN for TRIPPING" {
		t.Errorf("detail = %q, want 'MIN for TRIPPING'", ev.Detail)
	}
	if ev.P1.ID != 8476880 || ev.P2.ID != 8478402 {
		t.Errorf("participants = %v %v", ev.P1, ev.P2)
	}
	if ev.EvTeam != "WSH" {
		t.Errorf("evTeam = %q, want WSH", ev.EvTeam)
	}
}

func TestNormalizePlayStoppageReason(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodeStoppage,
		SortOrder:     40,
		TimeInPeriod:  "08:15",
		SituationCode: "1551",
		Details:       &PlayDetails{Reason: "icing"},
	}
	play.PeriodDescriptor.Number = 1

	ev := normalizePlay(1, play, testRoster())

	if ev.Kind != pbp.KindStoppage {
		t.Fatalf("kind = %s, want STOPPAGE", ev.Kind)
	}
	if ev.Detail != "ICING" {
		t.Errorf("detail = %q, want ICING", ev.Detail)
	}
	if ev.P1 != nil || ev.EvTeam != "" {
		t.Errorf("stoppage must carry no participant or owning team, got %v %q", ev.P1, ev.EvTeam)
	}
}

func TestNormalizePlayDelayedPenaltyTeam(t *testing.T) {
	play := &Play{
		TypeCode:      pbp.CodeDelayedPenalty,
		SortOrder:     70,
		TimeInPeriod:  "14:02",
		SituationCode: "1541",
		Details:       &PlayDetails{EventOwnerTeamID: 22},
	}
	play.PeriodDescriptor.Number = 2

	ev := normalizePlay(1, play, testRoster())

	if ev.Kind != pbp.KindDelayedPenalty {
		t.Fatalf("kind = %s, want DELAYED_PENALTY", ev.Kind)
	}
	if ev.EvTeam != "EDM" {
		t.Errorf("evTeam = %q, want EDM", ev.EvTeam)
	}
	if ev.P1 != nil || ev.P2 != nil {
		t.Errorf("delayed penalty carries team only, got %v %v", ev.P1, ev.P2)
	}
}

func TestNormalizePlayDefaults(t *testing.T) {
	play := &Play{
		TypeCode:     pbp.CodePeriodStart,
		SortOrder:    1,
		TimeInPeriod: "00:00",
	}
	play.PeriodDescriptor.Number = 1

	ev := normalizePlay(1, play, testRoster())

	if ev.Strength != pbp.DefaultSituationCode {
		t.Errorf("strength = %q, want default %q", ev.Strength, pbp.DefaultSituationCode)
	}
	if ev.EvTeam != "" {
		t.Errorf("period start must not have an owning team, got %q", ev.EvTeam)
	}
	if ev.HomeTeam != "WSH" || ev.AwayTeam != "EDM" {
		t.Errorf("teams = %q/%q", ev.HomeTeam, ev.AwayTeam)
	}
}

func TestNormalizePlayUnknownCode(t *testing.T) {
	play := &Play{TypeCode: 999, SortOrder: 5, TimeInPeriod: "01:00"}
	play.PeriodDescriptor.Number = 1

	ev := normalizePlay(1, play, testRoster())

	if ev.Kind != pbp.KindUnknown {
		t.Errorf("kind = %s, want UNKNOWN", ev.Kind)
	}
	if ev.TypeCode != 999 {
		t.Errorf("typeCode = %d, must keep the raw code", ev.TypeCode)
	}
}

func TestNormalizePlayMalformedClock(t *testing.T) {
	play := &Play{TypeCode: pbp.CodeHit, SortOrder: 7, TimeInPeriod: "garbage"}
	play.PeriodDescriptor.Number = 2

	ev := normalizePlay(1, play, testRoster())

	if ev.Elapsed != nil {
		t.Errorf("elapsed = %v, want nil for malformed clock", ev.Elapsed)
	}
	if ev.TimeElapsed != "garbage" {
		t.Errorf("raw clock string must be preserved, got %q", ev.TimeElapsed)
	}
}

func TestDecodeSituation(t *testing.T) {
	tests := []struct {
		code string
		away int
		home int
		ok   bool
	}{
		{"1551", 5, 5, true},
		{"1451", 4, 5, true},
		{"0651", 6, 5, true},
		{"101", 0, 0, false},
		{"15x1", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		away, home := decodeSituation(tt.code)
		if tt.ok {
			if away == nil || home == nil || *away != tt.away || *home != tt.home {
				t.Errorf("decodeSituation(%q) = %v/%v, want %d/%d", tt.code, away, home, tt.away, tt.home)
			}
		} else if away != nil || home != nil {
			t.Errorf("decodeSituation(%q) must be nil/nil", tt.code)
		}
	}
}
