package nhl

import (
	"strings"

	"github.com/fortuna/rinkside/internal/pbp"
)

// NormalizeEvents converts the raw play list to normalized events. Order is
// the document's order; callers sort by SortOrder afterwards. The roster is
// only consulted for team abbreviations here; participant names are resolved
// later on the assembled table.
func NormalizeEvents(doc *PlayByPlayDocument, roster *pbp.Roster) []*pbp.Event {
	events := make([]*pbp.Event, 0, len(doc.Plays))
	for i := range doc.Plays {
		events = append(events, normalizePlay(doc.ID, &doc.Plays[i], roster))
	}
	return events
}

func normalizePlay(gameID int64, play *Play, roster *pbp.Roster) *pbp.Event {
	ev := &pbp.Event{
		GameID:        gameID,
		SortOrder:     play.SortOrder,
		Period:        play.PeriodDescriptor.Number,
		TypeCode:      play.TypeCode,
		Kind:          pbp.KindForCode(play.TypeCode),
		TimeElapsed:   play.TimeInPeriod,
		TimeRemaining: play.TimeRemaining,
		Strength:      play.SituationCode,
		HomeTeam:      roster.Home.Abbrev,
		AwayTeam:      roster.Away.Abbrev,
	}
	if ev.Strength == "" {
		ev.Strength = pbp.DefaultSituationCode
	}
	if elapsed, err := pbp.ParseClock(ev.TimeElapsed); err == nil {
		ev.Elapsed = &elapsed
	}
	ev.AwaySkaters, ev.HomeSkaters = decodeSituation(ev.Strength)

	d := play.Details
	if d == nil {
		return ev
	}

	if d.XCoord != nil {
		ev.XCoord = d.XCoord
		ev.YCoord = d.YCoord
	}

	switch play.TypeCode {
	case pbp.CodeFaceoff:
		if d.WinningPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.WinningPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.LosingPlayerID != nil {
			ev.P2 = &pbp.Participant{ID: *d.LosingPlayerID}
		}

	case pbp.CodeHit:
		if d.HittingPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.HittingPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.HitteePlayerID != nil {
			ev.P2 = &pbp.Participant{ID: *d.HitteePlayerID}
		}

	case pbp.CodeGiveaway, pbp.CodeTakeaway:
		if d.PlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.PlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}

	case pbp.CodeGoal, pbp.CodeShotOnGoal, pbp.CodeMissedShot, pbp.CodeBlockedShot:
		if d.ScoringPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.ScoringPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.ShootingPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.ShootingPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.Assist1PlayerID != nil {
			ev.P2 = &pbp.Participant{ID: *d.Assist1PlayerID}
		}
		if d.Assist2PlayerID != nil {
			ev.P3 = &pbp.Participant{ID: *d.Assist2PlayerID}
		}
		// On blocked shots the event belongs to the shooter's side in the
		// feed but the blocker is the second participant.
		if d.BlockingPlayerID != nil {
			ev.P2 = &pbp.Participant{ID: *d.BlockingPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.ShotType != "" {
			ev.Detail = strings.ToUpper(d.ShotType)
		}
		if d.HomeScore != nil && d.AwayScore != nil {
			ev.ScoreUpdate = &pbp.Score{Home: *d.HomeScore, Away: *d.AwayScore}
		}

	case pbp.CodePenalty:
		if d.CommittedByPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.CommittedByPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.DrawnByPlayerID != nil {
			ev.P2 = &pbp.Participant{ID: *d.DrawnByPlayerID}
		}
		if d.DescKey != "" {
			ev.Detail = d.TypeCode + " for " + strings.ToUpper(d.DescKey)
		}

	case pbp.CodeStoppage:
		if d.Reason != "" {
			ev.Detail = strings.ToUpper(d.Reason)
		}

	case pbp.CodeDelayedPenalty:
		if d.EventOwnerTeamID != 0 {
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}

	case pbp.CodeFailedShotAttempt:
		if d.ShootingPlayerID != nil {
			ev.P1 = &pbp.Participant{ID: *d.ShootingPlayerID}
			ev.EvTeam = roster.AbbrevFor(d.EventOwnerTeamID)
		}
		if d.ShotType != "" {
			ev.Detail = strings.ToUpper(d.ShotType)
		}
	}

	return ev
}

// decodeSituation splits a 4-digit situation code into away and home skater
// counts (digits 2 and 3; digits 1 and 4 flag the goalies). Malformed codes
// yield nil counts.
func decodeSituation(code string) (away, home *int) {
	if len(code) != 4 {
		return nil, nil
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return nil, nil
		}
	}
	a := int(code[1] - '0')
	h := int(code[2] - '0')
	return &a, &h
}
