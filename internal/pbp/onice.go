package pbp

// MaxSkaterSlots is the number of generic skater slots per team on one event.
const MaxSkaterSlots = 6

// Covers reports whether the interval has the player on the ice at elapsed
// time t for an event of the given kind. The boundary policy is deliberate:
// shift boundaries that coincide exactly with an event resolve against the
// player leaving the ice, except for faceoffs, which are attributed to the
// player coming on. A zero-length interval sitting exactly on t counts as on
// ice.
func (iv Interval) Covers(t int, kind Kind) bool {
	switch {
	case iv.Start < t && t < iv.End:
		return true
	case iv.Start == t && t < iv.End:
		return kind == KindFaceoff
	case iv.Start < t && t == iv.End:
		return kind != KindFaceoff
	case iv.Start == t && t == iv.End:
		return true
	default:
		return false
	}
}

// Assigner attaches on-ice skaters and goalies to events using a shift index
// and the game's goalie set.
type Assigner struct {
	index   *ShiftIndex
	goalies map[int64]bool
}

// NewAssigner builds an assigner. goalies may be nil when the boxscore had no
// goalie information; every player then competes for skater slots.
func NewAssigner(index *ShiftIndex, goalies map[int64]bool) *Assigner {
	return &Assigner{index: index, goalies: goalies}
}

// Assign fills the event's on-ice slots. Events without a parsed clock are
// left untouched; they were flagged as data-quality failures upstream and
// must not abort the game.
func (a *Assigner) Assign(ev *Event) {
	if ev.Elapsed == nil || a.index == nil {
		return
	}
	a.assignSide(ev, false, ev.AwayTeam)
	a.assignSide(ev, true, ev.HomeTeam)
}

func (a *Assigner) assignSide(ev *Event, home bool, team string) {
	if team == "" {
		return
	}
	t := *ev.Elapsed
	for _, iv := range a.index.Candidates(ev.Period, team, t) {
		if !iv.Covers(t, ev.Kind) {
			continue
		}
		a.place(ev, home, iv)
	}
}

// place puts the interval's player into the first free slot for the side.
// Duplicate overlapping intervals (common at period boundaries) are a no-op:
// a player already holding a slot is never re-added.
func (a *Assigner) place(ev *Event, home bool, iv Interval) {
	if ev.HasParticipant(home, iv.PlayerID) {
		return
	}
	p := Participant{ID: iv.PlayerID, Name: iv.Name}
	if a.goalies[iv.PlayerID] {
		if home {
			if ev.HomeGoalie == nil {
				ev.HomeGoalie = &p
			}
		} else {
			if ev.AwayGoalie == nil {
				ev.AwayGoalie = &p
			}
		}
		return
	}
	if home {
		if len(ev.HomeOnIce) < MaxSkaterSlots {
			ev.HomeOnIce = append(ev.HomeOnIce, p)
		}
	} else {
		if len(ev.AwayOnIce) < MaxSkaterSlots {
			ev.AwayOnIce = append(ev.AwayOnIce, p)
		}
	}
}
