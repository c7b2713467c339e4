// Package pbp holds the normalized play-by-play domain model: events, shift
// intervals, running score, and the on-ice assignment engine. Everything in
// this package is pure computation over already-fetched documents; network
// and persistence live elsewhere.
package pbp

// Kind classifies an event by its NHL numeric type code.
type Kind string

const (
	KindFaceoff           Kind = "FACEOFF"
	KindHit               Kind = "HIT"
	KindGiveaway          Kind = "GIVEAWAY"
	KindGoal              Kind = "GOAL"
	KindShotOnGoal        Kind = "SHOT_ON_GOAL"
	KindMissedShot        Kind = "MISSED_SHOT"
	KindBlockedShot       Kind = "BLOCKED_SHOT"
	KindPenalty           Kind = "PENALTY"
	KindStoppage          Kind = "STOPPAGE"
	KindPeriodStart       Kind = "PERIOD_START"
	KindPeriodEnd         Kind = "PERIOD_END"
	KindShootoutComplete  Kind = "SHOOTOUT_COMPLETE"
	KindGameEnd           Kind = "GAME_END"
	KindTakeaway          Kind = "TAKEAWAY"
	KindDelayedPenalty    Kind = "DELAYED_PENALTY"
	KindFailedShotAttempt Kind = "FAILED_SHOT_ATTEMPT"
	KindUnknown           Kind = "UNKNOWN"
)

// Event type codes used by the NHL gamecenter feed.
const (
	CodeFaceoff           = 502
	CodeHit               = 503
	CodeGiveaway          = 504
	CodeGoal              = 505
	CodeShotOnGoal        = 506
	CodeMissedShot        = 507
	CodeBlockedShot       = 508
	CodePenalty           = 509
	CodeStoppage          = 516
	CodePeriodStart       = 520
	CodePeriodEnd         = 521
	CodeShootoutComplete  = 523
	CodeGameEnd           = 524
	CodeTakeaway          = 525
	CodeDelayedPenalty    = 535
	CodeFailedShotAttempt = 537
)

// typeCodes maps numeric event type codes to kinds.
var typeCodes = map[int]Kind{
	CodeFaceoff:           KindFaceoff,
	CodeHit:               KindHit,
	CodeGiveaway:          KindGiveaway,
	CodeGoal:              KindGoal,
	CodeShotOnGoal:        KindShotOnGoal,
	CodeMissedShot:        KindMissedShot,
	CodeBlockedShot:       KindBlockedShot,
	CodePenalty:           KindPenalty,
	CodeStoppage:          KindStoppage,
	CodePeriodStart:       KindPeriodStart,
	CodePeriodEnd:         KindPeriodEnd,
	CodeShootoutComplete:  KindShootoutComplete,
	CodeGameEnd:           KindGameEnd,
	CodeTakeaway:          KindTakeaway,
	CodeDelayedPenalty:    KindDelayedPenalty,
	CodeFailedShotAttempt: KindFailedShotAttempt,
}

// KindForCode returns the kind for a numeric type code. Codes outside the
// known enumeration classify as UNKNOWN; the numeric code itself is kept on
// the event either way.
func KindForCode(code int) Kind {
	if k, ok := typeCodes[code]; ok {
		return k
	}
	return KindUnknown
}

// DefaultSituationCode is assumed when the feed omits the situation code
// (goalie/skater counts per side, e.g. "1551" for 5v5 with both goalies).
const DefaultSituationCode = "1551"

// Participant is a player referenced by an event or an on-ice slot. Name may
// be empty until roster resolution runs.
type Participant struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Score is a home/away goal tally at a point in the game.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Event is one normalized play-by-play row. Optional fields are pointers so
// that an absent value is distinguishable from a legitimate zero.
type Event struct {
	GameID    int64 `json:"gameId"`
	SortOrder int   `json:"sortOrder"`
	Period    int   `json:"period"`
	TypeCode  int   `json:"typeCode"`
	Kind      Kind  `json:"event"`

	// Clock strings as published by the feed ("MM:SS" within the period).
	TimeElapsed   string `json:"timeElapsed"`
	TimeRemaining string `json:"timeRemaining"`

	// Elapsed is TimeElapsed parsed to seconds; nil when the clock value was
	// malformed, in which case the event is skipped by the on-ice join but
	// stays in the table.
	Elapsed *int `json:"-"`

	// Strength is the raw 4-digit situation code.
	Strength string `json:"strength"`

	// HomeSkaters/AwaySkaters are decoded from Strength; nil on malformed
	// codes.
	HomeSkaters *int `json:"homeSkaters,omitempty"`
	AwaySkaters *int `json:"awaySkaters,omitempty"`

	// Detail is the kind-dependent descriptor: shot type for shots, penalty
	// severity and infraction for penalties, reason for stoppages.
	Detail string `json:"detail,omitempty"`

	// EvTeam is the abbreviation of the event-owning team; empty for kinds
	// with no owning team (stoppages, period markers).
	EvTeam string `json:"evTeam,omitempty"`

	// Participant slots; semantics vary by kind (winner/loser, hitter/hittee,
	// scorer/assist1/assist2, ...).
	P1 *Participant `json:"p1,omitempty"`
	P2 *Participant `json:"p2,omitempty"`
	P3 *Participant `json:"p3,omitempty"`

	XCoord *int `json:"xC,omitempty"`
	YCoord *int `json:"yC,omitempty"`

	// ScoreUpdate carries the authoritative score from a GOAL payload; the
	// score tracker folds it into the running HomeScore/AwayScore.
	ScoreUpdate *Score `json:"-"`

	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`

	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`

	// On-ice assignment, filled by the assignment engine. Skater slices hold
	// at most MaxSkaterSlots entries per side; goalies get the dedicated slot.
	AwayOnIce  []Participant `json:"awayOnIce,omitempty"`
	HomeOnIce  []Participant `json:"homeOnIce,omitempty"`
	AwayGoalie *Participant  `json:"awayGoalie,omitempty"`
	HomeGoalie *Participant  `json:"homeGoalie,omitempty"`
}

// HasParticipant reports whether the player already occupies a skater or
// goalie slot for the given side of this event.
func (e *Event) HasParticipant(home bool, playerID int64) bool {
	slots := e.AwayOnIce
	goalie := e.AwayGoalie
	if home {
		slots = e.HomeOnIce
		goalie = e.HomeGoalie
	}
	for _, p := range slots {
		if p.ID == playerID {
			return true
		}
	}
	return goalie != nil && goalie.ID == playerID
}
