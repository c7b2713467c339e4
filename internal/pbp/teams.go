package pbp

// teamCodes maps NHL franchise ids to their standard abbreviations. The
// play-by-play document carries the two participating teams' own ids and
// abbreviations, which take precedence per game; this table covers ids that
// show up in shift records or event payloads without accompanying metadata.
var teamCodes = map[int]string{
	1: "NJD", 2: "NYI", 3: "NYR", 4: "PHI", 5: "PIT", 6: "BOS", 7: "BUF",
	8: "MTL", 9: "OTT", 10: "TOR", 12: "CAR", 13: "FLA", 14: "TBL",
	15: "WSH", 16: "CHI", 17: "DET", 18: "NSH", 19: "STL", 20: "CGY",
	21: "COL", 22: "EDM", 23: "VAN", 24: "ANA", 25: "DAL", 26: "LAK",
	28: "SJS", 29: "CBJ", 30: "MIN", 52: "WPG", 53: "ARI", 54: "VGK",
	55: "SEA", 59: "UTA",
}

// TeamAbbrev returns the standard abbreviation for a team id, or "" when the
// id is unknown.
func TeamAbbrev(teamID int) string {
	return teamCodes[teamID]
}

// TeamRef identifies one of the two teams in a game.
type TeamRef struct {
	ID     int    `json:"id"`
	Abbrev string `json:"abbrev"`
}

// Position is the coarse position class used by the downstream model:
// forwards, defensemen, goalies.
type Position string

const (
	PositionForward Position = "F"
	PositionDefense Position = "D"
	PositionGoalie  Position = "G"
)

// Roster maps player identities for one game. Built once per game by the
// roster resolver and read-only afterwards.
type Roster struct {
	// Names maps player id to upper-cased "FIRST LAST".
	Names map[int64]string

	// Positions maps player id to coarse position class.
	Positions map[int64]Position

	// Goalies is the set of goalie ids for both teams.
	Goalies map[int64]bool

	Home TeamRef
	Away TeamRef
}

// NameFor returns the display name for a player id, or "" when the roster
// does not list the player. Callers must treat "" as absent, never emit a raw
// id in a name field.
func (r *Roster) NameFor(playerID int64) string {
	if r == nil {
		return ""
	}
	return r.Names[playerID]
}

// AbbrevFor resolves a team id against the game's two teams first, then the
// static table.
func (r *Roster) AbbrevFor(teamID int) string {
	if r != nil {
		if teamID == r.Home.ID {
			return r.Home.Abbrev
		}
		if teamID == r.Away.ID {
			return r.Away.Abbrev
		}
	}
	return TeamAbbrev(teamID)
}
