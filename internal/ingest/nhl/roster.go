package nhl

import (
	"strings"

	"github.com/fortuna/rinkside/internal/pbp"
)

// ResolveRoster builds the game's player identity mapping from the
// play-by-play roster spots and the boxscore position lists. Roster spots
// supply names and positions for everyone dressed; the boxscore fills
// position classes for any player the spot list missed and is the authority
// for the goalie set.
func ResolveRoster(pbpDoc *PlayByPlayDocument, box *BoxscoreDocument) *pbp.Roster {
	roster := &pbp.Roster{
		Names:     make(map[int64]string),
		Positions: make(map[int64]pbp.Position),
		Goalies:   make(map[int64]bool),
		Home:      pbp.TeamRef{ID: pbpDoc.HomeTeam.ID, Abbrev: strings.ToUpper(pbpDoc.HomeTeam.Abbrev)},
		Away:      pbp.TeamRef{ID: pbpDoc.AwayTeam.ID, Abbrev: strings.ToUpper(pbpDoc.AwayTeam.Abbrev)},
	}

	for _, spot := range pbpDoc.RosterSpots {
		name := displayName(spot.FirstName.Default, spot.LastName.Default)
		if name != "" {
			roster.Names[spot.PlayerID] = name
		}
		if pos := positionClass(spot.PositionCode); pos != "" {
			roster.Positions[spot.PlayerID] = pos
		}
	}

	if box != nil {
		for _, team := range []BoxscoreTeamPlayers{
			box.PlayerByGameStats.AwayTeam,
			box.PlayerByGameStats.HomeTeam,
		} {
			addBoxscoreSpots(roster, team.Forwards, pbp.PositionForward)
			addBoxscoreSpots(roster, team.Defense, pbp.PositionDefense)
			addBoxscoreSpots(roster, team.Goalies, pbp.PositionGoalie)
			for _, spot := range team.Goalies {
				roster.Goalies[spot.PlayerID] = true
			}
		}
	}

	return roster
}

func addBoxscoreSpots(roster *pbp.Roster, spots []BoxscoreSpot, pos pbp.Position) {
	for _, spot := range spots {
		roster.Positions[spot.PlayerID] = pos
		if _, ok := roster.Names[spot.PlayerID]; !ok && spot.Name.Default != "" {
			roster.Names[spot.PlayerID] = strings.ToUpper(spot.Name.Default)
		}
	}
}

// positionClass collapses API position codes to the model's three classes:
// centers and wingers are forwards.
func positionClass(code string) pbp.Position {
	switch strings.ToUpper(code) {
	case "C", "L", "R", "LW", "RW", "F":
		return pbp.PositionForward
	case "D":
		return pbp.PositionDefense
	case "G":
		return pbp.PositionGoalie
	default:
		return ""
	}
}

// displayName joins first and last name upper-cased, "FIRST LAST".
func displayName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return strings.ToUpper(last)
	case last == "":
		return strings.ToUpper(first)
	default:
		return strings.ToUpper(first + " " + last)
	}
}
