package nhl

// Typed views of the three NHL API documents consumed per game. Only the
// fields the pipeline reads are declared; unknown fields are ignored by the
// JSON decoder. Player-id and coordinate fields are pointers because "absent"
// and "zero" mean different things downstream.

// LocalizedString is the API's {"default": "..."} wrapper around names.
type LocalizedString struct {
	Default string `json:"default"`
}

// TeamSummary is the per-game team header in the play-by-play document.
type TeamSummary struct {
	ID     int    `json:"id"`
	Abbrev string `json:"abbrev"`
}

// RosterSpot is one player listed in the play-by-play document's roster.
type RosterSpot struct {
	TeamID       int             `json:"teamId"`
	PlayerID     int64           `json:"playerId"`
	FirstName    LocalizedString `json:"firstName"`
	LastName     LocalizedString `json:"lastName"`
	PositionCode string          `json:"positionCode"`
}

// PlayDetails is the type-specific payload of a play. Which fields are
// populated depends on the event type code.
type PlayDetails struct {
	EventOwnerTeamID int    `json:"eventOwnerTeamId"`
	XCoord           *int   `json:"xCoord"`
	YCoord           *int   `json:"yCoord"`
	ZoneCode         string `json:"zoneCode"`

	WinningPlayerID *int64 `json:"winningPlayerId"`
	LosingPlayerID  *int64 `json:"losingPlayerId"`

	HittingPlayerID *int64 `json:"hittingPlayerId"`
	HitteePlayerID  *int64 `json:"hitteePlayerId"`

	PlayerID *int64 `json:"playerId"`

	ScoringPlayerID  *int64 `json:"scoringPlayerId"`
	ShootingPlayerID *int64 `json:"shootingPlayerId"`
	Assist1PlayerID  *int64 `json:"assist1PlayerId"`
	Assist2PlayerID  *int64 `json:"assist2PlayerId"`
	BlockingPlayerID *int64 `json:"blockingPlayerId"`
	ShotType         string `json:"shotType"`
	HomeScore        *int   `json:"homeScore"`
	AwayScore        *int   `json:"awayScore"`

	CommittedByPlayerID *int64 `json:"committedByPlayerId"`
	DrawnByPlayerID     *int64 `json:"drawnByPlayerId"`
	// TypeCode here is the penalty severity ("MIN", "MAJ", ...), unrelated to
	// the play's numeric type code.
	TypeCode string `json:"typeCode"`
	DescKey  string `json:"descKey"`

	Reason string `json:"reason"`
}

// Play is one raw entry in the chronological play list.
type Play struct {
	TypeCode         int    `json:"typeCode"`
	TypeDescKey      string `json:"typeDescKey"`
	SortOrder        int    `json:"sortOrder"`
	PeriodDescriptor struct {
		Number int `json:"number"`
	} `json:"periodDescriptor"`
	TimeInPeriod  string       `json:"timeInPeriod"`
	TimeRemaining string       `json:"timeRemaining"`
	SituationCode string       `json:"situationCode"`
	Details       *PlayDetails `json:"details"`
}

// PlayByPlayDocument is the gamecenter play-by-play response.
type PlayByPlayDocument struct {
	ID          int64        `json:"id"`
	Season      int          `json:"season"`
	AwayTeam    TeamSummary  `json:"awayTeam"`
	HomeTeam    TeamSummary  `json:"homeTeam"`
	RosterSpots []RosterSpot `json:"rosterSpots"`
	Plays       []Play       `json:"plays"`
}

// BoxscoreSpot is one player in the boxscore's per-position lists.
type BoxscoreSpot struct {
	PlayerID int64           `json:"playerId"`
	Name     LocalizedString `json:"name"`
}

// BoxscoreTeamPlayers groups a team's skaters and goalies.
type BoxscoreTeamPlayers struct {
	Forwards []BoxscoreSpot `json:"forwards"`
	Defense  []BoxscoreSpot `json:"defense"`
	Goalies  []BoxscoreSpot `json:"goalies"`
}

// BoxscoreDocument is the gamecenter boxscore response, reduced to the
// position lists the roster resolver needs.
type BoxscoreDocument struct {
	ID                int64 `json:"id"`
	PlayerByGameStats struct {
		AwayTeam BoxscoreTeamPlayers `json:"awayTeam"`
		HomeTeam BoxscoreTeamPlayers `json:"homeTeam"`
	} `json:"playerByGameStats"`
}

// ShiftRecord is one row of the shift-chart document.
type ShiftRecord struct {
	PlayerID   int64   `json:"playerId"`
	TeamID     int     `json:"teamId"`
	TeamAbbrev string  `json:"teamAbbrev"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Period     int     `json:"period"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
}

// ShiftChartDocument is the stats API shift-chart response.
type ShiftChartDocument struct {
	Data []ShiftRecord `json:"data"`
}
