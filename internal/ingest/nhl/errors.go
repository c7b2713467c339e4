package nhl

import "errors"

var (
	// ErrGameUnavailable marks a game id with no published data (future,
	// cancelled, or invalid). Distinct from an empty-but-valid game.
	ErrGameUnavailable = errors.New("game unavailable")

	// ErrNoShiftData marks a game whose shift chart produced zero usable
	// intervals from every source. The play-by-play table is still valid,
	// just without on-ice columns.
	ErrNoShiftData = errors.New("no shift data")
)
