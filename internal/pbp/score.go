package pbp

// ApplyRunningScore fills the running home/away score over events already
// ordered by sortOrder. Goal events adopt the score carried in their payload
// (the feed is authoritative there and absorbs scorekeeping corrections);
// every other event copies the previous event's score forward. A goal whose
// payload lacked score fields also copies forward rather than guessing an
// increment.
func ApplyRunningScore(events []*Event) {
	current := Score{}
	for _, ev := range events {
		if ev.Kind == KindGoal && ev.ScoreUpdate != nil {
			current = *ev.ScoreUpdate
		}
		ev.HomeScore = current.Home
		ev.AwayScore = current.Away
	}
}
