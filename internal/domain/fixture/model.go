package fixture

import "time"

// Status is the lifecycle of one real-world match as reported by FPL.
type Status string

const (
	StatusNotStarted          Status = "NOT_STARTED"
	StatusLive                Status = "LIVE"
	StatusFinishedProvisional Status = "FINISHED_PROVISIONAL"
	StatusFinished            Status = "FINISHED"
	StatusPostponed           Status = "POSTPONED"
)

// Fixture represents one scheduled Premier League match inside a gameweek.
type Fixture struct {
	ID         int
	Gameweek   int
	HomeTeamID int
	AwayTeamID int
	KickoffAt  *time.Time
	Status     Status
	// BonusPosted is set once FPL has written the official bonus into the live feed.
	BonusPosted bool
}

// StatusFromFlags derives a Status from the started/finished flags of the FPL feed.
// A fixture without a kickoff time has been postponed out of the gameweek.
func StatusFromFlags(kickoffAt *time.Time, started, finishedProvisional, finished bool) Status {
	switch {
	case kickoffAt == nil:
		return StatusPostponed
	case finished:
		return StatusFinished
	case finishedProvisional:
		return StatusFinishedProvisional
	case started:
		return StatusLive
	default:
		return StatusNotStarted
	}
}

func (s Status) Started() bool {
	switch s {
	case StatusLive, StatusFinishedProvisional, StatusFinished:
		return true
	default:
		return false
	}
}

// Done reports whether no more minutes can be played in this fixture this gameweek.
func (s Status) Done() bool {
	switch s {
	case StatusFinishedProvisional, StatusFinished, StatusPostponed:
		return true
	default:
		return false
	}
}

func (s Status) InProgress() bool {
	return s == StatusLive
}

func (f Fixture) Involves(teamID int) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// Set is the fixture list of one gameweek.
type Set []Fixture

// ByTeam returns the fixtures a team plays in this gameweek.
func (s Set) ByTeam(teamID int) []Fixture {
	out := make([]Fixture, 0, 2)
	for _, f := range s {
		if f.Involves(teamID) {
			out = append(out, f)
		}
	}
	return out
}

// TeamDone reports whether every fixture of the team is done. A team with
// no fixture (blank gameweek) is done.
func (s Set) TeamDone(teamID int) bool {
	for _, f := range s {
		if f.Involves(teamID) && !f.Status.Done() {
			return false
		}
	}
	return true
}

// TeamInProgress reports whether the team is on the pitch right now.
func (s Set) TeamInProgress(teamID int) bool {
	for _, f := range s {
		if f.Involves(teamID) && f.Status.InProgress() {
			return true
		}
	}
	return false
}

// Live reports whether any fixture has started and not yet provisionally finished.
func (s Set) Live() bool {
	for _, f := range s {
		if f.Status == StatusLive {
			return true
		}
	}
	return false
}

// Finished reports whether every fixture of the gameweek is done.
func (s Set) Finished() bool {
	for _, f := range s {
		if !f.Status.Done() {
			return false
		}
	}
	return len(s) > 0
}
