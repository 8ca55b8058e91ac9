package autosub

import (
	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

// FixtureState summarises where a player's gameweek fixtures stand.
type FixtureState int

const (
	StatePending FixtureState = iota
	StateInProgress
	StateDone
)

// Status is what the substitution rules need to know about one squad player.
type Status struct {
	Minutes int
	State   FixtureState
}

// Played reports at least one minute on the pitch.
func (s Status) Played() bool {
	return s.Minutes > 0
}

// Inactive is the confirmed did-not-play state: every fixture done, no minutes.
func (s Status) Inactive() bool {
	return s.Minutes == 0 && s.State == StateDone
}

// Statuses is keyed by player id. Players missing from the map count as pending,
// so absent live data never triggers a substitution.
type Statuses map[int]Status

func (s Statuses) Of(playerID int) Status {
	if st, ok := s[playerID]; ok {
		return st
	}
	return Status{State: StatePending}
}

// StatusesFor derives statuses from the gameweek fixtures and live minutes.
func StatusesFor(players player.Directory, fixtures fixture.Set, snapshot livestat.Snapshot, playerIDs []int) Statuses {
	out := make(Statuses, len(playerIDs))
	for _, id := range playerIDs {
		p, known := players[id]
		if !known {
			continue
		}
		state := StatePending
		switch {
		case fixtures.TeamDone(p.TeamID):
			state = StateDone
		case fixtures.TeamInProgress(p.TeamID):
			state = StateInProgress
		}
		out[id] = Status{
			Minutes: snapshot.Minutes(id),
			State:   state,
		}
	}
	return out
}
