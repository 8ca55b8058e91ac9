package league

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
)

var ErrInvalidLeague = errors.New("invalid league configuration")

type Type string

const (
	TypeH2H         Type = "h2h"
	TypeTeamH2H     Type = "team_h2h"
	TypeElimination Type = "elimination"
)

// DefaultCutoff is the qualification line of elimination leagues.
const DefaultCutoff = 100

// Team groups three FPL managers into one standings entry.
type Team struct {
	ID         int
	Name       string
	ManagerIDs []int
}

// League is one tracked FPL league and how it is scored.
type League struct {
	ID          string
	Name        string
	Type        Type
	FPLLeagueID int
	Cutoff      int
	Teams       []Team
	Excluded    []int
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidLeague)
	}
	if l.FPLLeagueID <= 0 {
		return fmt.Errorf("%w: league %s fpl league id is required", ErrInvalidLeague, l.ID)
	}

	switch l.Type {
	case TypeH2H, TypeElimination:
	case TypeTeamH2H:
		if len(l.Teams) == 0 {
			return fmt.Errorf("%w: league %s has no teams", ErrInvalidLeague, l.ID)
		}
		seen := make(map[int]int)
		for _, team := range l.Teams {
			if len(team.ManagerIDs) != entry.TeamSize {
				return fmt.Errorf("%w: league %s team %d: %w", ErrInvalidLeague, l.ID, team.ID, entry.ErrTeamSize)
			}
			for _, managerID := range team.ManagerIDs {
				if other, dup := seen[managerID]; dup {
					return fmt.Errorf("%w: manager %d in teams %d and %d", ErrInvalidLeague, managerID, other, team.ID)
				}
				seen[managerID] = team.ID
			}
		}
	default:
		return fmt.Errorf("%w: league %s unknown type %q", ErrInvalidLeague, l.ID, l.Type)
	}

	return nil
}

func (l League) Mode() standings.Mode {
	if l.Type == TypeElimination {
		return standings.ModeElimination
	}
	return standings.ModeHeadToHead
}

func (l League) Rules() entry.LeagueRules {
	if l.Type == TypeTeamH2H {
		return entry.TeamRules()
	}
	return entry.IndividualRules()
}

// EffectiveCutoff returns the qualification line, zero outside elimination leagues.
func (l League) EffectiveCutoff() int {
	if l.Type != TypeElimination {
		return 0
	}
	if l.Cutoff > 0 {
		return l.Cutoff
	}
	return DefaultCutoff
}

func (l League) IsExcluded(entryID int) bool {
	for _, id := range l.Excluded {
		if id == entryID {
			return true
		}
	}
	return false
}

// Member is an FPL manager listed in the league's official standings.
type Member struct {
	EntryID     int
	EntryName   string
	PlayerName  string
	OverallRank int
}

// Entries builds the standings entries: configured teams for team leagues, otherwise
// every non-excluded member.
func (l League) Entries(members []Member) []entry.Entry {
	if l.Type == TypeTeamH2H {
		out := make([]entry.Entry, 0, len(l.Teams))
		for _, team := range l.Teams {
			out = append(out, entry.Entry{
				ID:         team.ID,
				Name:       team.Name,
				Kind:       entry.KindTeam,
				ManagerIDs: append([]int(nil), team.ManagerIDs...),
			})
		}
		return out
	}

	out := make([]entry.Entry, 0, len(members))
	for _, m := range members {
		if l.IsExcluded(m.EntryID) {
			continue
		}
		out = append(out, entry.Individual(m.EntryID, m.PlayerName))
	}
	return out
}

// ManagerIDs lists every FPL manager whose picks the league needs.
func (l League) ManagerIDs(entries []entry.Entry) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		for _, id := range e.ManagerIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// TeamOf returns the team id of a manager.
func (l League) TeamOf(managerID int) (int, bool) {
	for _, team := range l.Teams {
		for _, id := range team.ManagerIDs {
			if id == managerID {
				return team.ID, true
			}
		}
	}
	return 0, false
}

// Pairings converts the official manager pairings into standings pairings. Team leagues
// pair the teams of the two managers, once per team pair. Excluded entries and byes
// are dropped.
func (l League) Pairings(matches []h2h.Pairing) []h2h.Pairing {
	out := make([]h2h.Pairing, 0, len(matches))
	if l.Type != TypeTeamH2H {
		for _, m := range matches {
			if m.EntryA == 0 || m.EntryB == 0 || l.IsExcluded(m.EntryA) || l.IsExcluded(m.EntryB) {
				continue
			}
			out = append(out, m)
		}
		return out
	}

	type pair struct{ a, b int }
	seen := make(map[pair]struct{})
	for _, m := range matches {
		teamA, okA := l.TeamOf(m.EntryA)
		teamB, okB := l.TeamOf(m.EntryB)
		if !okA || !okB || teamA == teamB {
			continue
		}
		key := pair{a: min(teamA, teamB), b: max(teamA, teamB)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h2h.Pairing{EntryA: teamA, EntryB: teamB})
	}
	return out
}
