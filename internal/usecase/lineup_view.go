package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
)

type LineupPlayer struct {
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	Points        int    `json:"points"`
	Bonus         int    `json:"bonus"`
	BonusOfficial bool   `json:"bonus_official"`
	Minutes       int    `json:"minutes"`
	Multiplier    int    `json:"multiplier"`
	SubbedIn      bool   `json:"subbed_in"`
	SubbedOut     bool   `json:"subbed_out"`
	Status        string `json:"status"`
}

type LineupSubstitution struct {
	OutPlayerID int    `json:"out_player_id"`
	OutName     string `json:"out_name"`
	InPlayerID  int    `json:"in_player_id"`
	InName      string `json:"in_name"`
	Pending     bool   `json:"pending"`
}

type ManagerLineup struct {
	ManagerID           int                  `json:"manager_id"`
	Name                string               `json:"name"`
	EntryName           string               `json:"entry_name"`
	Chip                string               `json:"chip,omitempty"`
	Points              int                  `json:"points"`
	GrossPoints         int                  `json:"gross_points"`
	TransferCost        int                  `json:"transfer_cost"`
	CaptainID           int                  `json:"captain_id"`
	Captain             string               `json:"captain"`
	CaptainMultiplier   int                  `json:"captain_multiplier"`
	ViceCaptainPromoted bool                 `json:"vice_captain_promoted"`
	Starters            []LineupPlayer       `json:"starters"`
	Bench               []LineupPlayer       `json:"bench"`
	Substitutions       []LineupSubstitution `json:"substitutions"`
}

// EntryLineup is the effective team of a standings entry after substitutions.
type EntryLineup struct {
	LeagueID string          `json:"league_id"`
	Gameweek int             `json:"gameweek"`
	EntryID  int             `json:"entry_id"`
	Name     string          `json:"name"`
	Points   int             `json:"points"`
	Captain  string          `json:"captain"`
	Managers []ManagerLineup `json:"managers"`
}

const (
	playerStatusPlayed     = "played"
	playerStatusPlaying    = "playing"
	playerStatusPending    = "pending"
	playerStatusDidNotPlay = "did_not_play"
)

// Lineup returns the live lineup of one entry of the league.
func (s *LiveLeagueService) Lineup(ctx context.Context, leagueID string, entryID int) (EntryLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveLeagueService.Lineup")
	defer span.End()

	if entryID <= 0 {
		return EntryLineup{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	state, err := s.State(ctx, leagueID)
	if err != nil {
		return EntryLineup{}, err
	}
	return state.Lineup(entryID)
}

// Lineup builds the lineup view of one entry from the computed state.
func (s LeagueState) Lineup(entryID int) (EntryLineup, error) {
	e, ok := s.EntryByID(entryID)
	if !ok {
		return EntryLineup{}, fmt.Errorf("%w: entry=%d league=%s", ErrNotFound, entryID, s.League.ID)
	}
	score, ok := s.Result.Scores[e.ID]
	if !ok {
		return EntryLineup{}, fmt.Errorf("%w: no score for entry=%d", ErrNotFound, entryID)
	}

	out := EntryLineup{
		LeagueID: s.League.ID,
		Gameweek: s.Gameweek,
		EntryID:  e.ID,
		Name:     e.Name,
		Points:   score.Points,
		Managers: make([]ManagerLineup, 0, len(score.Managers)),
	}
	captains := make([]string, 0, len(score.Managers))
	for _, ms := range score.Managers {
		view := s.managerLineup(ms)
		if view.CaptainID != 0 {
			captains = append(captains, view.Captain)
		}
		out.Managers = append(out.Managers, view)
	}
	out.Captain = entry.JoinNotation(captains)
	return out, nil
}

func (s LeagueState) managerLineup(ms entry.ManagerScore) ManagerLineup {
	manager := s.Managers[ms.ManagerID]
	lineup := ms.Lineup
	out := ManagerLineup{
		ManagerID:           ms.ManagerID,
		Name:                manager.Name,
		EntryName:           manager.EntryName,
		Chip:                string(lineup.Chip),
		Points:              ms.Result.Total,
		GrossPoints:         ms.Result.Gross,
		TransferCost:        ms.Result.TransferCost,
		CaptainID:           lineup.Captaincy.PlayerID,
		CaptainMultiplier:   lineup.Captaincy.Multiplier,
		ViceCaptainPromoted: lineup.Captaincy.ViceCaptainPromoted,
		Starters:            make([]LineupPlayer, 0, len(lineup.Starters)),
		Bench:               make([]LineupPlayer, 0, len(lineup.Bench)),
		Substitutions:       make([]LineupSubstitution, 0, len(lineup.Substitutions)),
	}
	if out.CaptainID != 0 {
		out.Captain = s.Players.Name(out.CaptainID)
	}
	for _, slot := range lineup.Starters {
		out.Starters = append(out.Starters, s.lineupPlayer(slot))
	}
	for _, slot := range lineup.Bench {
		out.Bench = append(out.Bench, s.lineupPlayer(slot))
	}
	for _, sub := range lineup.Substitutions {
		out.Substitutions = append(out.Substitutions, LineupSubstitution{
			OutPlayerID: sub.OutPlayerID,
			OutName:     s.Players.Name(sub.OutPlayerID),
			InPlayerID:  sub.InPlayerID,
			InName:      s.Players.Name(sub.InPlayerID),
			Pending:     sub.Pending,
		})
	}
	return out
}

func (s LeagueState) lineupPlayer(slot autosub.Slot) LineupPlayer {
	score := s.Result.Points[slot.PlayerID]
	return LineupPlayer{
		PlayerID:      slot.PlayerID,
		Name:          s.Players.Name(slot.PlayerID),
		Position:      string(slot.Position),
		Points:        score.Total,
		Bonus:         score.Bonus,
		BonusOfficial: score.BonusOfficial,
		Minutes:       score.Minutes,
		Multiplier:    slot.Multiplier,
		SubbedIn:      slot.SubbedIn,
		SubbedOut:     slot.SubbedOut,
		Status:        playerStatus(s.Result.Statuses.Of(slot.PlayerID)),
	}
}

func playerStatus(st autosub.Status) string {
	switch {
	case st.Played() && st.State == autosub.StateDone:
		return playerStatusPlayed
	case st.Played() || st.State == autosub.StateInProgress:
		return playerStatusPlaying
	case st.Inactive():
		return playerStatusDidNotPlay
	default:
		return playerStatusPending
	}
}
