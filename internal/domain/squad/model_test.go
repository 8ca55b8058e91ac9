package squad

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

func validSelection() Selection {
	return Selection{
		EntryID:  100,
		Gameweek: 12,
		Starters: []Pick{
			{PlayerID: 1, Position: player.PositionGoalkeeper},
			{PlayerID: 2, Position: player.PositionDefender},
			{PlayerID: 3, Position: player.PositionDefender},
			{PlayerID: 4, Position: player.PositionDefender},
			{PlayerID: 5, Position: player.PositionDefender},
			{PlayerID: 6, Position: player.PositionMidfielder},
			{PlayerID: 7, Position: player.PositionMidfielder},
			{PlayerID: 8, Position: player.PositionMidfielder},
			{PlayerID: 9, Position: player.PositionMidfielder},
			{PlayerID: 10, Position: player.PositionForward},
			{PlayerID: 11, Position: player.PositionForward},
		},
		Bench: []Pick{
			{PlayerID: 12, Position: player.PositionGoalkeeper},
			{PlayerID: 13, Position: player.PositionDefender},
			{PlayerID: 14, Position: player.PositionMidfielder},
			{PlayerID: 15, Position: player.PositionForward},
		},
		CaptainID:     9,
		ViceCaptainID: 10,
	}
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Selection)
		targetErr error
	}{
		{
			name:      "valid selection",
			mutate:    func(_ *Selection) {},
			targetErr: nil,
		},
		{
			name: "ten starters",
			mutate: func(s *Selection) {
				s.Starters = s.Starters[:10]
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "five bench players",
			mutate: func(s *Selection) {
				s.Bench = append(s.Bench, Pick{PlayerID: 16, Position: player.PositionForward})
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "two goalkeepers starting",
			mutate: func(s *Selection) {
				s.Starters[10].Position = player.PositionGoalkeeper
			},
			targetErr: ErrIllegalFormation,
		},
		{
			name: "two defenders",
			mutate: func(s *Selection) {
				s.Starters[1].Position = player.PositionMidfielder
				s.Starters[2].Position = player.PositionForward
			},
			targetErr: ErrIllegalFormation,
		},
		{
			name: "captain outside squad",
			mutate: func(s *Selection) {
				s.CaptainID = 99
			},
			targetErr: ErrCaptainNotInSquad,
		},
		{
			name: "vice captain outside squad",
			mutate: func(s *Selection) {
				s.ViceCaptainID = 99
			},
			targetErr: ErrViceCaptainNotInSquad,
		},
		{
			name: "duplicate player",
			mutate: func(s *Selection) {
				s.Bench[1].PlayerID = 2
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "unknown position",
			mutate: func(s *Selection) {
				s.Bench[0].Position = player.Position("COACH")
			},
			targetErr: ErrUnknownPosition,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := validSelection()
			tc.mutate(&sel)

			err := sel.Validate()
			if tc.targetErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestFormation_Legal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		formation Formation
		want      bool
	}{
		{Formation{1, 4, 4, 2}, true},
		{Formation{1, 3, 5, 2}, true},
		{Formation{1, 5, 2, 3}, true},
		{Formation{1, 5, 4, 1}, true},
		{Formation{1, 2, 5, 3}, false},
		{Formation{1, 4, 6, 0}, false},
		{Formation{0, 5, 5, 1}, false},
		{Formation{1, 4, 4, 1}, false},
		{Formation{1, 3, 3, 4}, false},
	}
	for _, tc := range cases {
		if got := tc.formation.Legal(); got != tc.want {
			t.Fatalf("formation %s legality: got=%t want=%t", tc.formation, got, tc.want)
		}
	}
}

func TestNormalizeChip(t *testing.T) {
	t.Parallel()

	if got := NormalizeChip("3xc"); got != ChipTripleCaptain {
		t.Fatalf("unexpected chip: %q", got)
	}
	if got := NormalizeChip("unknown"); got != ChipNone {
		t.Fatalf("unknown chip must normalize to none, got %q", got)
	}
}
