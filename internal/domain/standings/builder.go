package standings

import (
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

// Mode selects how league points accumulate.
type Mode string

const (
	ModeHeadToHead  Mode = "h2h"
	ModeElimination Mode = "elimination"
)

// RankDelta is previous rank minus new rank. New marks entries without a previous row.
type RankDelta struct {
	Value int
	New   bool
}

// PreviousRow is the settled standing of an entry after an earlier gameweek.
type PreviousRow struct {
	EntryID      int
	Rank         int
	LeaguePoints int
	TotalPoints  int
}

// Snapshot is an immutable copy of the previous standings.
type Snapshot struct {
	Gameweek int
	rows     map[int]PreviousRow
}

func NewSnapshot(gameweek int, rows []PreviousRow) Snapshot {
	byEntry := make(map[int]PreviousRow, len(rows))
	for _, row := range rows {
		byEntry[row.EntryID] = row
	}
	return Snapshot{Gameweek: gameweek, rows: byEntry}
}

func (s Snapshot) Row(entryID int) (PreviousRow, bool) {
	row, ok := s.rows[entryID]
	return row, ok
}

func (s Snapshot) Len() int {
	return len(s.rows)
}

// Input is the live gameweek outcome of one entry.
type Input struct {
	EntryID        int
	Name           string
	GameweekPoints int
	// MatchPoints are the H2H league points earned this gameweek.
	MatchPoints int
	OverallRank int
	Chips       []squad.Chip
	Result      string
	Captain     string
}

// Row is one line of the live standings table.
type Row struct {
	EntryID        int
	Name           string
	LeaguePoints   int
	GameweekPoints int
	TotalPoints    int
	OverallRank    int
	Rank           int
	RankDelta      RankDelta
	Chips          []squad.Chip
	Result         string
	Captain        string
	Eliminated     bool
}

// Build accumulates live points onto the previous snapshot and ranks the entries by
// league points, then total points, then entry id.
func Build(inputs []Input, previous Snapshot, mode Mode) []Row {
	rows := make([]Row, 0, len(inputs))
	for _, in := range inputs {
		prev, hadPrevious := previous.Row(in.EntryID)

		row := Row{
			EntryID:        in.EntryID,
			Name:           in.Name,
			GameweekPoints: in.GameweekPoints,
			TotalPoints:    prev.TotalPoints + in.GameweekPoints,
			LeaguePoints:   prev.LeaguePoints + in.MatchPoints,
			OverallRank:    in.OverallRank,
			Chips:          in.Chips,
			Result:         in.Result,
			Captain:        in.Captain,
		}
		if mode == ModeElimination {
			row.LeaguePoints = row.TotalPoints
		}
		if !hadPrevious {
			row.RankDelta = RankDelta{New: true}
		}
		rows = append(rows, row)
	}

	Sort(rows)

	for i := range rows {
		rows[i].Rank = i + 1
		if rows[i].RankDelta.New {
			continue
		}
		prev, _ := previous.Row(rows[i].EntryID)
		rows[i].RankDelta = RankDelta{Value: prev.Rank - rows[i].Rank}
	}
	return rows
}

// Sort orders rows by the standings tiebreak chain.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return Less(rows[i], rows[j])
	})
}

func Less(a, b Row) bool {
	if a.LeaguePoints != b.LeaguePoints {
		return a.LeaguePoints > b.LeaguePoints
	}
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	return a.EntryID < b.EntryID
}

// ApplyCutoff marks rows ranked below cutoff as eliminated, except rows level on
// league points with the row at the cutoff position. Rows must already be ordered.
func ApplyCutoff(rows []Row, cutoff int) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if cutoff <= 0 || cutoff >= len(out) {
		return out
	}

	boundary := out[cutoff-1].LeaguePoints
	for i := cutoff; i < len(out); i++ {
		out[i].Eliminated = out[i].LeaguePoints != boundary
	}
	return out
}

// ToSnapshot freezes rows as the previous standings of the next gameweek.
func ToSnapshot(gameweek int, rows []Row) Snapshot {
	prev := make([]PreviousRow, 0, len(rows))
	for _, row := range rows {
		prev = append(prev, PreviousRow{
			EntryID:      row.EntryID,
			Rank:         row.Rank,
			LeaguePoints: row.LeaguePoints,
			TotalPoints:  row.TotalPoints,
		})
	}
	return NewSnapshot(gameweek, prev)
}
