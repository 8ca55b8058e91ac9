package snapshot

import "context"

// Repository persists settled and live standings. SaveGameweek replaces everything
// stored for the league gameweek atomically.
type Repository interface {
	GetGameweek(ctx context.Context, leagueID string, gameweek int) (Gameweek, bool, error)
	// LatestBefore returns the most recent gameweek stored strictly before gameweek.
	LatestBefore(ctx context.Context, leagueID string, gameweek int) (Gameweek, bool, error)
	SaveGameweek(ctx context.Context, gw Gameweek) error
}
