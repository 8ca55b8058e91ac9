package usecase

import "context"

// LiveStore holds the most recent live standings of each league for readers that
// should not trigger a refresh.
type LiveStore interface {
	Publish(ctx context.Context, standings LiveStandings) error
	Latest(ctx context.Context, leagueID string) (LiveStandings, bool, error)
}
