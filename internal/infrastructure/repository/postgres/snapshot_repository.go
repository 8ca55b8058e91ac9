package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	qb "github.com/riskibarqy/fpl-live-league/internal/platform/querybuilder"
)

type SnapshotRepository struct {
	db *sqlx.DB
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) GetGameweek(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	query, args, err := qb.Select(qb.Columns(standingRowModel{})...).
		From(tableStandingsSnapshots).
		Where(qb.Eq("league_id", leagueID), qb.Eq("gameweek", gameweek)).
		OrderBy("rank", "entry_id").
		ToSQL()
	if err != nil {
		return snapshot.Gameweek{}, false, fmt.Errorf("build get snapshot rows query: %w", err)
	}

	var rows []standingRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return snapshot.Gameweek{}, false, fmt.Errorf("get snapshot rows league=%s gameweek=%d: %w", leagueID, gameweek, err)
	}
	if len(rows) == 0 {
		return snapshot.Gameweek{}, false, nil
	}

	query, args, err = qb.Select(qb.Columns(fixtureResultModel{})...).
		From(tableFixtureResults).
		Where(qb.Eq("league_id", leagueID), qb.Eq("gameweek", gameweek)).
		OrderBy("entry_a", "entry_b").
		ToSQL()
	if err != nil {
		return snapshot.Gameweek{}, false, fmt.Errorf("build get fixture results query: %w", err)
	}

	var fixtures []fixtureResultModel
	if err := r.db.SelectContext(ctx, &fixtures, query, args...); err != nil {
		return snapshot.Gameweek{}, false, fmt.Errorf("get fixture results league=%s gameweek=%d: %w", leagueID, gameweek, err)
	}

	out := snapshot.Gameweek{
		LeagueID: leagueID,
		Gameweek: gameweek,
		Rows:     make([]snapshot.Row, 0, len(rows)),
		Fixtures: make([]snapshot.FixtureResult, 0, len(fixtures)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, standingRowFromModel(row))
	}
	for _, f := range fixtures {
		out.Fixtures = append(out.Fixtures, fixtureResultFromModel(f))
	}
	return out, true, nil
}

func (r *SnapshotRepository) LatestBefore(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	query, args, err := qb.Select("COALESCE(MAX(gameweek), 0)").
		From(tableStandingsSnapshots).
		Where(qb.Eq("league_id", leagueID), qb.Lt("gameweek", gameweek)).
		ToSQL()
	if err != nil {
		return snapshot.Gameweek{}, false, fmt.Errorf("build latest snapshot query: %w", err)
	}

	var latest int
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.Gameweek{}, false, nil
		}
		return snapshot.Gameweek{}, false, fmt.Errorf("get latest snapshot league=%s before=%d: %w", leagueID, gameweek, err)
	}
	if latest <= 0 {
		return snapshot.Gameweek{}, false, nil
	}

	return r.GetGameweek(ctx, leagueID, latest)
}

// SaveGameweek replaces the stored rows and fixture results of one league gameweek
// in a single transaction.
func (r *SnapshotRepository) SaveGameweek(ctx context.Context, gw snapshot.Gameweek) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save snapshot: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{tableStandingsSnapshots, tableFixtureResults} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("league_id", gw.LeagueID), qb.Eq("gameweek", gw.Gameweek)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s league=%s gameweek=%d: %w", table, gw.LeagueID, gw.Gameweek, err)
		}
	}

	if len(gw.Rows) > 0 {
		models := make([]standingRowModel, 0, len(gw.Rows))
		for _, row := range gw.Rows {
			models = append(models, standingRowToModel(row))
		}
		query, args, err := qb.InsertModels(tableStandingsSnapshots, models, "")
		if err != nil {
			return fmt.Errorf("build insert snapshot rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapWriteErr(fmt.Sprintf("insert snapshot rows league=%s gameweek=%d", gw.LeagueID, gw.Gameweek), err)
		}
	}

	if len(gw.Fixtures) > 0 {
		models := make([]fixtureResultModel, 0, len(gw.Fixtures))
		for _, f := range gw.Fixtures {
			models = append(models, fixtureResultToModel(f))
		}
		query, args, err := qb.InsertModels(tableFixtureResults, models, "")
		if err != nil {
			return fmt.Errorf("build insert fixture results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapWriteErr(fmt.Sprintf("insert fixture results league=%s gameweek=%d", gw.LeagueID, gw.Gameweek), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save snapshot tx: %w", err)
	}
	return nil
}
