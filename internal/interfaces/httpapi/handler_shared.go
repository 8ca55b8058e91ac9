package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
	"github.com/riskibarqy/fpl-live-league/internal/usecase"
)

// LiveLeagues is the live standings side of the API.
type LiveLeagues interface {
	ListLeagues(ctx context.Context) ([]league.League, error)
	Standings(ctx context.Context, leagueID string) (usecase.LiveStandings, error)
	Lineup(ctx context.Context, leagueID string, entryID int) (usecase.EntryLineup, error)
	Refresh(ctx context.Context, leagueID string, gameweek int) (usecase.LeagueState, error)
}

type Differentials interface {
	ForPair(ctx context.Context, leagueID string, entryA, entryB int) (usecase.PairDifferentials, error)
	ForLeague(ctx context.Context, leagueID string) ([]usecase.PairDifferentials, error)
}

type GameweekStats interface {
	Gameweek(ctx context.Context, leagueID string) (usecase.GameweekStats, error)
}

type Snapshots interface {
	Seed(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error)
	Finalize(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error)
	Get(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error)
}

const maxBodyBytes = 1 << 20

type Handler struct {
	live          LiveLeagues
	differentials Differentials
	stats         GameweekStats
	snapshots     Snapshots
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	live LiveLeagues,
	differentials Differentials,
	stats GameweekStats,
	snapshots Snapshots,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		live:          live,
		differentials: differentials,
		stats:         stats,
		snapshots:     snapshots,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeJSON reads an optional JSON body. An empty body leaves target untouched.
func decodeJSON(r *http.Request, target any) error {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := strictJSON.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	return parsePositiveInt(name, r.PathValue(name))
}

// queryInt parses an optional positive integer query parameter; absent means zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	return parsePositiveInt(name, raw)
}

func parsePositiveInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func leagueIDFrom(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("leagueID"))
}
