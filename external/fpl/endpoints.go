package fpl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
	"github.com/riskibarqy/fpl-live-league/internal/usecase"
)

const (
	identifierMinutes               = "minutes"
	identifierBonus                 = "bonus"
	identifierBPS                   = "bps"
	identifierDefensiveContribution = "defensive_contribution"

	// element_type 5 is the assistant manager chip slot.
	elementTypeManager = 5
)

func (c *Client) FetchBootstrap(ctx context.Context) (usecase.ExternalBootstrap, error) {
	var payload bootstrapPayload
	if err := c.doJSON(ctx, "/bootstrap-static/", nil, &payload); err != nil {
		return usecase.ExternalBootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	out := usecase.ExternalBootstrap{
		CurrentGameweek: currentGameweek(payload.Events),
		Players:         make([]player.Player, 0, len(payload.Elements)),
	}
	for _, item := range payload.Elements {
		position, err := player.PositionFromElementType(item.ElementType)
		if err != nil {
			c.logger.DebugContext(ctx, "skip bootstrap element", "element_id", item.ID, "error", err)
			continue
		}
		out.Players = append(out.Players, player.Player{
			ID:       item.ID,
			TeamID:   item.Team,
			WebName:  item.WebName,
			Position: position,
		})
	}
	return out, nil
}

// currentGameweek prefers the flagged current event, then the latest finished one.
func currentGameweek(events []eventItem) int {
	latestFinished := 0
	for _, e := range events {
		if e.IsCurrent {
			return e.ID
		}
		if e.Finished && e.ID > latestFinished {
			latestFinished = e.ID
		}
	}
	if latestFinished > 0 {
		return latestFinished
	}
	return 1
}

func (c *Client) FetchFixtures(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	items, err := c.fixtureItems(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, mapFixture(gameweek, item))
	}
	return out, nil
}

func (c *Client) fixtureItems(ctx context.Context, gameweek int) ([]fixtureItem, error) {
	if gameweek <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", usecase.ErrInvalidInput)
	}
	var items []fixtureItem
	query := url.Values{"event": []string{strconv.Itoa(gameweek)}}
	if err := c.doJSON(ctx, "/fixtures/", query, &items); err != nil {
		return nil, fmt.Errorf("fetch fixtures gameweek=%d: %w", gameweek, err)
	}
	return items, nil
}

func mapFixture(gameweek int, item fixtureItem) fixture.Fixture {
	var kickoff *time.Time
	if item.KickoffTime != nil {
		if parsed, err := time.Parse(time.RFC3339, *item.KickoffTime); err == nil {
			kickoff = &parsed
		}
	}
	started := item.Started != nil && *item.Started

	return fixture.Fixture{
		ID:          item.ID,
		Gameweek:    gameweek,
		HomeTeamID:  item.TeamH,
		AwayTeamID:  item.TeamA,
		KickoffAt:   kickoff,
		Status:      fixture.StatusFromFlags(kickoff, started, item.FinishedProvisional, item.Finished),
		BonusPosted: item.Finished,
	}
}

// FetchLiveStats returns one stat line per player per fixture. Per-fixture BPS of
// double gameweek players comes from the fixture feed.
func (c *Client) FetchLiveStats(ctx context.Context, gameweek int) ([]livestat.Stat, error) {
	if gameweek <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", usecase.ErrInvalidInput)
	}
	var payload livePayload
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%d/live/", gameweek), nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch live gameweek=%d: %w", gameweek, err)
	}

	var fixtureBPS map[int]map[int]int
	for _, element := range payload.Elements {
		if len(element.Explain) > 1 {
			items, err := c.fixtureItems(ctx, gameweek)
			if err != nil {
				return nil, err
			}
			fixtureBPS = bpsByFixture(items)
			break
		}
	}

	out := make([]livestat.Stat, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		for _, explain := range element.Explain {
			stat := mapExplain(element.ID, explain)
			if len(element.Explain) == 1 {
				stat.BPS = element.Stats.BPS
			} else {
				stat.BPS = fixtureBPS[explain.Fixture][element.ID]
			}
			out = append(out, stat)
		}
	}
	return out, nil
}

func mapExplain(playerID int, explain explainItem) livestat.Stat {
	stat := livestat.Stat{
		PlayerID:  playerID,
		FixtureID: explain.Fixture,
		Events:    make(map[livestat.Event]int, len(explain.Stats)),
	}
	for _, s := range explain.Stats {
		switch s.Identifier {
		case identifierMinutes:
			stat.Minutes = s.Value
		case identifierBonus:
			stat.OfficialBonus = s.Value
		case identifierBPS:
		case identifierDefensiveContribution:
			// The feed reports the raw action count; only a threshold hit scores.
			if s.Points > 0 {
				stat.Events[livestat.EventDefensiveContribution] = 1
			}
		default:
			stat.Events[livestat.Event(s.Identifier)] = s.Value
		}
	}
	return stat
}

func bpsByFixture(items []fixtureItem) map[int]map[int]int {
	out := make(map[int]map[int]int, len(items))
	for _, item := range items {
		for _, group := range item.Stats {
			if group.Identifier != identifierBPS {
				continue
			}
			values := make(map[int]int, len(group.Home)+len(group.Away))
			for _, v := range group.Home {
				values[v.Element] = v.Value
			}
			for _, v := range group.Away {
				values[v.Element] = v.Value
			}
			out[item.ID] = values
		}
	}
	return out
}

// FetchPicks returns the squad in FPL pick order. Positions are left empty when the
// feed omits element_type; callers fill them from the bootstrap directory.
func (c *Client) FetchPicks(ctx context.Context, managerID, gameweek int) (usecase.ExternalPicks, error) {
	if managerID <= 0 || gameweek <= 0 {
		return usecase.ExternalPicks{}, fmt.Errorf("%w: manager id and gameweek must be greater than zero", usecase.ErrInvalidInput)
	}
	var payload picksPayload
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek)
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return usecase.ExternalPicks{}, fmt.Errorf("fetch picks manager=%d gameweek=%d: %w", managerID, gameweek, err)
	}
	return mapPicks(managerID, gameweek, payload), nil
}

func mapPicks(managerID, gameweek int, payload picksPayload) usecase.ExternalPicks {
	picks := make([]pickItem, 0, len(payload.Picks))
	for _, p := range payload.Picks {
		if p.ElementType == elementTypeManager || p.Position > squad.StarterCount+squad.MaxBench {
			continue
		}
		picks = append(picks, p)
	}
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].Position < picks[j].Position })

	sel := squad.Selection{
		EntryID:      managerID,
		Gameweek:     gameweek,
		TransferCost: payload.EntryHistory.EventTransfersCost,
	}
	if payload.ActiveChip != nil {
		sel.Chip = squad.NormalizeChip(*payload.ActiveChip)
	}
	for i, p := range picks {
		position, _ := player.PositionFromElementType(p.ElementType)
		pick := squad.Pick{PlayerID: p.Element, Position: position}
		if i < squad.StarterCount {
			sel.Starters = append(sel.Starters, pick)
		} else {
			sel.Bench = append(sel.Bench, pick)
		}
		if p.IsCaptain {
			sel.CaptainID = p.Element
		}
		if p.IsViceCaptain {
			sel.ViceCaptainID = p.Element
		}
	}

	return usecase.ExternalPicks{
		Selection:   sel,
		OverallRank: payload.EntryHistory.OverallRank,
		EventPoints: payload.EntryHistory.Points,
		TotalPoints: payload.EntryHistory.TotalPoints,
	}
}

func (c *Client) FetchH2HMatches(ctx context.Context, fplLeagueID, gameweek int) ([]usecase.ExternalH2HMatch, error) {
	if fplLeagueID <= 0 || gameweek <= 0 {
		return nil, fmt.Errorf("%w: league id and gameweek must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/leagues-h2h-matches/league/%d/", fplLeagueID)
	out := make([]usecase.ExternalH2HMatch, 0, 64)
	for page := 1; page <= maxPages; page++ {
		var payload h2hMatchesPayload
		query := url.Values{
			"event": []string{strconv.Itoa(gameweek)},
			"page":  []string{strconv.Itoa(page)},
		}
		if err := c.doJSON(ctx, path, query, &payload); err != nil {
			return nil, fmt.Errorf("fetch h2h matches league=%d gameweek=%d page=%d: %w", fplLeagueID, gameweek, page, err)
		}
		for _, item := range payload.Results {
			if match, ok := mapMatch(gameweek, item); ok {
				out = append(out, match)
			}
		}
		if !payload.HasNext {
			break
		}
	}
	return out, nil
}

// mapMatch normalises byes so EntryA is always set.
func mapMatch(gameweek int, item h2hMatchItem) (usecase.ExternalH2HMatch, bool) {
	match := usecase.ExternalH2HMatch{
		Gameweek: gameweek,
		NameA:    item.Entry1PlayerName,
		PointsA:  item.Entry1Points,
		NameB:    item.Entry2PlayerName,
		PointsB:  item.Entry2Points,
	}
	if item.Entry1Entry != nil {
		match.EntryA = *item.Entry1Entry
	}
	if item.Entry2Entry != nil {
		match.EntryB = *item.Entry2Entry
	}
	if match.EntryA == 0 {
		match.EntryA, match.EntryB = match.EntryB, 0
		match.NameA, match.NameB = match.NameB, ""
		match.PointsA, match.PointsB = match.PointsB, 0
	}
	return match, match.EntryA != 0
}

func (c *Client) FetchH2HStandings(ctx context.Context, fplLeagueID int) ([]usecase.ExternalStanding, error) {
	return c.standings(ctx, fmt.Sprintf("/leagues-h2h/%d/standings/", fplLeagueID), fplLeagueID, func(item standingItem) usecase.ExternalStanding {
		row := mapStanding(item)
		row.TotalPoints = item.PointsFor
		return row
	})
}

func (c *Client) FetchClassicStandings(ctx context.Context, fplLeagueID int) ([]usecase.ExternalStanding, error) {
	return c.standings(ctx, fmt.Sprintf("/leagues-classic/%d/standings/", fplLeagueID), fplLeagueID, mapStanding)
}

func (c *Client) standings(ctx context.Context, path string, fplLeagueID int, mapRow func(standingItem) usecase.ExternalStanding) ([]usecase.ExternalStanding, error) {
	if fplLeagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}

	out := make([]usecase.ExternalStanding, 0, 64)
	for page := 1; page <= maxPages; page++ {
		var payload standingsPayload
		query := url.Values{"page_standings": []string{strconv.Itoa(page)}}
		if err := c.doJSON(ctx, path, query, &payload); err != nil {
			return nil, fmt.Errorf("fetch standings league=%d page=%d: %w", fplLeagueID, page, err)
		}
		for _, item := range payload.Standings.Results {
			out = append(out, mapRow(item))
		}
		if !payload.Standings.HasNext {
			break
		}
	}
	return out, nil
}

func mapStanding(item standingItem) usecase.ExternalStanding {
	return usecase.ExternalStanding{
		EntryID:      item.Entry,
		EntryName:    item.EntryName,
		PlayerName:   item.PlayerName,
		Rank:         item.Rank,
		LastRank:     item.LastRank,
		LeaguePoints: item.Total,
		TotalPoints:  item.Total,
		EventTotal:   item.EventTotal,
	}
}
