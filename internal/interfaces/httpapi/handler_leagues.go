package httpapi

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.live.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLiveStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveStandings")
	defer span.End()

	leagueID := leagueIDFrom(r)
	standings, err := h.live.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) ListLiveFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveFixtures")
	defer span.End()

	leagueID := leagueIDFrom(r)
	standings, err := h.live.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list live fixtures failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	names := make(map[int]string, len(standings.Rows))
	for _, row := range standings.Rows {
		names[row.EntryID] = row.Name
	}
	items := make([]liveFixtureDTO, 0, len(standings.Fixtures))
	for _, f := range standings.Fixtures {
		items = append(items, liveFixtureDTO{
			EntryA:       f.EntryA,
			NameA:        names[f.EntryA],
			ScoreA:       f.ScoreA,
			EntryB:       f.EntryB,
			NameB:        names[f.EntryB],
			ScoreB:       f.ScoreB,
			Result:       f.Result,
			Differential: f.Differential,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, liveFixturesDTO{
		LeagueID: standings.LeagueID,
		Gameweek: standings.Gameweek,
		Live:     standings.Live,
		Fixtures: items,
	})
}

func (h *Handler) GetEntryLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntryLineup")
	defer span.End()

	leagueID := leagueIDFrom(r)
	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.live.Lineup(ctx, leagueID, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry lineup failed", "league_id", leagueID, "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

// GetDifferentials returns one pairing when entry_a is given, otherwise every H2H
// fixture of the gameweek.
func (h *Handler) GetDifferentials(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDifferentials")
	defer span.End()

	leagueID := leagueIDFrom(r)
	entryA, err := queryInt(r, "entry_a")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entryB, err := queryInt(r, "entry_b")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if entryA == 0 {
		items, err := h.differentials.ForLeague(ctx, leagueID)
		if err != nil {
			h.logger.WarnContext(ctx, "list differentials failed", "league_id", leagueID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, items)
		return
	}

	item, err := h.differentials.ForPair(ctx, leagueID, entryA, entryB)
	if err != nil {
		h.logger.WarnContext(ctx, "get differentials failed", "league_id", leagueID, "entry_a", entryA, "entry_b", entryB, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetGameweekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekStats")
	defer span.End()

	leagueID := leagueIDFrom(r)
	item, err := h.stats.Gameweek(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek stats failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	leagueID := leagueIDFrom(r)
	gameweek, err := pathInt(r, "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.snapshots.Get(ctx, leagueID, gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get snapshot failed", "league_id", leagueID, "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(item))
}
