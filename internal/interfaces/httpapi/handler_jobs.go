package httpapi

import (
	"net/http"
)

type internalRefreshRequest struct {
	Gameweek int `json:"gameweek" validate:"gte=0"`
}

type internalSnapshotRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	Gameweek int    `json:"gameweek" validate:"gte=0"`
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	leagueID := leagueIDFrom(r)
	var req internalRefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.live.Refresh(ctx, leagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "run refresh job failed", "league_id", leagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state.ToLiveStandings())
}

func (h *Handler) RunSeedSnapshotJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeedSnapshotJob")
	defer span.End()

	var req internalSnapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.snapshots.Seed(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "seed snapshot job failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(item))
}

func (h *Handler) RunFinalizeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFinalizeJob")
	defer span.End()

	var req internalSnapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.snapshots.Finalize(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize gameweek job failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(item))
}
