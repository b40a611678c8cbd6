package httpapi

import (
	"net/http"
)

func (h *Handler) RunDraftSweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDraftSweepJob")
	defer span.End()

	result, err := h.jobService.RunDraftDeadlineSweep(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "draft deadline sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSeasonRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeasonRecomputeJob")
	defer span.End()

	result, err := h.jobService.RunSeasonRecompute(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "season recompute failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
