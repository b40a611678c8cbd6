package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/gridpick/fantasy-gp/internal/usecase"
)

type createDraftOrderRequest struct {
	Method        string   `json:"method" validate:"omitempty,oneof=sequential snake random"`
	ExplicitOrder []string `json:"explicit_order" validate:"omitempty,min=1,dive,required"`
}

type regenerateDraftOrderRequest struct {
	ActorUserID   string   `json:"actor_user_id" validate:"required"`
	Method        string   `json:"method" validate:"omitempty,oneof=sequential snake random"`
	ExplicitOrder []string `json:"explicit_order" validate:"omitempty,min=1,dive,required"`
}

type submitDraftPickRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	DriverID     string `json:"driver_id" validate:"required"`
	ActingUserID string `json:"acting_user_id" validate:"omitempty"`
}

func (h *Handler) CreateDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraftOrder")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	var req createDraftOrderRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	order, err := h.draftService.CreateDraftOrder(ctx, usecase.CreateDraftOrderInput{
		LeagueID:      leagueID,
		RaceID:        raceID,
		Method:        req.Method,
		ExplicitOrder: req.ExplicitOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft order failed", "league_id", leagueID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftOrderToDTO(order))
}

func (h *Handler) RegenerateDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegenerateDraftOrder")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	var req regenerateDraftOrderRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	order, err := h.draftService.RegenerateDraftOrder(ctx, req.ActorUserID, usecase.CreateDraftOrderInput{
		LeagueID:      leagueID,
		RaceID:        raceID,
		Method:        req.Method,
		ExplicitOrder: req.ExplicitOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "regenerate draft order failed", "league_id", leagueID, "race_id", raceID, "actor", req.ActorUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftOrderToDTO(order))
}

func (h *Handler) GetNextPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextPick")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	info, err := h.draftService.NextPickInfo(ctx, leagueID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "next pick info failed", "league_id", leagueID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nextPickToDTO(info))
}

func (h *Handler) ListDraftPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDraftPicks")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	picks, err := h.draftService.ListPicks(ctx, leagueID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "list draft picks failed", "league_id", leagueID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftPickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, draftPickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDraftPick")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	var req submitDraftPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pick, err := h.draftService.SubmitPick(ctx, usecase.SubmitPickInput{
		LeagueID:     leagueID,
		RaceID:       raceID,
		TeamID:       req.TeamID,
		DriverID:     req.DriverID,
		ActingUserID: req.ActingUserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit draft pick failed",
			"league_id", leagueID, "race_id", raceID, "team_id", req.TeamID, "driver_id", req.DriverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftPickToDTO(pick))
}

func (h *Handler) AutoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutoPick")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))

	pick, picked, err := h.draftService.AutoPick(ctx, leagueID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "auto pick failed", "league_id", leagueID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !picked {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{"picked": false})
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftPickToDTO(pick))
}
