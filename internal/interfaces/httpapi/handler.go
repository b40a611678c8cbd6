package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
	"github.com/gridpick/fantasy-gp/internal/usecase"
)

type Handler struct {
	draftService       *usecase.DraftService
	leaderboardService *usecase.LeaderboardService
	jobService         *usecase.JobService
	leagueRepo         league.Repository
	raceRepo           race.Repository
	teamRepo           fantasyteam.Repository
	driverRepo         driver.Repository
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	draftService *usecase.DraftService,
	leaderboardService *usecase.LeaderboardService,
	jobService *usecase.JobService,
	leagueRepo league.Repository,
	raceRepo race.Repository,
	teamRepo fantasyteam.Repository,
	driverRepo driver.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		draftService:       draftService,
		leaderboardService: leaderboardService,
		jobService:         jobService,
		leagueRepo:         leagueRepo,
		raceRepo:           raceRepo,
		teamRepo:           teamRepo,
		driverRepo:         driverRepo,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueRepo.List(ctx)
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

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teams, err := h.teamRepo.ListActiveByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	races, err := h.raceRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list races failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, rc := range races {
		items = append(items, raceToDTO(rc))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	drivers, err := h.driverRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list drivers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	raceID := strings.TrimSpace(r.URL.Query().Get("race"))
	useCache := !strings.EqualFold(r.URL.Query().Get("fresh"), "true")

	entries, err := h.leaderboardService.GetLeaderboard(ctx, leagueID, raceID, useCache)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "league_id", leagueID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}
