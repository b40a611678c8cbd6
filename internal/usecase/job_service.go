package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
)

// JobQueue hands scheduled work to an external queue; delivery calls back
// into the internal job routes.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type JobConfig struct {
	// PickDeadline is how long a team may sit on the clock before the sweep
	// auto-picks for it.
	PickDeadline  time.Duration
	SweepInterval time.Duration
}

type DraftSweepResult struct {
	DraftsScanned int      `json:"drafts_scanned"`
	AutoPicks     int      `json:"auto_picks"`
	Completed     int      `json:"completed"`
	Failures      []string `json:"failures,omitempty"`
}

type RecomputeResult struct {
	Ran        bool   `json:"ran"`
	DurationMs int64  `json:"duration_ms"`
	Err        string `json:"error,omitempty"`
}

// JobService runs the clock-driven batch operations. Every run is safe to
// re-execute; a run that finds nothing to do is a success.
type JobService struct {
	leagueRepo league.Repository
	raceRepo   race.Repository
	draftRepo  draft.Repository
	drafts     *DraftService
	scoring    *ScoringService
	queue      JobQueue
	cfg        JobConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewJobService(
	leagueRepo league.Repository,
	raceRepo race.Repository,
	draftRepo draft.Repository,
	drafts *DraftService,
	scoring *ScoringService,
	queue JobQueue,
	cfg JobConfig,
	logger *logging.Logger,
) *JobService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PickDeadline <= 0 {
		cfg.PickDeadline = 2 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}

	return &JobService{
		leagueRepo: leagueRepo,
		raceRepo:   raceRepo,
		draftRepo:  draftRepo,
		drafts:     drafts,
		scoring:    scoring,
		queue:      queue,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// RunSeasonRecompute rebuilds all season standings from results.
func (s *JobService) RunSeasonRecompute(ctx context.Context) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.RunSeasonRecompute")
	defer span.End()

	started := s.now()
	err := s.scoring.RecomputeSeasonStandings(ctx)
	result := RecomputeResult{
		Ran:        err == nil,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		result.Err = err.Error()
		s.logger.ErrorContext(ctx, "season recompute failed", "error", err)
		return result, fmt.Errorf("season recompute: %w", err)
	}

	s.logger.InfoContext(ctx, "season recompute finished", "duration_ms", result.DurationMs)
	return result, nil
}

// RunDraftDeadlineSweep walks every open draft and auto-picks for teams that
// have overrun the pick deadline. Per-draft failures are logged and skipped;
// the sweep itself fails only when it cannot enumerate work.
func (s *JobService) RunDraftDeadlineSweep(ctx context.Context) (DraftSweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.RunDraftDeadlineSweep")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return DraftSweepResult{}, fmt.Errorf("list leagues: %w", err)
	}
	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return DraftSweepResult{}, fmt.Errorf("list races: %w", err)
	}

	result := DraftSweepResult{}
	now := s.now().UTC()

	for _, l := range leagues {
		for _, r := range races {
			if r.Status != race.StatusUpcoming {
				continue
			}
			swept, err := s.sweepDraft(ctx, l.ID, r.ID, now, &result)
			if err != nil {
				result.Failures = append(result.Failures, fmt.Sprintf("league=%s race=%s: %v", l.ID, r.ID, err))
				s.logger.WarnContext(ctx, "draft sweep failed for draft",
					"league_id", l.ID, "race_id", r.ID, "error", err)
				continue
			}
			if swept {
				result.DraftsScanned++
			}
		}
	}

	s.scheduleNextSweep(ctx)

	s.logger.InfoContext(ctx, "draft deadline sweep finished",
		"scanned", result.DraftsScanned, "auto_picks", result.AutoPicks, "failures", len(result.Failures))

	return result, nil
}

func (s *JobService) sweepDraft(ctx context.Context, leagueID, raceID string, now time.Time, result *DraftSweepResult) (bool, error) {
	order, found, err := s.draftRepo.GetOrder(ctx, leagueID, raceID)
	if err != nil {
		return false, fmt.Errorf("get draft order: %w", err)
	}
	if !found {
		return false, nil
	}

	picks, err := s.draftRepo.ListPicks(ctx, leagueID, raceID)
	if err != nil {
		return true, fmt.Errorf("list picks: %w", err)
	}

	if draft.StateFor(len(order.Sequence), len(picks)) == draft.StateComplete {
		result.Completed++
		return true, nil
	}

	lastAction := order.CreatedAt
	if len(picks) > 0 {
		lastAction = picks[len(picks)-1].PickedAt
	}
	if now.Sub(lastAction) < s.cfg.PickDeadline {
		return true, nil
	}

	_, picked, err := s.drafts.AutoPick(ctx, leagueID, raceID)
	if err != nil {
		return true, fmt.Errorf("auto pick: %w", err)
	}
	if picked {
		result.AutoPicks++
	}

	return true, nil
}

func (s *JobService) scheduleNextSweep(ctx context.Context) {
	dedupID := fmt.Sprintf("draft-sweep-%d", s.now().Add(s.cfg.SweepInterval).Unix())
	if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/draft-sweep", nil, s.cfg.SweepInterval, dedupID); err != nil {
		s.logger.WarnContext(ctx, "enqueue next draft sweep failed", "error", err)
	}
}
