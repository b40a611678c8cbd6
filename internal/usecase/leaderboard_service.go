package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/leaderboard"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
	basecache "github.com/gridpick/fantasy-gp/internal/platform/cache"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// Thresholds approximating finishing positions from pick points: a race win
// scores at least 25, a podium at least 10. Documented as a heuristic.
const (
	winPointsThreshold    = 25
	podiumPointsThreshold = 10
)

const defaultLeaderboardTTL = 5 * time.Minute

// LeaderboardService builds ranked standings for a league, season-wide or
// scoped to one race, with a short-TTL cache in front of the computation.
type LeaderboardService struct {
	leagueRepo   league.Repository
	teamRepo     fantasyteam.Repository
	teamPickRepo teampick.Repository
	cache        *basecache.Store
	ttl          time.Duration
	logger       *logging.Logger
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	teamRepo fantasyteam.Repository,
	teamPickRepo teampick.Repository,
	cache *basecache.Store,
	ttl time.Duration,
	logger *logging.Logger,
) *LeaderboardService {
	if ttl <= 0 {
		ttl = defaultLeaderboardTTL
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		teamPickRepo: teamPickRepo,
		cache:        cache,
		ttl:          ttl,
		logger:       logger,
	}
}

func leaderboardCacheKey(leagueID, raceID string) string {
	if raceID == "" {
		return "leaderboard:league:" + leagueID
	}
	return "leaderboard:league:" + leagueID + ":race:" + raceID
}

// GetLeaderboard returns ranked entries for the league. raceID narrows the
// board to one race; teams without picks for that race are excluded rather
// than scored as zero. useCache=false forces a recompute.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, leagueID, raceID string, useCache bool) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaderboard")
	defer span.End()

	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, found, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	key := leaderboardCacheKey(leagueID, raceID)
	if useCache && s.cache != nil {
		if v, ok := s.cache.Get(ctx, key); ok {
			if entries, ok := v.([]leaderboard.Entry); ok {
				return append([]leaderboard.Entry(nil), entries...), nil
			}
		}
	}

	entries, err := s.compute(ctx, leagueID, raceID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetWithTTL(ctx, key, append([]leaderboard.Entry(nil), entries...), s.ttl)
	}

	return entries, nil
}

// Invalidate drops cached boards for the league. An empty raceID clears every
// scope; otherwise both the race board and the season board are dropped,
// since a race points change moves the season totals too.
func (s *LeaderboardService) Invalidate(ctx context.Context, leagueID, raceID string) {
	if s.cache == nil || strings.TrimSpace(leagueID) == "" {
		return
	}

	if raceID == "" {
		s.cache.DeletePrefix(ctx, "leaderboard:league:"+leagueID)
		return
	}
	s.cache.Delete(ctx, leaderboardCacheKey(leagueID, raceID))
	s.cache.Delete(ctx, leaderboardCacheKey(leagueID, ""))
}

type teamScore struct {
	team    fantasyteam.Team
	points  int
	wins    int
	podiums int
	include bool
}

func (s *LeaderboardService) compute(ctx context.Context, leagueID, raceID string) ([]leaderboard.Entry, error) {
	teams, err := s.teamRepo.ListActiveByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list active teams: %w", err)
	}

	scores := make([]teamScore, len(teams))
	errs := make([]error, len(teams))

	var wg conc.WaitGroup
	var mu sync.Mutex
	for i, t := range teams {
		i, t := i, t
		wg.Go(func() {
			score, scoreErr := s.scoreTeam(ctx, t, raceID)
			mu.Lock()
			scores[i], errs[i] = score, scoreErr
			mu.Unlock()
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	ranked := make([]teamScore, 0, len(scores))
	for _, score := range scores {
		if score.include {
			ranked = append(ranked, score)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.points != b.points {
			return a.points > b.points
		}
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		if a.podiums != b.podiums {
			return a.podiums > b.podiums
		}
		return strings.ToLower(a.team.Name) < strings.ToLower(b.team.Name)
	})

	return rankEntries(ranked), nil
}

// rankEntries assigns standard competition ranks: a run of entries equal on
// (points, wins, podiums) shares the rank of its first member, and the entry
// after the run resumes at its index+1 (1,1,1,4 for a three-way tie at the
// top). Every member of a tie run is flagged, including the first.
func rankEntries(ranked []teamScore) []leaderboard.Entry {
	entries := make([]leaderboard.Entry, 0, len(ranked))
	for i, score := range ranked {
		entry := leaderboard.Entry{
			Rank:     i + 1,
			TeamID:   score.team.ID,
			TeamName: score.team.Name,
			Points:   score.points,
			Wins:     score.wins,
			Podiums:  score.podiums,
		}
		if i > 0 {
			prev := &entries[i-1]
			if entry.Points == prev.Points && entry.Wins == prev.Wins && entry.Podiums == prev.Podiums {
				entry.Rank = prev.Rank
				entry.Tied = true
				prev.Tied = true
			}
		}
		entries = append(entries, entry)
	}

	return entries
}

func (s *LeaderboardService) scoreTeam(ctx context.Context, t fantasyteam.Team, raceID string) (teamScore, error) {
	picks, err := s.teamPickRepo.ListByTeam(ctx, t.ID, raceID)
	if err != nil {
		return teamScore{}, fmt.Errorf("list team picks for %s: %w", t.ID, err)
	}

	score := teamScore{team: t, include: true}
	racePoints := 0
	for _, p := range picks {
		if !p.Active {
			continue
		}
		racePoints += p.Points
		if p.Points >= winPointsThreshold {
			score.wins++
		}
		if p.Points >= podiumPointsThreshold {
			score.podiums++
		}
	}

	if raceID == "" {
		// Season board: running totals are authoritative, picks only feed the
		// win/podium counters.
		score.points = t.TotalPoints
		return score, nil
	}

	if len(picks) == 0 {
		score.include = false
		return score, nil
	}
	score.points = racePoints

	return score, nil
}
