// Package stats derives per-(team,minute) statistics snapshots from the
// event store and the scored shot records. Every snapshot is recomputed
// from scratch; the cache only memoizes identical results, it can never
// change them.
package stats

import (
	"fmt"
	"sync"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/xg"
)

// Window width (minutes) for the trailing pass-success and recent-xG stats.
const trailingWindow = 5

// Defaults when a statistic's denominator is empty.
const (
	defaultPossessionPct = 50.0
	centralBandLow       = 20.0 // feed-frame y band counted as central
	centralBandHigh      = 60.0
)

// Snapshot is an immutable per-(team,minute) statistics record.
type Snapshot struct {
	Team   string `json:"team"`
	Minute int    `json:"minute"`

	OffensiveXG    float64 `json:"offensive_xg"`
	DefensiveXG    float64 `json:"defensive_xg"`
	XGDifferential float64 `json:"xg_differential"`

	PossessionPct  float64 `json:"possession_pct"`
	PassSuccessPct float64 `json:"pass_success_pct"`
	PressureCount  int     `json:"pressure_count"` // match-wide, not minute-scoped

	ShotCount    int     `json:"shot_count"`
	AvgXGPerShot float64 `json:"avg_xg_per_shot"`
	RecentXG     float64 `json:"recent_xg"` // trailing window

	MeanShotY        float64 `json:"mean_shot_y"` // feed frame, own shots
	CentralShotRatio float64 `json:"central_shot_ratio"`
	DuelSuccessPct   float64 `json:"duel_success_pct"`
	SetPieceXG       float64 `json:"set_piece_xg"`

	TopThreatPlayer string  `json:"top_threat_player,omitempty"`
	TopThreatXG     float64 `json:"top_threat_xg"`
}

type cacheKey struct {
	team   string
	minute int
}

// Aggregator computes snapshots on demand.
type Aggregator struct {
	store event.Store
	shots []xg.ShotRecord

	mu    sync.RWMutex
	cache map[cacheKey]Snapshot
}

// New creates an aggregator over a populated store and scored shot records.
func New(store event.Store, shots []xg.ShotRecord) *Aggregator {
	return &Aggregator{
		store: store,
		shots: shots,
		cache: make(map[cacheKey]Snapshot),
	}
}

// Snapshot returns the statistics for one team at one minute. Results are
// deterministic for a fixed store; repeated calls return identical values.
func (a *Aggregator) Snapshot(team string, minute int) (Snapshot, error) {
	if err := event.ValidateMinute(minute); err != nil {
		return Snapshot{}, err
	}
	opponent, err := a.store.Opponent(team)
	if err != nil {
		return Snapshot{}, err
	}

	k := cacheKey{team: team, minute: minute}
	a.mu.RLock()
	if s, ok := a.cache[k]; ok {
		a.mu.RUnlock()
		return s, nil
	}
	a.mu.RUnlock()

	s := a.compute(team, opponent, minute)
	a.mu.Lock()
	a.cache[k] = s
	a.mu.Unlock()
	return s, nil
}

// compute builds a snapshot from scratch.
func (a *Aggregator) compute(team, opponent string, minute int) Snapshot {
	s := Snapshot{Team: team, Minute: minute}

	windowStart := minute - trailingWindow // window is (windowStart, minute]

	for _, r := range a.shots {
		if r.Minute > minute {
			continue
		}
		switch r.Team {
		case team:
			s.OffensiveXG += r.XG
			s.ShotCount++
			s.MeanShotY += r.Location.Y
			if r.Location.Y >= centralBandLow && r.Location.Y <= centralBandHigh {
				s.CentralShotRatio++
			}
			if r.ShotType == event.ShotTypeFreeKick || r.ShotType == event.ShotTypeCorner {
				s.SetPieceXG += r.XG
			}
			if r.XG > s.TopThreatXG {
				s.TopThreatXG = r.XG
				s.TopThreatPlayer = r.Player
			}
			if r.Minute > windowStart {
				s.RecentXG += r.XG
			}
		case opponent:
			s.DefensiveXG += r.XG
		}
	}
	s.XGDifferential = s.OffensiveXG - s.DefensiveXG
	if s.ShotCount > 0 {
		s.AvgXGPerShot = s.OffensiveXG / float64(s.ShotCount)
		s.MeanShotY /= float64(s.ShotCount)
		s.CentralShotRatio /= float64(s.ShotCount)
	}

	s.PossessionPct = a.possession(team, minute)
	s.PassSuccessPct = a.passSuccess(team, minute)
	s.DuelSuccessPct = a.duelSuccess(team, minute)

	for _, e := range a.store.ByType(event.TypePressure) {
		if e.Team == team {
			s.PressureCount++
		}
	}

	return s
}

// possession is the share of possession-tagged events up to the minute
// attributed to the team; 50.0 before any possession-tagged event exists.
func (a *Aggregator) possession(team string, minute int) float64 {
	tagged, own := 0, 0
	for _, e := range a.store.UpTo(minute) {
		if e.PossessionTeam == "" {
			continue
		}
		tagged++
		if e.PossessionTeam == team {
			own++
		}
	}
	if tagged == 0 {
		return defaultPossessionPct
	}
	return float64(own) / float64(tagged) * 100
}

// passSuccess is the share of the team's passes in the trailing window with
// no recorded failure outcome; 0.0 when the window holds no passes for the
// team.
func (a *Aggregator) passSuccess(team string, minute int) float64 {
	total, completed := 0, 0
	for _, e := range a.store.ByTypeUpTo(event.TypePass, minute) {
		if e.Team != team || e.Minute <= minute-trailingWindow {
			continue
		}
		total++
		if e.Outcome == "" {
			completed++
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

// duelSuccess is the share of the team's duels up to the minute carrying a
// recorded outcome; 0.0 when the team contested no duels yet.
func (a *Aggregator) duelSuccess(team string, minute int) float64 {
	total, won := 0, 0
	for _, e := range a.store.ByTypeUpTo(event.TypeDuel, minute) {
		if e.Team != team {
			continue
		}
		total++
		if e.Outcome != "" {
			won++
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(won) / float64(total) * 100
}

// CacheSize reports how many snapshots are memoized.
func (a *Aggregator) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

// String implements fmt.Stringer for log lines.
func (s Snapshot) String() string {
	return fmt.Sprintf("%s@%d xGdiff=%.2f poss=%.1f%% pass=%.1f%%",
		s.Team, s.Minute, s.XGDifferential, s.PossessionPct, s.PassSuccessPct)
}
