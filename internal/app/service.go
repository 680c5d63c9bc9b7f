// Package service provides the core tactical engine that implements the
// dependencies required by the HTTP API and the coach CLI.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pitchlab/gaffer/internal/adapters/feed"
	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/sim"
	"github.com/pitchlab/gaffer/internal/domain/squad"
	"github.com/pitchlab/gaffer/internal/domain/stats"
	"github.com/pitchlab/gaffer/internal/domain/tactic"
	"github.com/pitchlab/gaffer/internal/domain/threat"
	"github.com/pitchlab/gaffer/internal/domain/xg"
	"github.com/pitchlab/gaffer/internal/fixture"
	"github.com/pitchlab/gaffer/pkg/logger"
	"github.com/pitchlab/gaffer/pkg/metrics"
)

// Service wires the match store, shot model, stats aggregator, advisors
// and position simulator behind one facade. A service covers one match.
type Service struct {
	mu sync.RWMutex

	// Core components, built in Start.
	store        *event.InMemoryStore
	model        *xg.Classifier
	shots        []xg.ShotRecord
	aggregator   *stats.Aggregator
	zones        threat.Map
	teamEngine   *tactic.TeamEngine
	playerEngine *tactic.PlayerEngine
	simulator    *sim.Simulator

	// Match inputs. Either injected, loaded from the feed paths, or
	// generated as a fixture when both are absent.
	events  []event.Event
	players []squad.Player
	teams   [2]string
	roster  map[string]squad.Player

	// Configuration
	eventsPath       string
	rosterPath       string
	extendedFeatures bool
	epochs           int
	learningRate     float64
	testFraction     float64
	seed             int64
	smoothing        float64
	aggressiveChance float64
	varietyChance    float64
	thresholds       tactic.Thresholds

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeedPaths points the service at JSON event and roster exports.
func WithFeedPaths(events, roster string) Option {
	return func(s *Service) {
		s.eventsPath = events
		s.rosterPath = roster
	}
}

// WithMatch injects a preloaded match, bypassing file loading.
func WithMatch(events []event.Event, players []squad.Player, teams [2]string) Option {
	return func(s *Service) {
		s.events = events
		s.players = players
		s.teams = teams
	}
}

// WithExtendedFeatures selects the nine-feature shot model over the basic
// distance/angle variant.
func WithExtendedFeatures(on bool) Option {
	return func(s *Service) {
		s.extendedFeatures = on
	}
}

// WithModelTuning sets the shot model hyperparameters. Non-positive values
// keep defaults.
func WithModelTuning(epochs int, learningRate, testFraction float64) Option {
	return func(s *Service) {
		if epochs > 0 {
			s.epochs = epochs
		}
		if learningRate > 0 {
			s.learningRate = learningRate
		}
		if testFraction >= 0 && testFraction < 1 {
			s.testFraction = testFraction
		}
	}
}

// WithSeed sets the seed behind the simulator jitter, the variety phrasing
// and the train/test shuffle.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithMotion sets the simulator smoothing and aggressive-burst chance.
func WithMotion(smoothing, aggressiveChance float64) Option {
	return func(s *Service) {
		if smoothing > 0 && smoothing <= 1 {
			s.smoothing = smoothing
		}
		if aggressiveChance >= 0 && aggressiveChance <= 1 {
			s.aggressiveChance = aggressiveChance
		}
	}
}

// WithVarietyChance sets the player advisor's variety phrasing chance.
func WithVarietyChance(p float64) Option {
	return func(s *Service) {
		if p >= 0 && p <= 1 {
			s.varietyChance = p
		}
	}
}

// WithThresholds overrides the team cascade thresholds.
func WithThresholds(t tactic.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		extendedFeatures: true,
		epochs:           1000,
		learningRate:     0.1,
		testFraction:     0.2,
		seed:             42,
		smoothing:        0.3,
		aggressiveChance: 0.2,
		varietyChance:    0.3,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the match, fits the shot model and builds every downstream
// component. A model fit failure is fatal: no advice is served off an
// unfitted model.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting tactical engine...")

	if err := s.loadMatch(ctx); err != nil {
		return err
	}

	store, err := event.NewInMemoryStore(s.events, s.teams)
	if err != nil {
		return err
	}
	s.store = store
	metrics.RecordEventsIngested(store.Len())
	metrics.RecordDuplicateEvents(store.Duplicates())

	s.roster = make(map[string]squad.Player, len(s.players))
	for _, p := range s.players {
		s.roster[p.ID] = p
	}

	s.shots = xg.Extract(store.ByType(event.TypeShot), s.extendedFeatures)

	s.model = xg.NewClassifier(
		xg.WithEpochs(s.epochs),
		xg.WithLearningRate(s.learningRate),
		xg.WithTestFraction(s.testFraction),
		xg.WithSeed(s.seed),
	)
	fitStart := time.Now()
	if err := s.model.Fit(ctx, s.shots); err != nil {
		s.logger.Error(ctx, "shot model fit failed", logger.Error(err))
		return err
	}
	metrics.RecordModelFit(float64(time.Since(fitStart).Milliseconds()), s.model.Accuracy())

	if err := s.model.Score(s.shots); err != nil {
		return err
	}
	metrics.RecordShotsScored(len(s.shots))

	s.zones = threat.Compute(s.shots, s.teams)
	s.aggregator = stats.New(store, s.shots)

	s.teamEngine = tactic.NewTeamEngine(tactic.WithThresholds(s.thresholds))
	s.playerEngine = tactic.NewPlayerEngine(s.zones, s.teams,
		tactic.WithVarietyChance(s.varietyChance),
		tactic.WithPlayerRand(rand.New(rand.NewSource(s.seed))), //nolint:gosec // reproducible phrasing
	)

	s.simulator, err = sim.New(s.players, store,
		sim.WithSmoothing(s.smoothing),
		sim.WithAggressiveChance(s.aggressiveChance),
		sim.WithRand(rand.New(rand.NewSource(s.seed))), //nolint:gosec // reproducible motion
	)
	if err != nil {
		return err
	}
	metrics.UpdateTrackedPlayers(len(s.players))

	s.started = true
	s.logger.Info(ctx, "tactical engine started",
		logger.String("home", s.teams[0]),
		logger.String("away", s.teams[1]),
		logger.Int("events", store.Len()),
		logger.Int("shots", len(s.shots)),
		logger.Float64("modelAccuracy", s.model.Accuracy()),
	)

	return nil
}

// loadMatch resolves the match inputs: injected data wins, then the feed
// paths, then a generated fixture.
func (s *Service) loadMatch(ctx context.Context) error {
	if len(s.events) > 0 && len(s.players) > 0 {
		return nil
	}

	if s.eventsPath != "" && s.rosterPath != "" {
		events, err := feed.LoadEvents(s.eventsPath)
		if err != nil {
			return err
		}
		players, teams, err := feed.LoadRoster(s.rosterPath)
		if err != nil {
			return err
		}
		s.events, s.players, s.teams = events, players, teams
		s.logger.Info(ctx, "match loaded from feed",
			logger.String("events", s.eventsPath),
			logger.String("roster", s.rosterPath),
		)
		return nil
	}

	s.events, s.players, s.teams = fixture.Generate(s.seed)
	s.logger.Info(ctx, "no feed configured, running on a generated fixture")
	return nil
}

// Stop shuts the service down. All state is in memory, so this only flips
// the lifecycle flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "tactical engine stopped")
}

// Teams returns the match's team pair; index 0 attacks the high-x goal.
func (s *Service) Teams() [2]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams
}

// Snapshot returns one team's rolling stats as of the given minute.
func (s *Service) Snapshot(ctx context.Context, team string, minute int) (stats.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return stats.Snapshot{}, ErrNotStarted
	}
	snap, err := s.aggregator.Snapshot(team, minute)
	if err != nil {
		return stats.Snapshot{}, err
	}
	metrics.RecordSnapshotBuilt()
	metrics.UpdateSnapshotCacheSize(s.aggregator.CacheSize())
	return snap, nil
}

// TeamAdvice evaluates the team cascade for (team, minute).
func (s *Service) TeamAdvice(ctx context.Context, team string, minute int) (tactic.TeamAdvice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return tactic.TeamAdvice{}, ErrNotStarted
	}

	opponent, err := s.store.Opponent(team)
	if err != nil {
		return tactic.TeamAdvice{}, err
	}
	own, err := s.aggregator.Snapshot(team, minute)
	if err != nil {
		return tactic.TeamAdvice{}, err
	}
	opp, err := s.aggregator.Snapshot(opponent, minute)
	if err != nil {
		return tactic.TeamAdvice{}, err
	}
	metrics.UpdateSnapshotCacheSize(s.aggregator.CacheSize())

	advice := s.teamEngine.Advise(own, opp, minute)
	metrics.RecordRecommendation("team", advice.Rule)

	s.logger.Debug(ctx, "team advice",
		logger.String("team", team),
		logger.Int("minute", minute),
		logger.String("rule", advice.Rule),
	)
	return advice, nil
}

// PlayerAdvice evaluates the player cascade at the player's current
// simulated position and the minute of the most recent event.
func (s *Service) PlayerAdvice(ctx context.Context, playerID string) (tactic.PlayerAdvice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return tactic.PlayerAdvice{}, ErrNotStarted
	}

	state, err := s.simulator.Lookup(playerID)
	if err != nil {
		return tactic.PlayerAdvice{}, err
	}
	own, err := s.aggregator.Snapshot(state.Player.Team, s.simulator.CurrentMinute())
	if err != nil {
		return tactic.PlayerAdvice{}, err
	}

	advice := s.playerEngine.Advise(state.Player, state.Position, own, s.simulator.TickCount())
	metrics.RecordRecommendation("player", advice.Rule)

	s.logger.Debug(ctx, "player advice",
		logger.String("player", playerID),
		logger.String("rule", advice.Rule),
	)
	return advice, nil
}

// Tick advances the position simulator by n steps (minimum one).
func (s *Service) Tick(ctx context.Context, n int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return 0, ErrNotStarted
	}
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		s.simulator.Tick()
	}
	metrics.RecordSimulatorTicks(n)
	return s.simulator.TickCount(), nil
}

// Positions returns every tracked player's simulated state.
func (s *Service) Positions(ctx context.Context) ([]sim.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.simulator.States(), nil
}

// Zones returns each team's zone of threat in the pitch frame.
func (s *Service) Zones() threat.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zones
}

// GetStats returns engine statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		out["teams"] = s.teams
		out["events"] = s.store.Len()
		out["duplicates"] = s.store.Duplicates()
		out["shots"] = len(s.shots)
		out["modelAccuracy"] = s.model.Accuracy()
		out["snapshotCache"] = s.aggregator.CacheSize()
		out["ticks"] = s.simulator.TickCount()
		out["players"] = len(s.players)
	}
	return out
}
