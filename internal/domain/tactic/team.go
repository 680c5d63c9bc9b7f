package tactic

import (
	"fmt"

	"github.com/pitchlab/gaffer/internal/domain/stats"
)

// Thresholds gate the team cascade's branches. Zero-valued fields are
// replaced by defaults in NewTeamEngine.
type Thresholds struct {
	XGDiffLead         float64 // lead/deficit magnitude on the differential
	PossessionPush     float64 // possession needed to push a flank
	PassSuccessHigh    float64 // own windowed pass success to press high
	PassSuccessLow     float64 // opponent windowed pass success to press high
	FatigueMinute      int     // earliest minute for the substitution branch
	FatiguePassSuccess float64 // own pass success marking fatigue
	LateGameMinute     int     // earliest minute for the defensive branch
	CounterPossession  float64 // opponent possession marking overcommitment
	CounterPressRatio  float64 // opponent/own pressure-count ratio
	SetPieceXG         float64 // cumulative set-piece xG worth focusing on
	DuelSuccessLow     float64 // duel success marking a losing midfield
	PossessionLow      float64 // possession marking a losing midfield
	CentralShotRatio   float64 // opponent central-shot ratio opening the wings
}

func defaultThresholds() Thresholds {
	return Thresholds{
		XGDiffLead:         0.5,
		PossessionPush:     55,
		PassSuccessHigh:    85,
		PassSuccessLow:     70,
		FatigueMinute:      60,
		FatiguePassSuccess: 75,
		LateGameMinute:     75,
		CounterPossession:  60,
		CounterPressRatio:  1.5,
		SetPieceXG:         0.5,
		DuelSuccessLow:     50,
		PossessionLow:      45,
		CentralShotRatio:   0.7,
	}
}

// TeamOption applies a configuration option to the TeamEngine.
type TeamOption func(*TeamEngine)

// WithThresholds overrides cascade thresholds. Zero fields keep defaults.
func WithThresholds(t Thresholds) TeamOption {
	return func(e *TeamEngine) {
		d := defaultThresholds()
		if t.XGDiffLead > 0 {
			d.XGDiffLead = t.XGDiffLead
		}
		if t.PossessionPush > 0 {
			d.PossessionPush = t.PossessionPush
		}
		if t.PassSuccessHigh > 0 {
			d.PassSuccessHigh = t.PassSuccessHigh
		}
		if t.PassSuccessLow > 0 {
			d.PassSuccessLow = t.PassSuccessLow
		}
		if t.FatigueMinute > 0 {
			d.FatigueMinute = t.FatigueMinute
		}
		if t.FatiguePassSuccess > 0 {
			d.FatiguePassSuccess = t.FatiguePassSuccess
		}
		if t.LateGameMinute > 0 {
			d.LateGameMinute = t.LateGameMinute
		}
		if t.CounterPossession > 0 {
			d.CounterPossession = t.CounterPossession
		}
		if t.CounterPressRatio > 0 {
			d.CounterPressRatio = t.CounterPressRatio
		}
		if t.SetPieceXG > 0 {
			d.SetPieceXG = t.SetPieceXG
		}
		if t.DuelSuccessLow > 0 {
			d.DuelSuccessLow = t.DuelSuccessLow
		}
		if t.PossessionLow > 0 {
			d.PossessionLow = t.PossessionLow
		}
		if t.CentralShotRatio > 0 {
			d.CentralShotRatio = t.CentralShotRatio
		}
		e.thresholds = d
	}
}

// teamInput bundles everything a rule may look at. Evaluation is a pure
// function of this input; no rule mutates upstream state.
type teamInput struct {
	minute int
	own    stats.Snapshot
	opp    stats.Snapshot
}

// teamRule pairs a predicate with a handler building the advice payload.
type teamRule struct {
	name  string
	when  func(in teamInput) bool
	build func(in teamInput) (suggestion string, overlay Overlay)
}

// TeamEngine evaluates the team-level cascade.
type TeamEngine struct {
	thresholds Thresholds
	rules      []teamRule
}

// NewTeamEngine builds the engine with its fixed-priority rule list.
func NewTeamEngine(opts ...TeamOption) *TeamEngine {
	e := &TeamEngine{thresholds: defaultThresholds()}
	for _, opt := range opts {
		opt(e)
	}
	e.rules = e.buildRules()
	return e
}

// Advise evaluates the cascade for (team, minute). Both snapshots must be
// for the same minute; own belongs to the requested team.
func (e *TeamEngine) Advise(own, opp stats.Snapshot, minute int) TeamAdvice {
	in := teamInput{minute: minute, own: own, opp: opp}
	// The last rule is the unconditional fallback, so a full pass without a
	// match still serves its suggestion.
	matched := e.rules[len(e.rules)-1]
	for _, r := range e.rules {
		if r.when(in) {
			matched = r
			break
		}
	}
	suggestion, overlay := matched.build(in)
	return TeamAdvice{
		Team:       own.Team,
		Minute:     minute,
		Rule:       matched.name,
		Suggestion: suggestion,
		Stats:      own,
		Overlay:    overlay,
	}
}

// buildRules constructs the ordered cascade. Order is priority: the first
// satisfied rule wins and lower rules are never re-evaluated.
func (e *TeamEngine) buildRules() []teamRule {
	t := e.thresholds
	return []teamRule{
		{
			name: RulePushFlank,
			when: func(in teamInput) bool {
				return in.own.XGDifferential > t.XGDiffLead && in.own.PossessionPct > t.PossessionPush
			},
			build: func(in teamInput) (string, Overlay) {
				flank := flankFromMeanY(in.own.MeanShotY)
				return fmt.Sprintf("Push the %s flank—xG diff %.2f, possession %.1f%%.",
						flank, in.own.XGDifferential, in.own.PossessionPct),
					Overlay{Name: OverlayShotDensity, Params: map[string]any{"team": in.own.Team, "flank": flank}}
			},
		},
		{
			name: RuleDefendZone,
			when: func(in teamInput) bool {
				return in.own.XGDifferential < -t.XGDiffLead && in.minute > t.LateGameMinute
			},
			build: func(in teamInput) (string, Overlay) {
				zone := flankFromMeanY(in.opp.MeanShotY)
				return fmt.Sprintf("Drop back to defend %s—xG diff %.2f, opp recent xG %.2f.",
						zone, in.own.XGDifferential, in.opp.RecentXG),
					Overlay{Name: OverlayOppShotDensity, Params: map[string]any{"team": in.opp.Team, "zone": zone}}
			},
		},
		{
			name: RulePressHigh,
			when: func(in teamInput) bool {
				return in.own.PassSuccessPct > t.PassSuccessHigh && in.opp.PassSuccessPct < t.PassSuccessLow
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Press high—pass success %.1f%% vs. %s's %.1f%%.",
						in.own.PassSuccessPct, in.opp.Team, in.opp.PassSuccessPct),
					Overlay{Name: OverlayOppPressures, Params: map[string]any{"team": in.opp.Team}}
			},
		},
		{
			name: RuleSubstitute,
			when: func(in teamInput) bool {
				return in.minute > t.FatigueMinute && in.own.PassSuccessPct < t.FatiguePassSuccess
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Sub a midfielder—pass success dropped to %.1f%% after %d mins.",
						in.own.PassSuccessPct, in.minute),
					Overlay{Name: OverlayPassTrend, Params: map[string]any{"team": in.own.Team}}
			},
		},
		{
			name: RuleCounterAttack,
			when: func(in teamInput) bool {
				return in.opp.PossessionPct > t.CounterPossession &&
					float64(in.opp.PressureCount) > t.CounterPressRatio*float64(in.own.PressureCount)
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Counter-attack now—opponent overcommitting with %d pressures.",
						in.opp.PressureCount),
					Overlay{Name: OverlayCounterArrows, Params: map[string]any{"team": in.opp.Team}}
			},
		},
		{
			name: RuleSetPieceFocus,
			when: func(in teamInput) bool {
				return in.own.SetPieceXG > t.SetPieceXG
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Focus on set pieces—xG from set plays at %.2f.", in.own.SetPieceXG),
					Overlay{Name: OverlaySetPieces, Params: map[string]any{"team": in.own.Team}}
			},
		},
		{
			name: RuleMarkThreat,
			when: func(in teamInput) bool {
				return in.opp.TopThreatPlayer != ""
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Mark %s—their top threat with %.2f xG.",
						in.opp.TopThreatPlayer, in.opp.TopThreatXG),
					Overlay{Name: OverlayThreatShots, Params: map[string]any{"player": in.opp.TopThreatPlayer}}
			},
		},
		{
			name: RuleSwitchFormation,
			when: func(in teamInput) bool {
				return in.own.DuelSuccessPct < t.DuelSuccessLow && in.own.PossessionPct < t.PossessionLow
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Switch to 4-4-2—duels lost (%.1f%%), possession low at %.1f%%.",
						in.own.DuelSuccessPct, in.own.PossessionPct),
					Overlay{Name: OverlayDuelComparison, Params: map[string]any{"team": in.own.Team}}
			},
		},
		{
			name: RuleExploitWings,
			when: func(in teamInput) bool {
				return in.opp.ShotCount > 0 && in.opp.CentralShotRatio > t.CentralShotRatio
			},
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Exploit the wings—opponent shots central (%.2f ratio).",
						in.opp.CentralShotRatio),
					Overlay{Name: OverlayWingArrows, Params: map[string]any{"team": in.own.Team}}
			},
		},
		{
			name: RuleHoldSteady,
			when: func(teamInput) bool { return true },
			build: func(in teamInput) (string, Overlay) {
				return fmt.Sprintf("Hold steady—xG diff %.2f, recent xG %.2f.",
						in.own.XGDifferential, in.own.RecentXG),
					Overlay{Name: OverlayShotDensity, Params: map[string]any{"team": in.own.Team}}
			},
		},
	}
}

// flankFromMeanY names the flank with the lower mean shot y in the feed
// frame; the low-y side is "left" from the attacking team's perspective.
func flankFromMeanY(meanY float64) string {
	if meanY < feedMidY {
		return "left"
	}
	return "right"
}

// Feed-frame midline on the y axis.
const feedMidY = 40.0
