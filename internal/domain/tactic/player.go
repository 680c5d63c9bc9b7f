package tactic

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/squad"
	"github.com/pitchlab/gaffer/internal/domain/stats"
	"github.com/pitchlab/gaffer/internal/domain/threat"
)

// Default player-mode configuration constants.
const (
	defaultVarietyChance = 0.3 // chance the default branch phrases as link/support play
	defaultLeadThreshold = 0.5
	defaultPlayerSeed    = 42

	pitchMidY = event.PitchWidth / 2

	// Spatial condition thresholds (pitch frame units).
	behindOptimalX = 10.0
	offCenterY     = 15.0
	defOffZoneY    = 10.0
	midOffCenterY  = 20.0
	gkOffCenterY   = 5.0
)

// Historical-advice thresholds, first match wins.
const (
	adviceGoals   = 2
	adviceAssists = 1
	advicePasses  = 100
	adviceRating  = 7.5
)

// PlayerOption applies a configuration option to the PlayerEngine.
type PlayerOption func(*PlayerEngine)

// WithVarietyChance sets the probability of the variety phrasing on the
// default branch. The chosen branch and optimal coordinate never depend
// on it.
func WithVarietyChance(p float64) PlayerOption {
	return func(e *PlayerEngine) {
		if p >= 0 && p <= 1 {
			e.varietyChance = p
		}
	}
}

// WithLeadThreshold sets the xG differential above which the attacking
// message set is used.
func WithLeadThreshold(t float64) PlayerOption {
	return func(e *PlayerEngine) {
		if t > 0 {
			e.leadThreshold = t
		}
	}
}

// WithPlayerRand injects the random source for the variety branch so tests
// can force both phrasings.
func WithPlayerRand(rng *rand.Rand) PlayerOption {
	return func(e *PlayerEngine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// PlayerEngine produces per-player positioning advice against the zones of
// threat. The optimal coordinate is a pure function of role and zones; only
// the default branch's phrasing is stochastic.
type PlayerEngine struct {
	zones threat.Map
	teams [2]string

	mu  sync.Mutex
	rng *rand.Rand

	varietyChance float64
	leadThreshold float64
}

// NewPlayerEngine builds the player-mode advisor. teams[0] attacks toward
// the high-x goal.
func NewPlayerEngine(zones threat.Map, teams [2]string, opts ...PlayerOption) *PlayerEngine {
	e := &PlayerEngine{
		zones:         zones,
		teams:         teams,
		rng:           rand.New(rand.NewSource(defaultPlayerSeed)), //nolint:gosec // reproducible phrasing
		varietyChance: defaultVarietyChance,
		leadThreshold: defaultLeadThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OptimalPoint returns the role-specific target coordinate: forwards aim
// at their own zone of threat, defenders guard the opponent's, midfielders
// the midpoint, keepers a fixed point by their goal.
func (e *PlayerEngine) OptimalPoint(p squad.Player) event.Point {
	attacksHighX := p.Team == e.teams[0]
	opponent := e.teams[0]
	if attacksHighX {
		opponent = e.teams[1]
	}
	switch p.Role {
	case squad.RoleFWD:
		return e.zones[p.Team]
	case squad.RoleDEF:
		return e.zones[opponent]
	case squad.RoleMID:
		return e.zones.Midpoint(e.teams)
	default: // RoleGK
		return squad.GoalPoint(attacksHighX)
	}
}

// Advise evaluates the player's spatial cascade at the current position.
// own is the player's team snapshot driving the attacking/cautious split.
func (e *PlayerEngine) Advise(p squad.Player, pos event.Point, own stats.Snapshot, tick int) PlayerAdvice {
	opt := e.OptimalPoint(p)
	dir := 1.0
	if p.Team != e.teams[0] {
		dir = -1.0
	}
	c := spatialCtx{
		pos:  pos,
		opt:  opt,
		diff: own.XGDifferential,
		dir:  dir,
	}
	attacking := own.XGDifferential > e.leadThreshold

	branch := e.selectBranch(p.Role, c)
	var phrase string
	if branch.name == branchDefault && e.varietyRoll() {
		phrase = pick(varietyMessages[p.Role], attacking)(c)
	} else {
		phrase = pick(branch.messages, attacking)(c)
	}

	return PlayerAdvice{
		Player:       p.ID,
		Tick:         tick,
		Rule:         fmt.Sprintf("%s/%s", roleTag(p.Role), branch.name),
		Suggestion:   phrase + " " + historyAdvice(p.History),
		OptimalPoint: opt,
		CurrentPoint: pos,
	}
}

func (e *PlayerEngine) varietyRoll() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64() < e.varietyChance
}

// spatialCtx is what a spatial condition and its message see. dir is +1 for
// the team attacking toward high x, -1 otherwise.
type spatialCtx struct {
	pos  event.Point
	opt  event.Point
	diff float64
	dir  float64
}

// message renders one phrasing from the context.
type message func(c spatialCtx) string

// messagePair holds attacking and cautious phrasings for one branch.
type messagePair struct {
	attacking message
	cautious  message
}

func pick(m messagePair, attacking bool) message {
	if attacking {
		return m.attacking
	}
	return m.cautious
}

// spatialBranch pairs a condition with its phrasings.
type spatialBranch struct {
	name     string
	when     func(c spatialCtx) bool
	messages messagePair
}

const branchDefault = "default"

// selectBranch walks the role's condition list in fixed priority order;
// the first satisfied condition wins, otherwise the default branch.
func (e *PlayerEngine) selectBranch(role squad.Role, c spatialCtx) spatialBranch {
	for _, b := range spatialCascades[role] {
		if b.when(c) {
			return b
		}
	}
	return spatialBranch{name: branchDefault, messages: defaultMessages[role]}
}

func roleTag(r squad.Role) string {
	switch r {
	case squad.RoleGK:
		return "gk"
	case squad.RoleDEF:
		return "def"
	case squad.RoleMID:
		return "mid"
	default:
		return "fwd"
	}
}

// behind reports the attacking-direction distance from pos to the optimal x.
func behind(c spatialCtx) float64 {
	return (c.opt.X - c.pos.X) * c.dir
}

// ahead reports how far past the optimal x the player sits.
func ahead(c spatialCtx) float64 {
	return (c.pos.X - c.opt.X) * c.dir
}

// depth is the attacking-direction distance covered from the own goal line.
func depth(c spatialCtx) float64 {
	if c.dir > 0 {
		return c.pos.X
	}
	return event.PitchLength - c.pos.X
}

func optf(format string) message {
	return func(c spatialCtx) string {
		return fmt.Sprintf(format, c.opt.X, c.opt.Y, c.diff)
	}
}

func curf(format string) message {
	return func(c spatialCtx) string {
		return fmt.Sprintf(format, c.pos.X, c.pos.Y, c.diff)
	}
}

// spatialCascades lists each role's conditions in priority order. Message
// text follows the coaching voice of the product this engine powers.
var spatialCascades = map[squad.Role][]spatialBranch{
	squad.RoleFWD: {
		{
			name: "advance",
			when: func(c spatialCtx) bool { return behind(c) > behindOptimalX },
			messages: messagePair{
				attacking: optf("Surge forward to (%.1f, %.1f). Your team's lead (xG diff %.2f) opens gaps—exploit them with pace."),
				cautious:  optf("Advance cautiously to (%.1f, %.1f). Tight game (xG diff %.2f)—wait for openings."),
			},
		},
		{
			name: "cut-inside",
			when: func(c spatialCtx) bool { return math.Abs(c.pos.Y-pitchMidY) > offCenterY },
			messages: messagePair{
				attacking: optf("Cut inside to (%.1f, %.1f). Dominance (xG diff %.2f) lets you attack centrally—unleash a shot."),
				cautious:  optf("Drift to (%.1f, %.1f). Close match (xG diff %.2f)—exploit wide gaps."),
			},
		},
		{
			name: "hold",
			when: func(c spatialCtx) bool { return depth(c) > 85 },
			messages: messagePair{
				attacking: optf("Hold position near (%.1f, %.1f). With the xG lead (%.2f), draw defenders out for teammates."),
				cautious:  optf("Stay near (%.1f, %.1f). Even contest (xG diff %.2f)—hold for a counter."),
			},
		},
	},
	squad.RoleDEF: {
		{
			name: "recover",
			when: func(c spatialCtx) bool { return ahead(c) > behindOptimalX },
			messages: messagePair{
				attacking: optf("Push up to (%.1f, %.1f). Lead (xG diff %.2f)—press their forwards high."),
				cautious:  optf("Drop to (%.1f, %.1f). Tight (xG diff %.2f)—stay compact."),
			},
		},
		{
			name: "shift",
			when: func(c spatialCtx) bool { return math.Abs(c.pos.Y-c.opt.Y) > defOffZoneY },
			messages: messagePair{
				attacking: optf("Shift to (%.1f, %.1f). Advantage (xG diff %.2f)—cover wide threats."),
				cautious:  optf("Adjust to (%.1f, %.1f). Close (xG diff %.2f)—mark wingers."),
			},
		},
		{
			name: "hold-deep",
			when: func(c spatialCtx) bool { return depth(c) < 20 },
			messages: messagePair{
				attacking: curf("Hold at (%.1f, %.1f). Strong xG (%.2f)—block counters early."),
				cautious:  curf("Stay deep at (%.1f, %.1f). Even (xG diff %.2f)—protect the box."),
			},
		},
	},
	squad.RoleMID: {
		{
			name: "push",
			when: func(c spatialCtx) bool { return depth(c) < 40 },
			messages: messagePair{
				attacking: optf("Push to (%.1f, %.1f). Lead (xG diff %.2f)—drive play forward."),
				cautious:  optf("Advance to (%.1f, %.1f). Tight (xG diff %.2f)—link defense and attack."),
			},
		},
		{
			name: "shift",
			when: func(c spatialCtx) bool { return math.Abs(c.pos.Y-pitchMidY) > midOffCenterY },
			messages: messagePair{
				attacking: optf("Move to (%.1f, %.1f). Edge (xG diff %.2f)—exploit wide spaces."),
				cautious:  optf("Shift to (%.1f, %.1f). Close (xG diff %.2f)—cover the flanks."),
			},
		},
		{
			name: "support",
			when: func(c spatialCtx) bool { return depth(c) > 70 },
			messages: messagePair{
				attacking: optf("Support the attack at (%.1f, %.1f). Lead (xG diff %.2f)—feed the forwards."),
				cautious:  optf("Hold at (%.1f, %.1f). Even (xG diff %.2f)—support counters."),
			},
		},
	},
	squad.RoleGK: {
		{
			name: "recover-line",
			when: func(c spatialCtx) bool { return depth(c) > 10 },
			messages: messagePair{
				attacking: optf("Move to (%.1f, %.1f). Lead (xG diff %.2f)—play out confidently."),
				cautious:  optf("Drop to (%.1f, %.1f). Tight (xG diff %.2f)—stay alert."),
			},
		},
		{
			name: "adjust",
			when: func(c spatialCtx) bool { return math.Abs(c.pos.Y-pitchMidY) > gkOffCenterY },
			messages: messagePair{
				attacking: optf("Adjust to (%.1f, %.1f). Lead (xG diff %.2f)—cover the angles."),
				cautious:  optf("Shift to (%.1f, %.1f). Even (xG diff %.2f)—watch for crosses."),
			},
		},
	},
}

// defaultMessages phrase the default branch per role.
var defaultMessages = map[squad.Role]messagePair{
	squad.RoleFWD: {
		attacking: optf("Push to (%.1f, %.1f). Team's dominance (xG diff %.2f)—finish clinically in the box."),
		cautious:  optf("Move to (%.1f, %.1f). Balanced game (xG diff %.2f)—strike when ready."),
	},
	squad.RoleDEF: {
		attacking: optf("Anchor at (%.1f, %.1f). Edge (xG diff %.2f)—lock down the danger zone."),
		cautious:  optf("Guard (%.1f, %.1f). Close game (xG diff %.2f)—block shots."),
	},
	squad.RoleMID: {
		attacking: optf("Control (%.1f, %.1f). Dominance (xG diff %.2f)—stretch their midfield."),
		cautious:  optf("Pivot at (%.1f, %.1f). Close game (xG diff %.2f)—maintain balance."),
	},
	squad.RoleGK: {
		attacking: optf("Command (%.1f, %.1f). Dominance (xG diff %.2f)—distribute accurately."),
		cautious:  optf("Guard (%.1f, %.1f). Close game (xG diff %.2f)—make the saves."),
	},
}

// varietyMessages replace the default branch's phrasing with link/support
// play wording; they never change the branch or the optimal coordinate.
var varietyMessages = map[squad.Role]messagePair{
	squad.RoleFWD: {
		attacking: curf("Drop back slightly from (%.1f, %.1f) to link play. Your edge (xG diff %.2f) allows space creation."),
		cautious:  curf("Track back from (%.1f, %.1f) to support. Tight (xG diff %.2f)—help midfield."),
	},
	squad.RoleDEF: {
		attacking: curf("Step up from (%.1f, %.1f) to intercept. Lead (xG diff %.2f)—disrupt their rhythm."),
		cautious:  curf("Hold position at (%.1f, %.1f). Tight (xG diff %.2f)—watch for runners."),
	},
	squad.RoleMID: {
		attacking: curf("Drop to (%.1f, %.1f) to recycle. Advantage (xG diff %.2f)—keep possession."),
		cautious:  curf("Stay at (%.1f, %.1f) to shield. Tight (xG diff %.2f)—break their press."),
	},
	squad.RoleGK: {
		attacking: curf("Stay at (%.1f, %.1f) to organize. Advantage (xG diff %.2f)—direct the defense."),
		cautious:  curf("Hold at (%.1f, %.1f) to organize. Tight (xG diff %.2f)—keep the defense tight."),
	},
}

// historyAdvice appends player-specific guidance from pre-match stats;
// first threshold that matches wins.
func historyAdvice(h squad.History) string {
	switch {
	case h.Goals > adviceGoals:
		return "You're in top scoring form—unleash more shots and test their keeper."
	case h.Assists > adviceAssists:
		return "Your vision is key—seek out runners and deliver killer passes."
	case h.Passes > advicePasses:
		return "Master of possession—keep the ball moving and control the game's rhythm."
	case h.AvgRating > adviceRating:
		return "You're a standout—step up, inspire the team, and drive us forward."
	default:
		return "Stay composed and disciplined—focus on teamwork to turn the tide."
	}
}
