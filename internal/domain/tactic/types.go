// Package tactic maps derived match statistics to tactical recommendations
// through ordered, first-match-wins rule cascades. The cascade order is an
// explicit artifact: rules are held in a slice and evaluated top to bottom,
// and only the first satisfied rule fires.
package tactic

import (
	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/stats"
)

// Overlay is a named visualization directive handed to the rendering
// collaborator. The engine itself draws nothing.
type Overlay struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// TeamAdvice is the team-mode output for one (team, minute) request.
type TeamAdvice struct {
	Team       string         `json:"team"`
	Minute     int            `json:"minute"`
	Rule       string         `json:"rule"`
	Suggestion string         `json:"suggestion"`
	Stats      stats.Snapshot `json:"stats"`
	Overlay    Overlay        `json:"overlay"`
}

// PlayerAdvice is the player-mode output for one (player, tick) request.
type PlayerAdvice struct {
	Player       string      `json:"player"`
	Tick         int         `json:"tick"`
	Rule         string      `json:"rule"`
	Suggestion   string      `json:"suggestion"`
	OptimalPoint event.Point `json:"optimal_point"`
	CurrentPoint event.Point `json:"current_point"`
}

// Rule labels for the team cascade, in priority order.
const (
	RulePushFlank       = "push-flank"
	RuleDefendZone      = "defend-zone"
	RulePressHigh       = "press-high"
	RuleSubstitute      = "substitute"
	RuleCounterAttack   = "counter-attack"
	RuleSetPieceFocus   = "set-piece-focus"
	RuleMarkThreat      = "mark-threat"
	RuleSwitchFormation = "switch-formation"
	RuleExploitWings    = "exploit-wings"
	RuleHoldSteady      = "hold-steady"
)

// Overlay names the rendering collaborator understands.
const (
	OverlayShotDensity    = "shot-density"
	OverlayOppShotDensity = "opponent-shot-density"
	OverlayOppPressures   = "opponent-pressure-locations"
	OverlayPassTrend      = "pass-success-trend"
	OverlayCounterArrows  = "counter-channels"
	OverlaySetPieces      = "set-piece-locations"
	OverlayThreatShots    = "threat-shots"
	OverlayDuelComparison = "duel-comparison"
	OverlayWingArrows     = "wing-arrows"
)
