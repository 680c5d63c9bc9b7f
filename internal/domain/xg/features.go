// Package xg estimates the probability that a shot results in a goal
// (expected goals) with a logistic classifier fit on the match's own shots.
//
// The extended feature set mean-imputes a missing goalkeeper distance from
// the in-match mean, which couples a single shot's feature vector to the
// whole dataset. That matches the behavior this engine was ported from and
// is kept deliberately; see DESIGN.md.
package xg

import (
	"github.com/pitchlab/gaffer/internal/domain/event"
)

// Feature vector layout. The basic variant uses the first two entries.
const (
	featDistance = iota
	featAngle
	featHeader
	featOpenPlay
	featUnderPressure
	featKeeperDistance
	featDefenderDensity
	featVolley
	featBigChance

	numExtendedFeatures = 9
	numBasicFeatures    = 2
)

// Defenders within this feed-frame radius of the shot count toward density.
const defenderRadius = 5.0

// ShotRecord is the per-shot view the model and downstream aggregation
// work from. XG is written once by Classifier.Score and never mutated.
type ShotRecord struct {
	EventID  string
	Team     string
	Player   string
	Minute   int
	Location event.Point // feed frame
	ShotType string
	Features []float64
	Goal     bool
	XG       float64
}

// Extract builds shot records from shot events. With extended set, all nine
// engineered features are computed; missing flags default to 0 and a missing
// goalkeeper distance defaults to the mean over shots that have one.
func Extract(shots []event.Event, extended bool) []ShotRecord {
	records := make([]ShotRecord, 0, len(shots))
	for _, e := range shots {
		if e.Type != event.TypeShot || e.Location == nil {
			continue
		}
		dist, angle := event.ShotGeometry(*e.Location)

		r := ShotRecord{
			EventID:  e.ID,
			Team:     e.Team,
			Player:   e.Player,
			Minute:   e.Minute,
			Location: *e.Location,
			ShotType: e.ShotType,
			Goal:     e.IsGoal(),
		}
		if !extended {
			r.Features = []float64{dist, angle}
			records = append(records, r)
			continue
		}

		f := make([]float64, numExtendedFeatures)
		f[featDistance] = dist
		f[featAngle] = angle
		f[featHeader] = flag(e.BodyPart == "Head")
		f[featOpenPlay] = flag(e.ShotType == event.ShotTypeOpenPlay)
		f[featUnderPressure] = flag(e.UnderPressure)
		f[featKeeperDistance] = keeperDistance(e) // -1 marks missing
		f[featDefenderDensity] = defenderDensity(e)
		f[featVolley] = flag(e.Technique == "Volley")
		f[featBigChance] = flag(e.KeyPass)
		r.Features = f
		records = append(records, r)
	}

	if extended {
		imputeKeeperDistance(records)
	}
	return records
}

// keeperDistance returns the distance from the shot to the opposing keeper
// in the freeze frame, or -1 when no keeper was captured.
func keeperDistance(e event.Event) float64 {
	for _, p := range e.FreezeFrame {
		if p.Keeper && !p.Teammate {
			return e.Location.DistanceTo(p.Location)
		}
	}
	return -1
}

// defenderDensity counts opposing outfield players within defenderRadius
// of the shot location.
func defenderDensity(e event.Event) float64 {
	n := 0
	for _, p := range e.FreezeFrame {
		if p.Teammate || p.Keeper {
			continue
		}
		if e.Location.DistanceTo(p.Location) <= defenderRadius {
			n++
		}
	}
	return float64(n)
}

// imputeKeeperDistance replaces missing keeper distances (-1) with the mean
// over shots that have one, or 0 when none do.
func imputeKeeperDistance(records []ShotRecord) {
	sum, n := 0.0, 0
	for _, r := range records {
		if d := r.Features[featKeeperDistance]; d >= 0 {
			sum += d
			n++
		}
	}
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	}
	for _, r := range records {
		if r.Features[featKeeperDistance] < 0 {
			r.Features[featKeeperDistance] = mean
		}
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
