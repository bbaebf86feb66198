// Package scoring implements the scoring and ranking engine: it computes
// uptime, rates and a normalized composite score per feeder from recent
// aggregated snapshots, then produces a full-network rank ordering with
// rank-delta bookkeeping and prunes stale snapshot history.
package scoring

import "math"

// Weights combines the four normalized metrics into the composite score.
// They must sum to 1.0.
type Weights struct {
	Uptime       float64
	MessageRate  float64
	PositionRate float64
	Aircraft     float64
}

// Targets are the metric values that earn a full 100 before weighting
type Targets struct {
	// MessageRate is messages per minute for a 100 score
	MessageRate float64
	// PositionRate is positions per minute for a 100 score
	PositionRate float64
	// Aircraft is the distinct-aircraft-seen count for a 100 score
	Aircraft float64
}

// DefaultWeights returns the standard metric weighting
func DefaultWeights() Weights {
	return Weights{
		Uptime:       0.30,
		MessageRate:  0.25,
		PositionRate: 0.25,
		Aircraft:     0.20,
	}
}

// DefaultTargets returns the standard normalization targets
func DefaultTargets() Targets {
	return Targets{
		MessageRate:  1000,
		PositionRate: 500,
		Aircraft:     50,
	}
}

// CompositeScore normalizes each metric against its target, caps it at 100,
// applies the weights and rounds to the nearest integer. Uptime is already a
// 0-100 percentage. The result is always within [0, 100] for valid inputs.
func CompositeScore(uptimePercent, messageRate, positionRate float64, aircraftSeen int64, w Weights, t Targets) int {
	score := w.Uptime*cap100(uptimePercent) +
		w.MessageRate*cap100(messageRate/t.MessageRate*100) +
		w.PositionRate*cap100(positionRate/t.PositionRate*100) +
		w.Aircraft*cap100(float64(aircraftSeen)/t.Aircraft*100)

	return int(math.Round(score))
}

// UptimePercent derives uptime from the number of snapshots observed in the
// trailing window against the expected cadence, capped at 100. A backfilled
// or over-sampled window never exceeds full uptime.
func UptimePercent(snapshotsObserved int64, snapshotsExpected int) float64 {
	if snapshotsExpected <= 0 {
		return 0
	}

	return cap100(float64(snapshotsObserved) / float64(snapshotsExpected) * 100)
}

// ClampDelta returns current minus previous, floored at zero. A negative
// delta means the upstream counter reset between samples; that is data
// inconsistency handled locally, never surfaced as an error.
func ClampDelta(current, previous int64) int64 {
	delta := current - previous
	if delta < 0 {
		return 0
	}

	return delta
}

func cap100(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}

	return v
}
