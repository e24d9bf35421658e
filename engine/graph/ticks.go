package graph

import "math"

// MinLabelGap is the minimum horizontal distance between two axis labels,
// in pixels.
const MinLabelGap = 80

// TickCount returns the target number of axis ticks for a given width.
func TickCount(width, minGap int) int {
	if minGap <= 0 {
		minGap = MinLabelGap
	}
	if n := width / minGap; n > 2 {
		return n
	}
	return 2
}

// NiceTicks returns axis ticks for a value range [lo, hi], aiming at
// roughly count ticks. Tick steps are 1, 2 or 5 times a power of ten and all
// ticks lie within [lo, hi].
//
// This is the "nice numbers for graph labels" algorithm by Paul Heckbert
// (Graphics Gems, 1990), restricted to the inner range.
func NiceTicks(lo, hi float64, count int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return []float64{lo}
	}
	if count < 2 {
		count = 2
	}
	step := TickStep(lo, hi, count)
	first := math.Ceil(lo/step) * step
	var ticks []float64
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, cleanTick(v, step))
	}
	return ticks
}

// TickStep returns the nice tick step for a range and a tick count.
// If the step would leave fewer than two ticks inside the range, it is
// reduced to the next smaller nice step.
func TickStep(lo, hi float64, count int) float64 {
	if count < 2 {
		count = 2
	}
	span := niceNum(hi-lo, false)
	step := niceNum(span/float64(count-1), true)
	for i := 0; i < 64 && countTicks(lo, hi, step) < 2; i++ {
		step = smallerNice(step)
	}
	return step
}

func countTicks(lo, hi, step float64) int {
	first := math.Ceil(lo/step) * step
	if first > hi+step*1e-9 {
		return 0
	}
	return int(math.Floor((hi+step*1e-9-first)/step)) + 1
}

// smallerNice steps down the sequence … 10, 5, 2, 1, 0.5 …
func smallerNice(step float64) float64 {
	p := math.Pow(10, math.Floor(math.Log10(step)))
	switch m := math.Round(step / p); {
	case m >= 5:
		return 2 * p
	case m >= 2:
		return p
	default:
		return p / 2
	}
}

// niceNum finds a "nice" number approximately equal to x. It rounds the
// number if round is true, takes the ceiling otherwise.
func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// cleanTick removes floating point noise like 0.30000000000000004.
func cleanTick(v, step float64) float64 {
	digits := -math.Floor(math.Log10(step))
	if digits < 0 {
		digits = 0
	}
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}
