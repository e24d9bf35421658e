package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/typecontrol/core/settings"
)

// GeometricSteps is the number of candidate sizes of a geometric progression.
const GeometricSteps = 12

// Result is the outcome of size list generation.
type Result struct {
	Sizes    []float64 // candidate sizes in display order
	Filtered bool      // at least one candidate has been clipped
}

// GenerateSizes derives the list of font sizes from size parameters.
// It is a shortcut for Generate(p).Sizes.
func GenerateSizes(p settings.SizeParams) []float64 {
	return Generate(p).Sizes
}

// Generate derives the list of font sizes from size parameters.
//
// With p.UseCustom set, the sizes are parsed from p.CustomSizes, a comma
// separated list of numbers. Tokens which do not start with a number are
// dropped silently, the order of the list is kept and duplicates are
// retained. Otherwise the sizes are round(BaseSize * Ratio^i) for
// i = 0…GeometricSteps-1.
//
// In both modes every size ≥ p.MaxLetterSize is dropped. The resulting list
// may be empty. Generate performs no validation of base size or ratio.
func Generate(p settings.SizeParams) Result {
	var candidates []float64
	if p.UseCustom {
		candidates = parseCustomSizes(p.CustomSizes)
	} else {
		candidates = geometricSizes(p.BaseSize, p.Ratio)
	}
	r := Result{Sizes: make([]float64, 0, len(candidates))}
	for _, size := range candidates {
		if size < p.MaxLetterSize {
			r.Sizes = append(r.Sizes, size)
		} else {
			r.Filtered = true
		}
	}
	if r.Filtered {
		tracer().Debugf("clipped %d size(s) at maximum letter size %g",
			len(candidates)-len(r.Sizes), p.MaxLetterSize)
	}
	return r
}

func geometricSizes(base, ratio float64) []float64 {
	sizes := make([]float64, GeometricSteps)
	for i := range sizes {
		sizes[i] = Round(base * math.Pow(ratio, float64(i)))
	}
	return sizes
}

func parseCustomSizes(raw string) []float64 {
	tokens := strings.Split(raw, ",")
	sizes := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		n, ok := ParseSize(token)
		if !ok {
			tracer().Debugf("dropping custom size token %q", token)
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}

// Round rounds x to the nearest integer, with halves rounded towards
// positive infinity (2.5 → 3, -2.5 → -2).
func Round(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// ParseSize parses the longest numeric prefix of a (trimmed) token.
// "18px" yields 18, ".5" yields 0.5, "Infinity" yields +Inf.
// If the token does not start with a number, ParseSize returns false.
func ParseSize(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN(), false
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !math.IsInf(n, 0) { // overflow yields ±Inf, which we keep
		return math.NaN(), false
	}
	return n, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Join formats a list of sizes as a custom sizes string, suitable for
// Settings.CustomSizes.
func Join(sizes []float64) string {
	var b strings.Builder
	for i, size := range sizes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(size, 'f', -1, 64))
	}
	return b.String()
}

// Ascending reports whether sizes are in non-decreasing order.
// Custom size lists are not sorted by Generate; consumers displaying them
// as a scale may want to warn about unordered input.
func Ascending(sizes []float64) bool {
	for i := 1; i < len(sizes); i++ {
		if sizes[i] < sizes[i-1] {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest size of a list.
// For an empty list ok is false.
func MinMax(sizes []float64) (lo, hi float64, ok bool) {
	if len(sizes) == 0 {
		return 0, 0, false
	}
	lo, hi = sizes[0], sizes[0]
	for _, size := range sizes[1:] {
		if size < lo {
			lo = size
		}
		if size > hi {
			hi = size
		}
	}
	return lo, hi, true
}
