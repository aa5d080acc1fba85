// Package similarity scores how likely two financial records describe the same real-world
// payment. Every function is pure and total.
package similarity

import (
	"time"
	"unicode/utf8"
)

// Matched field names reported on duplicate candidates.
const (
	FieldAmount = "amount"
	FieldDate   = "date"
	FieldVendor = "vendor"
)

// VendorMatchThreshold is the partner similarity from which the vendor counts as matching.
const VendorMatchThreshold = 0.6

// Date similarity bands.
const (
	SameDaySimilarity = 1.0
	NearDaySimilarity = 0.8
	// MaxDayDistance is the widest gap, in calendar days, that still counts as near.
	MaxDayDistance = 2
)

// Levenshtein returns the edit distance between a and b counted in runes, with unit cost for
// insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// PartnerSimilarity compares two vendor/counterpart names after normalization and returns a
// value in [0, 1]. An empty name on either side never matches.
func PartnerSimilarity(a, b string) float64 {
	na, nb := NormalizePartner(a), NormalizePartner(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	longest := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	sim := 1 - float64(Levenshtein(na, nb))/float64(longest)
	return clamp01(sim)
}

// DayDistance returns the absolute number of calendar days between a and b. Each time is
// reduced to the calendar day it carries in its own location.
func DayDistance(a, b time.Time) int {
	d := int(dayOf(a).Sub(dayOf(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// DateSimilarity is a step function: same day 1.0, one or two days apart 0.8, otherwise 0.
func DateSimilarity(a, b time.Time) float64 {
	switch d := DayDistance(a, b); {
	case d == 0:
		return SameDaySimilarity
	case d <= MaxDayDistance:
		return NearDaySimilarity
	default:
		return 0
	}
}

// Result is the scored comparison of a candidate against an anchor record.
type Result struct {
	Score             float64
	DateSimilarity    float64
	PartnerSimilarity float64
	MatchedFields     []string
}

// Combine merges the individual signals of a pair whose amounts already match exactly.
// The amount signal is full strength only when the vendor corroborates it; the combined score
// is the strongest of the amount, date and partner signals.
func Combine(dateSim, partnerSim float64) Result {
	fields := []string{FieldAmount}
	amountSignal := 0.0
	if dateSim > 0 {
		fields = append(fields, FieldDate)
	}
	if partnerSim >= VendorMatchThreshold {
		fields = append(fields, FieldVendor)
		amountSignal = 1
	}

	return Result{
		Score:             clamp01(max(amountSignal, dateSim, partnerSim)),
		DateSimilarity:    dateSim,
		PartnerSimilarity: partnerSim,
		MatchedFields:     fields,
	}
}

// Compare scores a same-amount candidate against the anchor. ok is false when the dates are
// too far apart: date proximity gates the match regardless of how similar the partners are.
func Compare(anchorDate time.Time, anchorPartner string, candidateDate time.Time, candidatePartner string) (Result, bool) {
	dateSim := DateSimilarity(anchorDate, candidateDate)
	if dateSim == 0 {
		return Result{}, false
	}
	return Combine(dateSim, PartnerSimilarity(anchorPartner, candidatePartner)), true
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
