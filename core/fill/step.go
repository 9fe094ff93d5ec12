package fill

import (
	"math"
	"strconv"
	"strings"
)

type stepKind int

const (
	stepConstant stepKind = iota
	stepNumber
	stepLetter
	stepOrdinal
)

// tokenStep describes how one token position advances from one output to the next.
type tokenStep struct {
	kind    stepKind
	literal string   // stepConstant
	delta   float64  // per output
	pad     int      // stepNumber: total width, 0 for none
	symbols []string // stepOrdinal
}

// newTokenStep builds the step for a token position and returns the anchor (the last
// sample's reading) that accumulation starts from.
func newTokenStep(first, last string, n int) (tokenStep, float64) {
	switch {
	case isDigits(first) && isDigits(last):
		start, _ := strconv.ParseFloat(first, 64)
		end, _ := strconv.ParseFloat(last, 64)
		st := tokenStep{kind: stepNumber, delta: slope(start, end, n)}
		if strings.HasPrefix(first, "0") {
			st.pad = len(first)
		}
		return st, end
	case isLetter(first) && isLetter(last):
		start, end := float64(first[0]), float64(last[0])
		return tokenStep{kind: stepLetter, delta: slope(start, end, n)}, end
	}
	for _, enum := range []struct {
		symbols []string
		index   map[string]int
	}{
		{heavenlyStems, stemIndex},
		{chineseNumerals, chineseNumeralIx},
	} {
		start, ok1 := enum.index[first]
		end, ok2 := enum.index[last]
		if ok1 && ok2 {
			st := tokenStep{kind: stepOrdinal, delta: slope(float64(start), float64(end), n), symbols: enum.symbols}
			return st, float64(end)
		}
	}
	return tokenStep{kind: stepConstant, literal: last}, 0
}

// slope is the per-sample change between the first and the last of n samples.
// A single sample has no slope; it counts up by one.
func slope(start, end float64, n int) float64 {
	if n > 1 {
		return (end - start) / float64(n-1)
	}
	return 1
}

func (st tokenStep) emit(val float64) string {
	switch st.kind {
	case stepNumber:
		return padNumber(roundHalfUp(val), st.pad)
	case stepLetter:
		// no wrap around past 'Z' / 'z'
		return string(rune(int64(roundHalfUp(val))))
	case stepOrdinal:
		return st.symbols[floorMod(int(roundHalfUp(val)), len(st.symbols))]
	default:
		return st.literal
	}
}

func padNumber(n float64, width int) string {
	digits := strconv.FormatFloat(math.Abs(n), 'f', 0, 64)
	sign := ""
	if n < 0 {
		sign = "-"
		width--
	}
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return sign + digits
}

func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// textCursor is the per-position state of a structured text fill.
type textCursor struct {
	steps []tokenStep
	vals  []float64
}

// next advances every position once and returns the new cursor with the rendered
// output. The receiver is left untouched.
func (c textCursor) next() (textCursor, string) {
	vals := make([]float64, len(c.vals))
	var b strings.Builder
	for i, st := range c.steps {
		vals[i] = c.vals[i]
		if st.kind != stepConstant {
			vals[i] += st.delta
		}
		b.WriteString(st.emit(vals[i]))
	}
	return textCursor{steps: c.steps, vals: vals}, b.String()
}
