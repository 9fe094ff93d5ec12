package fill

import (
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// PatternKind names the rule a sample sequence was classified under.
type PatternKind int

const (
	PatternEmpty PatternKind = iota
	PatternDate
	PatternNumeric
	PatternText
	PatternCycle
)

var patternNames = map[PatternKind]string{
	PatternEmpty:   "empty",
	PatternDate:    "date",
	PatternNumeric: "numeric",
	PatternText:    "text",
	PatternCycle:   "cycle",
}

func (k PatternKind) String() string { return patternNames[k] }

// Pattern is an inferred continuation rule. The set of implementations is closed:
// Classify is the only constructor.
type Pattern interface {
	Kind() PatternKind
	// Generate returns the next count values after the last sample.
	Generate(count int) []Value
}

type (
	emptyPattern struct{}

	datePattern struct {
		last time.Time
		days int
	}

	numericPattern struct {
		last, delta float64
	}

	textPattern struct {
		cursor textCursor
	}

	cyclePattern struct {
		samples []Value
	}
)

// Classify picks the first matching rule among empty, date, numeric, structured text and
// verbatim cycling. Only the first and last samples anchor the step; every sample counts
// towards the divisor.
func Classify(samples []Value) Pattern {
	n := len(samples)
	if n == 0 {
		return emptyPattern{}
	}
	first, last := samples[0], samples[n-1]

	if start, ok := first.Time(); ok {
		if end, ok := last.Time(); ok {
			days := 1
			if n > 1 {
				elapsed := float64((end.Unix() - start.Unix()) / secondsPerDay)
				days = int(roundHalfUp(elapsed / float64(n-1)))
			}
			return datePattern{last: end, days: days}
		}
	}

	if p, ok := classifyNumeric(samples); ok {
		return p
	}

	if first.Kind() == KindText {
		firstToks, lastToks := tokenize(first.String()), tokenize(last.String())
		if len(firstToks) == len(lastToks) {
			cur := textCursor{
				steps: make([]tokenStep, len(firstToks)),
				vals:  make([]float64, len(firstToks)),
			}
			for i := range firstToks {
				cur.steps[i], cur.vals[i] = newTokenStep(firstToks[i], lastToks[i], n)
			}
			return textPattern{cursor: cur}
		}
	}

	return cyclePattern{samples: append([]Value(nil), samples...)}
}

// classifyNumeric needs every sample to read as a number. A zero-padded first sample
// ("007") keeps the text rule so its padding survives.
func classifyNumeric(samples []Value) (Pattern, bool) {
	if samples[0].padded() {
		return nil, false
	}
	var first, last float64
	for i, v := range samples {
		f, ok := v.Float()
		if !ok {
			return nil, false
		}
		if i == 0 {
			first = f
		}
		last = f
	}
	return numericPattern{last: last, delta: slope(first, last, len(samples))}, true
}

func (emptyPattern) Kind() PatternKind { return PatternEmpty }

func (emptyPattern) Generate(count int) []Value {
	out := make([]Value, clampCount(count))
	for i := range out {
		out[i] = Text("")
	}
	return out
}

func (datePattern) Kind() PatternKind { return PatternDate }

func (p datePattern) Generate(count int) []Value {
	out := make([]Value, clampCount(count))
	cur := p.last
	for i := range out {
		cur = cur.AddDate(0, 0, p.days)
		out[i] = Date(cur)
	}
	return out
}

func (numericPattern) Kind() PatternKind { return PatternNumeric }

func (p numericPattern) Generate(count int) []Value {
	out := make([]Value, clampCount(count))
	cur := p.last
	for i := range out {
		cur += p.delta
		out[i] = Number(math.Round(cur*100) / 100)
	}
	return out
}

func (textPattern) Kind() PatternKind { return PatternText }

func (p textPattern) Generate(count int) []Value {
	out := make([]Value, clampCount(count))
	cur := p.cursor
	for i := range out {
		var s string
		cur, s = cur.next()
		out[i] = Text(s)
	}
	return out
}

func (cyclePattern) Kind() PatternKind { return PatternCycle }

func (p cyclePattern) Generate(count int) []Value {
	out := make([]Value, clampCount(count))
	for i := range out {
		out[i] = p.samples[i%len(p.samples)]
	}
	return out
}

func clampCount(count int) int {
	if count < 0 {
		return 0
	}
	return count
}
