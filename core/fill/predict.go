// Package fill predicts spreadsheet-style "smart fill" continuations for grid columns.
package fill

// Predict continues the pattern found in samples with count more values.
// It never fails: input that matches no rule is repeated as is.
func Predict(samples []Value, count int) []Value {
	return Classify(samples).Generate(count)
}

// Strings renders values the way they are written back into grid cells.
func Strings(vals []Value) []string {
	ss := make([]string, len(vals))
	for i, v := range vals {
		ss[i] = v.String()
	}
	return ss
}
