package fill

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

// Kind tells which shape a Value holds.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

var (
	dateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	decimalRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	paddedRegex  = regexp.MustCompile(`^[+-]?0\d`)

	errUnsupportedJSON = errors.New("cell value must be a string, a number or null")
)

// Value is a single grid cell value: a number, a calendar date or text.
type Value struct {
	kind Kind
	num  float64
	text string
	date time.Time
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date truncates t to its calendar day (UTC).
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Texts is a shorthand for a list of Text values.
func Texts(ss ...string) []Value {
	vals := make([]Value, len(ss))
	for i, s := range ss {
		vals[i] = Text(s)
	}
	return vals
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(DateLayout)
	default:
		return v.text
	}
}

// Float reports the numeric reading of v. Text qualifies only in plain decimal notation.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, !math.IsInf(v.num, 0) && !math.IsNaN(v.num)
	case KindText:
		s := strings.TrimSpace(v.text)
		if !decimalRegex.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// padded reports a zero-padded numeral like "007".
func (v Value) padded() bool {
	return v.kind == KindText && paddedRegex.MatchString(strings.TrimSpace(v.text))
}

// Time reports the calendar date held by v. Text must be exactly YYYY-MM-DD.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindText:
		if !dateRegex.MatchString(v.text) {
			return time.Time{}, false
		}
		t, err := time.Parse(DateLayout, v.text)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts strings, numbers and null (read as empty text).
// Date strings stay Text; they are recognised when a pattern is classified.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Text("")
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decoding text value")
		}
		*v = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return errors.Wrap(err, "decoding number value")
		}
		*v = Number(f)
	default:
		return errUnsupportedJSON
	}
	return nil
}
