package sqlxrepos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/smartfill/core/fill"
)

func Test_encodeCell(t *testing.T) {
	tests := []struct {
		name     string
		val      fill.Value
		wantKind string
		wantVal  null.String
	}{
		{name: "number", val: fill.Number(2.5), wantKind: "number", wantVal: null.StringFrom("2.5")},
		{name: "date", val: fill.Date(time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC)), wantKind: "date", wantVal: null.StringFrom("2024-02-29")},
		{name: "text", val: fill.Text("SKU-001"), wantKind: "text", wantVal: null.StringFrom("SKU-001")},
		{name: "empty text", val: fill.Text(""), wantKind: "text", wantVal: null.String{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, val := encodeCell(tt.val)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantVal, val)

			// round trip
			assert.Equal(t, tt.val, decodeCell(kind, val))
		})
	}
}

func Test_decodeCell_fallsBackToText(t *testing.T) {
	assert.Equal(t, fill.Text("abc"), decodeCell("number", null.StringFrom("abc")))
	assert.Equal(t, fill.Text("2024-13-45"), decodeCell("date", null.StringFrom("2024-13-45")))
	assert.Equal(t, fill.Text(""), decodeCell("text", null.String{}))
}

func Test_validIDs(t *testing.T) {
	good := "7b0c7f0e-3c55-4a38-9d8f-2f0a8e8b7c11"

	ids, ok := validIDs([]string{good})
	assert.True(t, ok)
	assert.Equal(t, []string{good}, ids)

	ids, ok = validIDs([]string{"nope", good})
	assert.False(t, ok)
	assert.Equal(t, []string{good}, ids)
}
