package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/smartfill/core/fill"
	"github.com/trezcool/smartfill/core/grid"
	"github.com/trezcool/smartfill/tests"
)

func Test_sheetApi_create(t *testing.T) {
	server := setup(t)
	testutil.CreateSheet(t, repo, "taken", testutil.TextColumns("a"))

	tests := []httpTest{
		{
			name:     "empty body",
			method:   http.MethodPost,
			path:     "/v1/sheets",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name": "this field is required", "columns": "this field is required"}`),
		},
		{
			name:     "bad column",
			method:   http.MethodPost,
			path:     "/v1/sheets",
			body:     []byte(`{"name": "orders", "columns": [{"field": "due date", "type": "date"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"field": "only alphanumeric characters and underscores are allowed"}`),
		},
		{
			name:     "name taken",
			method:   http.MethodPost,
			path:     "/v1/sheets",
			body:     []byte(`{"name": "Taken", "columns": [{"field": "a", "type": "text"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"name": grid.ErrSheetExists.Error()}),
		},
		{
			name:     "malformed json",
			method:   http.MethodPost,
			path:     "/v1/sheets",
			body:     []byte(`{"name": `),
			wantCode: http.StatusBadRequest,
		},
	}
	runHTTPTests(t, server, tests)

	req, rec := newRequest(http.MethodPost, "/v1/sheets/", []byte(`{
		"name": " Orders ",
		"columns": [
			{"field": "id", "type": "text"},
			{"field": "due", "header": "Due date", "type": "date", "read_only": true}
		]
	}`))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sheet grid.Sheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	assert.Equal(t, "orders", sheet.Name)
	assert.Equal(t, []grid.Column{
		{Field: "id", Header: "id", Type: grid.TypeText},
		{Field: "due", Header: "Due date", Type: grid.TypeDate, ReadOnly: true},
	}, sheet.Columns)
	assert.Empty(t, sheet.Rows)
}

func Test_sheetApi_query(t *testing.T) {
	server := setup(t)

	now := time.Now()
	testutil.CreateSheet(t, repo, "b", nil, now.Add(-time.Hour))
	testutil.CreateSheet(t, repo, "a", nil, now)
	testutil.CreateSheet(t, repo, "c", nil, now.Add(-2*time.Hour))

	names := func(ordering string) []string {
		req, rec := newRequest(http.MethodGet, "/v1/sheets?ordering="+ordering)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var sheets []grid.Sheet
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheets))
		out := make([]string, len(sheets))
		for i, s := range sheets {
			out[i] = s.Name
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, names(""))
	assert.Equal(t, []string{"c", "b", "a"}, names("-name"))
	assert.Equal(t, []string{"c", "b", "a"}, names("created_at"))
	assert.Equal(t, []string{"a", "b", "c"}, names("password")) // unknown fields are ignored
}

func Test_sheetApi_query_empty(t *testing.T) {
	server := setup(t)
	runHTTPTests(t, server, []httpTest{
		{name: "no sheets", method: http.MethodGet, path: "/v1/sheets", wantCode: http.StatusOK, wantData: []byte(`[]`)},
	})
}

func Test_sheetApi_retrieve(t *testing.T) {
	server := setup(t)
	testutil.CreateSheet(t, repo, "orders", testutil.TextColumns("id"))
	rows := testutil.AddRows(t, repo, "orders", testutil.Column("id", "A-1")...)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "not found",
			method:   http.MethodGet,
			path:     "/v1/sheets/missing",
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: grid.ErrNotFound.Error()}),
		},
	})

	req, rec := newRequest(http.MethodGet, "/v1/sheets/ORDERS")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sheet grid.Sheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, rows[0].ID, sheet.Rows[0].ID)
	assert.Equal(t, fill.Text("A-1"), sheet.Rows[0].Cells["id"])
}

func Test_sheetApi_addRows(t *testing.T) {
	server := setup(t)
	testutil.CreateSheet(t, repo, "orders", testutil.TextColumns("id"))

	runHTTPTests(t, server, []httpTest{
		{
			name:     "no count",
			method:   http.MethodPost,
			path:     "/v1/sheets/orders/rows",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"count": "this field is required"}`),
		},
		{
			name:     "sheet not found",
			method:   http.MethodPost,
			path:     "/v1/sheets/missing/rows",
			body:     []byte(`{"count": 1}`),
			wantCode: http.StatusNotFound,
		},
	})

	req, rec := newRequest(http.MethodPost, "/v1/sheets/orders/rows", []byte(`{"count": 2}`))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var rows []grid.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[1].Position)
}

func Test_sheetApi_updateCells(t *testing.T) {
	server := setup(t)
	cols := []grid.Column{
		{Field: "id", Type: grid.TypeText},
		{Field: "total", Type: grid.TypeNumber, ReadOnly: true},
	}
	testutil.CreateSheet(t, repo, "orders", cols)
	rows := testutil.AddRows(t, repo, "orders", testutil.Column("id", "A-1")...)

	body := func(rowID, field, value string) []byte {
		return []byte(`{"updates": [{"row_id": "` + rowID + `", "field": "` + field + `", "value": ` + value + `}]}`)
	}

	runHTTPTests(t, server, []httpTest{
		{
			name:     "no updates",
			method:   http.MethodPatch,
			path:     "/v1/sheets/orders/cells",
			body:     []byte(`{"updates": []}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "read-only column",
			method:   http.MethodPatch,
			path:     "/v1/sheets/orders/cells",
			body:     body(rows[0].ID, "total", "12"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"updates": "column \"total\" is read-only"}`),
		},
		{
			name:     "unknown row",
			method:   http.MethodPatch,
			path:     "/v1/sheets/orders/cells",
			body:     body("nope", "id", `"B-1"`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"updates": "unknown row \"nope\""}`),
		},
		{
			name:     "ok",
			method:   http.MethodPatch,
			path:     "/v1/sheets/orders/cells",
			body:     body(rows[0].ID, "id", `"B-1"`),
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []grid.CellUpdate{{RowID: rows[0].ID, Field: "id", Value: fill.Text("B-1")}}),
		},
	})

	sheet, err := repo.GetSheet(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, fill.Text("B-1"), sheet.Rows[0].Cells["id"])
}

func Test_sheetApi_fill(t *testing.T) {
	server := setup(t)
	testutil.CreateSheet(t, repo, "orders", testutil.TextColumns("id", "due"))
	cells := []map[string]fill.Value{
		{"id": fill.Text("INV-0098"), "due": fill.Text("2024-12-30")},
		{"id": fill.Text("INV-0099"), "due": fill.Text("2024-12-31")},
		{}, {}, {},
	}
	rows := testutil.AddRows(t, repo, "orders", cells...)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "nothing past the seeds",
			method:   http.MethodPost,
			path:     "/v1/sheets/orders/fill",
			body:     []byte(`{"selection": {"start_row": 0, "start_col": 0, "end_row": 1, "end_col": 1}, "seeds": 2}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"selection": "the selection must extend past the seed rows"}`),
		},
		{
			name:     "too large",
			method:   http.MethodPost,
			path:     "/v1/sheets/orders/fill",
			body:     []byte(`{"selection": {"start_row": 0, "start_col": 0, "end_row": 500, "end_col": 1}}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"selection": "cannot fill more than 100 rows at once"}`),
		},
		{
			name:     "negative corner",
			method:   http.MethodPost,
			path:     "/v1/sheets/orders/fill",
			body:     []byte(`{"selection": {"start_row": -1, "start_col": 0, "end_row": 3, "end_col": 1}}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "sheet not found",
			method:   http.MethodPost,
			path:     "/v1/sheets/missing/fill",
			body:     []byte(`{"selection": {"start_row": 0, "start_col": 0, "end_row": 3, "end_col": 1}}`),
			wantCode: http.StatusNotFound,
		},
	})

	req, rec := newRequest(http.MethodPost, "/v1/sheets/orders/fill", []byte(
		`{"selection": {"start_row": 0, "start_col": 0, "end_row": 4, "end_col": 1}, "seeds": 2}`,
	))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updates []grid.CellUpdate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updates))
	assert.Len(t, updates, 6)

	sheet, err := repo.GetSheet(req.Context(), "orders")
	require.NoError(t, err)
	var ids, dues []string
	for _, row := range sheet.Rows {
		ids = append(ids, row.Cells["id"].String())
		dues = append(dues, row.Cells["due"].String())
	}
	assert.Equal(t, []string{"INV-0098", "INV-0099", "INV-0100", "INV-0101", "INV-0102"}, ids)
	assert.Equal(t, []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02", "2025-01-03"}, dues)
	assert.Equal(t, rows[4].ID, sheet.Rows[4].ID)
}

func Test_sheetApi_deleteRows(t *testing.T) {
	server := setup(t)
	testutil.CreateSheet(t, repo, "orders", testutil.TextColumns("id"))
	rows := testutil.AddRows(t, repo, "orders", testutil.Column("id", "A-1", "A-2", "A-3", "A-4")...)

	runHTTPTests(t, server, []httpTest{
		{name: "no ids", method: http.MethodDelete, path: "/v1/sheets/orders/rows", wantCode: http.StatusNoContent},
		{
			name:     "sheet not found",
			method:   http.MethodDelete,
			path:     "/v1/sheets/missing/rows?id=" + rows[0].ID,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "repeated and comma separated ids",
			method:   http.MethodDelete,
			path:     "/v1/sheets/orders/rows?id=" + rows[0].ID + "," + rows[1].ID + "&id=" + rows[3].ID,
			wantCode: http.StatusNoContent,
		},
	})

	sheet, err := repo.GetSheet(context.Background(), "orders")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, rows[2].ID, sheet.Rows[0].ID)
}
