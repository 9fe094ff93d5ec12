package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_fillApi_predict(t *testing.T) {
	server := setup(t)
	path := "/v1/fill/predict"

	tests := []httpTest{
		{
			name:     "numbers",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": [1, 3, 5], "count": 3}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "numeric", "values": [7, 9, 11]}`),
		},
		{
			name:     "numeric text",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": ["10", "7.5"], "count": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "numeric", "values": [5, 2.5]}`),
		},
		{
			name:     "dates",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": ["2024-01-01", "2024-01-08"], "count": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "date", "values": ["2024-01-15", "2024-01-22"]}`),
		},
		{
			name:     "structured text",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": ["Room 101"], "count": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "text", "values": ["Room 102", "Room 103"]}`),
		},
		{
			name:     "cycle",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": ["red", "light green"], "count": 3}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "cycle", "values": ["red", "light green", "red"]}`),
		},
		{
			name:     "no samples",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": [], "count": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "empty", "values": ["", ""]}`),
		},
		{
			name:     "count above max",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": [1], "count": 101}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"count": "must be at most 100"}`),
		},
		{
			name:     "unsupported sample",
			method:   http.MethodPost,
			path:     path,
			body:     []byte(`{"samples": [true], "count": 1}`),
			wantCode: http.StatusBadRequest,
		},
	}
	runHTTPTests(t, server, tests)
}

func Test_fillApi_predict_negativeCount(t *testing.T) {
	server := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/fill/predict", []byte(`{"samples": [1], "count": -1}`))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count"`)
}

func Test_fillApi_predict_cached(t *testing.T) {
	server := setup(t)
	body := []byte(`{"samples": ["Item 9"], "count": 2}`)

	for i := 0; i < 2; i++ {
		req, rec := newRequest(http.MethodPost, "/v1/fill/predict/", body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"pattern": "text", "values": ["Item 10", "Item 11"]}`),
		}, rec)
	}
}
