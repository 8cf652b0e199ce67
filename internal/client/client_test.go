package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// stub serves a fixed status and body, recording the last request.
func stub(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.query = r.URL.RawQuery
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &rec.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", nil), rec
}

func TestConnect(t *testing.T) {
	c, rec := stub(t, http.StatusOK, `{"success":true,"message":"Connected successfully"}`)

	msg, err := c.Connect(context.Background(), "postgres://u@h/db")
	require.NoError(t, err)
	assert.Equal(t, "Connected successfully", msg)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/connect", rec.path)
	assert.Equal(t, "postgres://u@h/db", rec.body["connectionString"])
}

func TestConnect_Failure(t *testing.T) {
	c, _ := stub(t, http.StatusInternalServerError, `{"success":false,"error":"password authentication failed"}`)

	_, err := c.Connect(context.Background(), "postgres://u@h/db")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "password authentication failed", err.Error())
}

func TestDatabases(t *testing.T) {
	c, rec := stub(t, http.StatusOK, `["a","b"]`)

	names, err := c.Databases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, "/api/databases", rec.path)
}

func TestDatabases_NotConnected(t *testing.T) {
	c, _ := stub(t, http.StatusBadRequest, `{"error":"Not connected to database"}`)

	_, err := c.Databases(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Not connected to database", err.Error())
}

func TestTables_EscapesPath(t *testing.T) {
	c, rec := stub(t, http.StatusOK, `[]`)

	names, err := c.Tables(context.Background(), "my db/x")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Equal(t, "/api/tables/my%20db%2Fx", rec.path)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit any
	}{
		{"explicit", 25, float64(25)},
		{"zero", 0, float64(0)},
		{"server default", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := stub(t, http.StatusOK,
				`{"rows":[{"id":1,"name":null}],"fields":[{"name":"id","dataTypeID":23},{"name":"name","dataTypeID":25}],"rowCount":1}`)

			result, err := c.Query(context.Background(), "db", "SELECT * FROM t", tt.limit)
			require.NoError(t, err)

			assert.Equal(t, "db", rec.body["database"])
			assert.Equal(t, "SELECT * FROM t", rec.body["query"])
			limit, ok := rec.body["limit"]
			if tt.wantLimit == nil {
				assert.False(t, ok)
			} else {
				assert.Equal(t, tt.wantLimit, limit)
			}

			assert.Equal(t, int64(1), result.RowCount)
			assert.Equal(t, []Field{{Name: "id", DataTypeID: 23}, {Name: "name", DataTypeID: 25}}, result.Fields)
			assert.Nil(t, result.Rows[0]["name"])
		})
	}
}

func TestTableData(t *testing.T) {
	tests := []struct {
		name      string
		params    TableParams
		wantQuery string
	}{
		{"limit only", TableParams{Limit: 10}, "limit=10"},
		{"sorted", TableParams{Limit: 50, SortBy: "created at", SortOrder: "DESC"}, "limit=50&sortBy=created+at&sortOrder=DESC"},
		{"order without column", TableParams{Limit: 50, SortOrder: "DESC"}, "limit=50"},
		{"nothing", TableParams{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := stub(t, http.StatusOK, `{"rows":[],"fields":[],"rowCount":0}`)

			result, err := c.TableData(context.Background(), "db", "Order Items", tt.params)
			require.NoError(t, err)
			assert.Equal(t, int64(0), result.RowCount)
			assert.Equal(t, "/api/table-data/db/Order%20Items", rec.path)
			assert.Equal(t, tt.wantQuery, rec.query)
		})
	}
}

func TestAPIError_EmptyBody(t *testing.T) {
	c, _ := stub(t, http.StatusBadGateway, ``)

	_, err := c.Databases(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "api returned 502 Bad Gateway", err.Error())
}
