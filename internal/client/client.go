// Package client talks to the pgpeek HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 30 * time.Second

// Field describes one result column.
type Field struct {
	Name       string `json:"name"`
	DataTypeID uint32 `json:"dataTypeID"`
}

// Result is a query or table scan result as returned by the API. Numeric
// values decode as json.Number.
type Result struct {
	Rows     []map[string]any `json:"rows"`
	Fields   []Field          `json:"fields"`
	RowCount int64            `json:"rowCount"`
}

// TableParams selects the page of a table to fetch. Empty SortBy means
// unsorted.
type TableParams struct {
	Limit     int
	SortBy    string
	SortOrder string
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Client is an HTTP client for the API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Connect asks the server to open a session. It returns the server's
// confirmation message.
func (c *Client) Connect(ctx context.Context, connectionString string) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	body := map[string]string{"connectionString": connectionString}
	if err := c.do(ctx, http.MethodPost, "/api/connect", body, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{Status: http.StatusOK, Message: resp.Error}
	}
	return resp.Message, nil
}

// Databases lists the server's databases.
func (c *Client) Databases(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/api/databases", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Tables lists the tables of database.
func (c *Client) Tables(ctx context.Context, database string) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/api/tables/"+url.PathEscape(database), nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Query runs statement against database. A negative limit leaves the
// cap to the server's default.
func (c *Client) Query(ctx context.Context, database, statement string, limit int) (*Result, error) {
	body := map[string]any{
		"database": database,
		"query":    statement,
	}
	if limit >= 0 {
		body["limit"] = limit
	}

	var result Result
	if err := c.do(ctx, http.MethodPost, "/api/query", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TableData fetches rows of table in database.
func (c *Client) TableData(ctx context.Context, database, table string, p TableParams) (*Result, error) {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
		if p.SortOrder != "" {
			q.Set("sortOrder", p.SortOrder)
		}
	}

	path := "/api/table-data/" + url.PathEscape(database) + "/" + url.PathEscape(table)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result Result
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	// Numbers stay json.Number so bigint values keep their precision.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
