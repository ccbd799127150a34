package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query builds a single PostgREST request against one table. Filters and
// ordering are accumulated, then executed with Get, Patch or Delete.
type Query struct {
	client *Client
	table  string
	params url.Values
}

// From starts a query against the named table.
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// Eq adds an equality filter on a column.
func (q *Query) Eq(column string, value interface{}) *Query {
	q.params.Add(column, fmt.Sprintf("eq.%v", value))
	return q
}

// OrderDesc sorts the result descending by the given column.
func (q *Query) OrderDesc(column string) *Query {
	q.params.Set("order", column+".desc")
	return q
}

func (q *Query) endpoint() string {
	u := q.client.baseURL + "/rest/v1/" + url.PathEscape(q.table)
	if len(q.params) > 0 {
		u += "?" + q.params.Encode()
	}
	return u
}

// Get runs a full-row select and decodes the result into dest.
func (q *Query) Get(ctx context.Context, dest interface{}) error {
	q.params.Set("select", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("supabase: failed to build request: %w", err)
	}

	body, _, err := q.client.do(req, "")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("supabase: failed to decode rows: %w", err)
	}
	return nil
}

// Count returns the exact number of rows matching the filters without
// fetching them, using the Content-Range header.
func (q *Query) Count(ctx context.Context) (int64, error) {
	q.params.Set("select", "id")

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, q.endpoint(), nil)
	if err != nil {
		return 0, fmt.Errorf("supabase: failed to build request: %w", err)
	}
	req.Header.Set("Prefer", "count=exact")

	_, headers, err := q.client.do(req, "")
	if err != nil {
		return 0, err
	}

	// Content-Range looks like "0-24/3573" or "*/0".
	cr := headers.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("supabase: missing count in Content-Range %q", cr)
	}
	count, err := strconv.ParseInt(cr[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("supabase: bad count in Content-Range %q", cr)
	}
	return count, nil
}

// Patch applies a field-subset update to the rows matching the filters.
func (q *Query) Patch(ctx context.Context, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("supabase: failed to encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, q.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("supabase: failed to build request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")

	_, _, err = q.client.do(req, "")
	return err
}

// Delete removes the rows matching the filters.
func (q *Query) Delete(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, q.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("supabase: failed to build request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")

	_, _, err = q.client.do(req, "")
	return err
}
