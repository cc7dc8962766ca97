// Package postgrest реализует store.Store поверх REST API Supabase (PostgREST).
package postgrest

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

	"github.com/ignatzorin/payout-admin/internal/store"
)

const restPrefix = "/rest/v1/"

var _ store.Store = (*Client)(nil)

// Error - ошибка, которую вернул PostgREST.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("postgrest: %d: %s", e.StatusCode, e.Message)
}

// Client - клиент PostgREST с публичным ключом.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient создаёт клиента. Пустой URL или ключ не считаются ошибкой:
// запросы просто завершатся ошибкой позже.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Select выполняет GET /rest/v1/{table}.
func (c *Client) Select(ctx context.Context, q store.Query, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, q.Table, BuildParams(q), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: select %s: %w", q.Table, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("postgrest: decode %s: %w", q.Table, err)
	}
	return nil
}

// Count выполняет HEAD с Prefer: count=exact и читает итог из Content-Range.
func (c *Client) Count(ctx context.Context, q store.Query) (int, error) {
	params := BuildParams(q)
	params.Del("order")
	params.Del("limit")

	req, err := c.newRequest(ctx, http.MethodHead, q.Table, params, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("postgrest: count %s: %w", q.Table, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return 0, err
	}

	return parseContentRange(resp.Header.Get("Content-Range"))
}

// Update выполняет PATCH /rest/v1/{table}?id=eq.{id} и возвращает изменённую строку.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any, dest any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("postgrest: encode update %s: %w", table, err)
	}

	params := url.Values{}
	params.Set("id", "eq."+id)
	params.Set("select", "*")

	req, err := c.newRequest(ctx, http.MethodPatch, table, params, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: update %s: %w", table, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return fmt.Errorf("postgrest: decode update %s: %w", table, err)
	}
	if len(rows) == 0 {
		return store.ErrNotFound
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("postgrest: decode update %s: %w", table, err)
	}
	return nil
}

// Ping запрашивает корень REST API.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "", nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkResponse(resp)
}

func (c *Client) newRequest(ctx context.Context, method, table string, params url.Values, body io.Reader) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("postgrest: не задан адрес хранилища")
	}

	target := c.baseURL + restPrefix + table
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("postgrest: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// BuildParams переводит store.Query в параметры PostgREST.
func BuildParams(q store.Query) url.Values {
	params := url.Values{}

	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}
	params.Set("select", columns)

	for _, f := range q.Filters {
		switch f.Op {
		case store.OpIn:
			quoted := make([]string, 0, len(f.Values))
			for _, v := range f.Values {
				quoted = append(quoted, quoteValue(v))
			}
			params.Add(f.Column, "in.("+strings.Join(quoted, ",")+")")
		default:
			params.Add(f.Column, "eq."+f.Value)
		}
	}

	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		params.Set("order", q.Order.Column+"."+dir)
	}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return params
}

// quoteValue экранирует значение для списка in.(...).
func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

// parseContentRange разбирает "0-24/3573" и "*/0".
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, fmt.Errorf("postgrest: нет итога в Content-Range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("postgrest: итог не посчитан в Content-Range %q", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("postgrest: некорректный Content-Range %q: %w", header, err)
	}
	return n, nil
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
