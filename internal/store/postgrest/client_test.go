package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
)

func TestBuildParams(t *testing.T) {
	q := store.From(models.TableWithdrawalRequests, "id", "amount", "status").
		Where(store.Eq("status", "Pending")).
		OrderBy("created_at", false).
		WithLimit(5)

	params := BuildParams(q)
	assert.Equal(t, "id,amount,status", params.Get("select"))
	assert.Equal(t, "eq.Pending", params.Get("status"))
	assert.Equal(t, "created_at.desc", params.Get("order"))
	assert.Equal(t, "5", params.Get("limit"))
}

func TestBuildParams_InQuotesValues(t *testing.T) {
	q := store.From(models.TableProfiles).Where(store.In("id", []string{"a", `b"c`, "d,e"}))

	params := BuildParams(q)
	assert.Equal(t, "*", params.Get("select"))
	assert.Equal(t, `in.("a","b\"c","d,e")`, params.Get("id"))
	assert.Empty(t, params.Get("order"))
	assert.Empty(t, params.Get("limit"))
}

func TestClient_Select(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/withdrawal_requests", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.processing", r.URL.Query().Get("status"))

		_, _ = io.WriteString(w, `[{"id":"w1","amount":"$10.00","status":"processing","created_at":"2024-01-02T03:04:05Z"},{"id":"w2","amount":20,"status":"Completed","created_at":"2024-01-01T00:00:00+00:00"}]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key", time.Second)

	var rows []models.Withdrawal
	err := client.Select(context.Background(), store.From(models.TableWithdrawalRequests).Where(store.Eq("status", "processing")), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "w1", rows[0].ID.String())
	assert.True(t, rows[0].Amount.IsText)
	assert.Equal(t, 20.0, rows[1].Amount.Float64())
}

func TestClient_SelectError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"42703","message":"column withdrawal_requests.foo does not exist"}`)
	}))
	defer srv.Close()

	var rows []models.Withdrawal
	err := NewClient(srv.URL, "k", time.Second).Select(context.Background(), store.From(models.TableWithdrawalRequests, "foo"), &rows)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "42703", apiErr.Code)
	assert.Contains(t, apiErr.Message, "does not exist")
}

func TestClient_Count(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		assert.Empty(t, r.URL.Query().Get("order"))
		w.Header().Set("Content-Range", "0-24/3573")
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL, "k", time.Second).Count(context.Background(), store.From(models.TableUsers).OrderBy("created_at", false))
	require.NoError(t, err)
	assert.Equal(t, 3573, n)
}

func TestParseContentRange(t *testing.T) {
	n, err := parseContentRange("*/0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = parseContentRange("0-9/*")
	assert.Error(t, err)

	_, err = parseContentRange("")
	assert.Error(t, err)
}

func TestClient_Update(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.w1", r.URL.Query().Get("id"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Rejected", body["status"])

		_, _ = io.WriteString(w, `[{"id":"w1","amount":5,"status":"Rejected","created_at":"2024-01-02T03:04:05Z"}]`)
	}))
	defer srv.Close()

	var row models.Withdrawal
	err := NewClient(srv.URL, "k", time.Second).Update(context.Background(), models.TableWithdrawalRequests, "w1", map[string]any{"status": "Rejected"}, &row)
	require.NoError(t, err)
	assert.Equal(t, "Rejected", row.Status)
}

func TestClient_UpdateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k", time.Second).Update(context.Background(), models.TableUsers, "missing", map[string]any{"status": "active"}, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClient_MissingURL(t *testing.T) {
	err := NewClient("", "", time.Second).Ping(context.Background())
	assert.Error(t, err)
}
