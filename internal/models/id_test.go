package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalStringNumberNull(t *testing.T) {
	var rows []struct {
		ID     ID  `json:"id"`
		UserID *ID `json:"user_id"`
	}
	err := json.Unmarshal([]byte(`[
		{"id":"0f8fad5b-d9cb-469f-a165-70867728950e","user_id":"u1"},
		{"id":42,"user_id":7},
		{"id":null,"user_id":null}
	]`), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", rows[0].ID.String())
	assert.Equal(t, "42", rows[1].ID.String())
	require.NotNil(t, rows[1].UserID)
	assert.Equal(t, "7", rows[1].UserID.String())
	assert.Empty(t, rows[2].ID)
	assert.Nil(t, rows[2].UserID)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestID_MarshalsAsString(t *testing.T) {
	raw, err := json.Marshal(Withdrawal{ID: "42"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"42"`)
}

func TestID_Scan(t *testing.T) {
	var id ID
	require.NoError(t, id.Scan(int64(1001)))
	assert.Equal(t, ID("1001"), id)

	require.NoError(t, id.Scan([]byte("abc")))
	assert.Equal(t, ID("abc"), id)

	require.NoError(t, id.Scan(nil))
	assert.Empty(t, id)

	assert.Error(t, id.Scan(3.14))
}

func TestWithdrawal_NullCreatedAt(t *testing.T) {
	var w Withdrawal
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":null}`), &w))
	assert.Nil(t, w.CreatedAt)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":"2024-01-02T03:04:05Z"}`), &w))
	require.NotNil(t, w.CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), w.CreatedAt.UTC())
}
