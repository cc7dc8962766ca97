package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalNumberAndString(t *testing.T) {
	var rows []struct {
		Amount Amount `json:"amount"`
	}
	err := json.Unmarshal([]byte(`[{"amount":20},{"amount":"$10.00"},{"amount":"bad"},{"amount":null}]`), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.False(t, rows[0].Amount.IsText)
	assert.Equal(t, 20.0, rows[0].Amount.Float64())

	assert.True(t, rows[1].Amount.IsText)
	assert.Equal(t, 10.0, rows[1].Amount.Float64())

	_, ok := rows[2].Amount.Decimal()
	assert.False(t, ok)
	assert.Equal(t, 0.0, rows[2].Amount.Float64())

	_, ok = rows[3].Amount.Decimal()
	assert.False(t, ok)
}

func TestAmount_MarshalKeepsRepresentation(t *testing.T) {
	raw, err := json.Marshal([]Amount{NewNumericAmount(12.5), NewTextAmount("$3.00"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[12.5,"$3.00",null]`, string(raw))
}

func TestAmount_Scan(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan([]byte("2500.50")))
	assert.Equal(t, 2500.5, a.Float64())

	require.NoError(t, a.Scan(int64(7)))
	assert.Equal(t, 7.0, a.Float64())

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, "", a.Raw)

	assert.Error(t, a.Scan(true))
}

func TestUser_DisplayName(t *testing.T) {
	name := "Alice"
	email := "bob@example.com"

	assert.Equal(t, "Alice", (&User{ID: "1", Name: &name, Email: &email}).DisplayName())
	assert.Equal(t, "bob", (&User{ID: "2", Email: &email}).DisplayName())
	assert.Equal(t, "User ID: 3", (&User{ID: "3"}).DisplayName())
	assert.Equal(t, "Unknown User", (*User)(nil).DisplayName())
}
