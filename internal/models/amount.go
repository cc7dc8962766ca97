package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
)

// Amount хранит сумму в том виде, в каком она лежит в базе: строкой или числом.
type Amount struct {
	Raw    string
	IsText bool
}

// NewNumericAmount создаёт числовую сумму.
func NewNumericAmount(v float64) Amount {
	return Amount{Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// NewTextAmount создаёт сумму, сохранённую строкой ("$10.00").
func NewTextAmount(v string) Amount {
	return Amount{Raw: v, IsText: true}
}

// Decimal возвращает числовое значение суммы. ok == false, если сумму не удалось разобрать.
func (a Amount) Decimal() (decimal.Decimal, bool) {
	if a.Raw == "" {
		return decimal.Zero, false
	}
	if !a.IsText {
		d, err := decimal.NewFromString(a.Raw)
		if err == nil {
			return d, true
		}
	}
	return valueobject.ParseAmount(a.Raw)
}

// Float64 возвращает сумму или 0 для некорректного значения.
func (a Amount) Float64() float64 {
	d, ok := a.Decimal()
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

func (a Amount) String() string {
	return a.Raw
}

// MarshalJSON отдаёт число, если исходное значение было числом, иначе строку.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Raw == "" {
		return []byte("null"), nil
	}
	if !a.IsText {
		return []byte(a.Raw), nil
	}
	return json.Marshal(a.Raw)
}

// UnmarshalJSON принимает и число, и строку.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = NewTextAmount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount{Raw: n.String()}
	return nil
}

// Scan реализует sql.Scanner. numeric из Postgres приходит байтами, поэтому
// такие значения считаются текстом и разбираются через ParseAmount.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
	case []byte:
		*a = NewTextAmount(string(v))
	case string:
		*a = NewTextAmount(v)
	case float64:
		*a = NewNumericAmount(v)
	case int64:
		*a = Amount{Raw: strconv.FormatInt(v, 10)}
	default:
		return fmt.Errorf("amount: неподдерживаемый тип %T", src)
	}
	return nil
}

// Value реализует driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	if a.Raw == "" {
		return nil, nil
	}
	return a.Raw, nil
}
