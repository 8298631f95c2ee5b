package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/pkg/excel"
)

func row(cells map[string]string) excel.Row {
	return excel.NewRow(1, nil, cells)
}

func TestMemberRowFrom(t *testing.T) {
	c := newCoercer()

	r, err := schema.MemberRowFrom(row(map[string]string{
		"member_number": "17.0",
		"first_name":    "Carmen",
		"last_name":     "Vega",
		"birth_date":    "1970-01-30",
		"dues_paid":     "Sí",
	}), c)
	require.NoError(t, err)
	assert.Equal(t, "17", r.MemberNumber)
	require.NotNil(t, r.BirthDate)
	assert.Equal(t, time.Date(1970, 1, 30, 0, 0, 0, 0, time.UTC), *r.BirthDate)
	require.NotNil(t, r.DuesPaid)
	assert.True(t, *r.DuesPaid)

	_, err = schema.MemberRowFrom(row(map[string]string{
		"member_number": "18",
		"first_name":    "Carmen",
	}), c)
	assert.ErrorIs(t, err, schema.ErrRequiredBlank)
}

func TestTransactionRowFrom(t *testing.T) {
	c := newCoercer()

	r, err := schema.TransactionRowFrom(row(map[string]string{
		"transaction_date": "2024-02-01",
		"amount":           "-150.00",
		"label":            "Materials",
	}), c)
	require.NoError(t, err)
	assert.Equal(t, int64(-15000), r.Amount.Amount())

	// blank amount is a structural skip
	_, err = schema.TransactionRowFrom(row(map[string]string{
		"transaction_date": "2024-02-01",
		"amount":           "",
		"label":            "Materials",
	}), c)
	assert.ErrorIs(t, err, schema.ErrRequiredBlank)

	// malformed amount is a row failure, not a skip
	_, err = schema.TransactionRowFrom(row(map[string]string{
		"transaction_date": "2024-02-01",
		"amount":           "lots",
		"label":            "Materials",
	}), c)
	require.Error(t, err)
	assert.NotErrorIs(t, err, schema.ErrRequiredBlank)
}

func TestEventRowFrom(t *testing.T) {
	c := newCoercer()

	r, err := schema.EventRowFrom(row(map[string]string{
		"name":            "Assembly",
		"start_timestamp": "2024-03-09 18:30:00",
		"duration":        "1:30:00",
	}), c)
	require.NoError(t, err)
	require.NotNil(t, r.Duration)
	assert.Equal(t, 90*time.Minute, *r.Duration)

	_, err = schema.EventRowFrom(row(map[string]string{
		"name":            "Assembly",
		"start_timestamp": "whenever",
	}), c)
	assert.ErrorIs(t, err, schema.ErrRequiredBlank)
}

func TestInventoryItemRowFrom_BadPriceDegrades(t *testing.T) {
	c := newCoercer()

	r, err := schema.InventoryItemRowFrom(row(map[string]string{
		"name":  "Ladder",
		"price": "priceless",
	}), c)
	require.NoError(t, err)
	assert.Nil(t, r.Price)
}
