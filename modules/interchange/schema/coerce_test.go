package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/interchange/schema"
)

func newCoercer() schema.Coercer {
	return schema.Coercer{
		DateFormat:      "2006-01-02",
		TimestampFormat: "2006-01-02 15:04:05",
		Currency:        "EUR",
	}
}

func TestCoercer_String(t *testing.T) {
	c := newCoercer()
	assert.Equal(t, "42", c.String("42.0"))
	assert.Equal(t, "-7", c.String("-7.00"))
	assert.Equal(t, "3.5", c.String("3.5"))
	assert.Equal(t, "hello", c.String("  hello  "))
	assert.Equal(t, "", c.String("   "))
}

func TestCoercer_Bool(t *testing.T) {
	c := newCoercer()
	for _, raw := range []string{"true", "TRUE", "1", "Sí", "si", "yes"} {
		assert.True(t, c.Bool(raw), raw)
	}
	for _, raw := range []string{"", "false", "0", "no", "2"} {
		assert.False(t, c.Bool(raw), raw)
	}

	assert.Nil(t, c.BoolPointer(""))
	v := c.BoolPointer("false")
	require.NotNil(t, v)
	assert.False(t, *v)
}

func TestCoercer_Money(t *testing.T) {
	c := newCoercer()

	m, err := c.Money("-150.00")
	require.NoError(t, err)
	assert.Equal(t, int64(-15000), m.Amount())
	assert.Equal(t, "EUR", m.Currency().Code)

	m, err = c.Money("250")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), m.Amount())

	m, err = c.Money("12,50")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), m.Amount())

	_, err = c.Money("")
	assert.Error(t, err)
	_, err = c.Money("a lot")
	assert.Error(t, err)
}

func TestCoercer_Date(t *testing.T) {
	c := newCoercer()

	d := c.Date("1984-06-15")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(1984, 6, 15, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, c.Date(""))
	assert.Nil(t, c.Date("15/06/1984"))
}

func TestCoercer_Timestamp(t *testing.T) {
	c := newCoercer()

	ts := c.Timestamp("2024-03-09 18:30:00")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC), *ts)

	// date-only cells are accepted at midnight
	ts = c.Timestamp("2024-03-09")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), *ts)

	assert.Nil(t, c.Timestamp("soon"))
}

func TestCoercer_Duration(t *testing.T) {
	c := newCoercer()

	d := c.Duration("2:30:00")
	require.NotNil(t, d)
	assert.Equal(t, 2*time.Hour+30*time.Minute, *d)

	d = c.Duration("100:00:05")
	require.NotNil(t, d)
	assert.Equal(t, 100*time.Hour+5*time.Second, *d)

	assert.Nil(t, c.Duration(""))
	assert.Nil(t, c.Duration("90 minutes"))
	assert.Nil(t, c.Duration("1:75:00"))
}
