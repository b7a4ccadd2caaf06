package iislog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsheet/logsheet/internal/domain"
)

func coerceInput(t *testing.T, input string) (*domain.Table, []domain.Diagnostic) {
	t.Helper()
	res, err := Parse([]byte(input), Options{})
	require.NoError(t, err)
	table, diags := Coerce(res.Schema, res.Records, Options{})
	return table, diags
}

func TestCoerce_SpecScenario(t *testing.T) {
	table, diags := coerceInput(t,
		"#Fields: date time cs-uri-stem sc-status time-taken\n"+
			"2024-01-01 00:00:01 /a 200 150\n")

	require.Equal(t, 1, table.Len())
	assert.Empty(t, diags)

	taken, ok := table.Numeric(domain.FieldTimeTaken)
	require.True(t, ok)
	assert.Equal(t, domain.Num(0.15), taken[0])

	status, ok := table.Numeric(domain.FieldStatus)
	require.True(t, ok)
	assert.Equal(t, domain.Num(200), status[0])

	require.True(t, table.HasDatetime())
	require.True(t, table.Times[0].Valid)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), table.Times[0].Value)
}

func TestCoerce_MillisecondsToSeconds(t *testing.T) {
	table, _ := coerceInput(t,
		"#Fields: date time cs-uri-stem sc-status time-taken\n"+
			"2024-01-01 00:00:01 /a 200 1000\n"+
			"2024-01-01 00:00:02 /a 200 1\n"+
			"2024-01-01 00:00:03 /a 200 0\n")

	taken, _ := table.Numeric(domain.FieldTimeTaken)
	assert.Equal(t, 1.0, taken[0].Value)
	assert.Equal(t, 0.001, taken[1].Value)
	assert.Equal(t, 0.0, taken[2].Value)
}

func TestCoerce_UnparsableValuesBecomeNull(t *testing.T) {
	table, diags := coerceInput(t,
		"#Fields: date time cs-uri-stem sc-status time-taken\n"+
			"2024-01-01 00:00:01 /a abc xyz\n"+
			"2024-01-01 00:00:02 /b 500 90\n")

	// rows are never dropped, only cells nulled
	require.Equal(t, 2, table.Len())
	assert.Empty(t, diags)

	status, _ := table.Numeric(domain.FieldStatus)
	assert.False(t, status[0].Valid)
	assert.True(t, status[1].Valid)

	taken, _ := table.Numeric(domain.FieldTimeTaken)
	assert.False(t, taken[0].Valid)
	assert.Equal(t, domain.Num(0.09), taken[1])

	// raw strings survive coercion untouched
	raw, _ := table.Column(domain.FieldStatus)
	assert.Equal(t, "abc", raw[0])
}

func TestCoerce_NumericFieldSet(t *testing.T) {
	table, _ := coerceInput(t,
		"#Fields: s-port sc-status sc-substatus sc-win32-status sc-bytes cs-bytes time-taken cs-uri-stem\n"+
			"443 200 0 0 1024 512 150 /a\n")

	for _, name := range NumericFields {
		col, ok := table.Numeric(name)
		require.True(t, ok, name)
		assert.True(t, col[0].Valid, name)
	}

	// non-numeric fields only get a string column
	_, ok := table.Numeric(domain.FieldURIStem)
	assert.False(t, ok)
}

func TestCoerce_DatetimeSynthesis(t *testing.T) {
	t.Run("per-record failures become null", func(t *testing.T) {
		table, diags := coerceInput(t,
			"#Fields: date time cs-uri-stem sc-status time-taken\n"+
				"2024-01-01 00:00:01 /a 200 150\n"+
				"notadate notatime /b 500 90\n")

		require.True(t, table.HasDatetime())
		assert.True(t, table.Times[0].Valid)
		assert.False(t, table.Times[1].Valid)
		assert.Empty(t, diags)
	})

	t.Run("warns when every record fails", func(t *testing.T) {
		table, diags := coerceInput(t,
			"#Fields: date time cs-uri-stem sc-status time-taken\n"+
				"bad worse /a 200 150\n")

		require.True(t, table.HasDatetime())
		require.Len(t, diags, 1)
		assert.Equal(t, domain.DiagDatetimeFailed, diags[0].Code)
	})

	t.Run("absent without date and time columns", func(t *testing.T) {
		table, diags := coerceInput(t,
			"#Fields: cs-uri-stem sc-status time-taken\n"+
				"/a 200 150\n")

		assert.False(t, table.HasDatetime())
		assert.Empty(t, diags)
	})
}

func TestCoerce_RowCountPreserved(t *testing.T) {
	res, err := Parse([]byte(sampleLog), Options{})
	require.NoError(t, err)

	table, _ := Coerce(res.Schema, res.Records, Options{})
	assert.Equal(t, len(res.Records), table.Len())
}

func TestTable_Row(t *testing.T) {
	table, _ := coerceInput(t,
		"#Fields: date time cs-uri-stem sc-status time-taken\n"+
			"2024-01-01 00:00:01 /a 200 150\n")

	assert.Equal(t, domain.Record{"2024-01-01", "00:00:01", "/a", "200", "150"}, table.Row(0))
}
