package fxapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/domain"
)

func TestDecodeECB(t *testing.T) {
	body := []byte(`{"base":"usd","rates":{"xof":558.16,"EUR":0.92},"date":"2026-08-20"}`)

	table, err := Decode(FormatECB, body)
	require.NoError(t, err)
	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, 558.16, table.Rates["XOF"])
	assert.Equal(t, 0.92, table.Rates["EUR"])
	assert.Equal(t, "2026-08-20", table.AsOf)
}

func TestDecodeExchangeRateAPI(t *testing.T) {
	t.Run("base_code and conversion_rates", func(t *testing.T) {
		body := []byte(`{"base_code":"USD","conversion_rates":{"ARS":1465},"date":"2026-08-20"}`)
		table, err := Decode(FormatExchangeRateAPI, body)
		require.NoError(t, err)
		assert.Equal(t, "USD", table.Base)
		assert.Equal(t, 1465.0, table.Rates["ARS"])
		assert.Equal(t, "2026-08-20", table.AsOf)
	})

	t.Run("unix timestamp", func(t *testing.T) {
		body := []byte(`{"base":"USD","rates":{"EUR":0.92},"timestamp":1755648000}`)
		table, err := Decode(FormatExchangeRateAPI, body)
		require.NoError(t, err)
		assert.Equal(t, "2025-08-20", table.AsOf)
	})

	t.Run("string timestamp", func(t *testing.T) {
		body := []byte(`{"base":"USD","rates":{"EUR":0.92},"timestamp":"2026-08-20"}`)
		table, err := Decode(FormatExchangeRateAPI, body)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-20", table.AsOf)
	})
}

func TestDecodeRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		body   string
	}{
		{"missing base", FormatECB, `{"rates":{"EUR":0.92}}`},
		{"missing rates", FormatECB, `{"base":"USD"}`},
		{"zero rate", FormatECB, `{"base":"USD","rates":{"EUR":0}}`},
		{"negative rate", FormatECB, `{"base":"USD","rates":{"EUR":-1}}`},
		{"malformed json", FormatECB, `{`},
	}
	for _, tc := range tests {
		_, err := Decode(tc.format, []byte(tc.body))
		assert.Error(t, err, tc.name)
	}

	_, err := Decode(FormatECB, []byte(`{"base":"USD","rates":{"EUR":-1}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidFXRate)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode("bogus", []byte(`{}`))
	assert.Error(t, err)
}
