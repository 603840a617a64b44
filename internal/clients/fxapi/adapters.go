package fxapi

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/quantatomai/normalize/internal/domain"
)

// Format identifies how a source's JSON document maps onto an FXTable.
type Format string

const (
	// FormatECB decodes {base, rates, date: "YYYY-MM-DD"}.
	FormatECB Format = "ecb"
	// FormatExchangeRateAPI decodes {base|base_code, rates|conversion_rates,
	// timestamp?|date?} where the timestamp may be a string or unix number.
	FormatExchangeRateAPI Format = "exchangerate-api"
)

// Decode parses body according to format. Zero and negative rates are
// rejected at ingestion so downstream arithmetic never divides by them.
func Decode(format Format, body []byte) (*domain.FXTable, error) {
	var table *domain.FXTable
	var err error

	switch format {
	case FormatECB:
		table, err = decodeECB(body)
	case FormatExchangeRateAPI:
		table, err = decodeExchangeRateAPI(body)
	default:
		return nil, fmt.Errorf("unknown source format: %q", format)
	}
	if err != nil {
		return nil, err
	}

	if table.Base == "" {
		return nil, fmt.Errorf("document has no base currency")
	}
	if len(table.Rates) == 0 {
		return nil, fmt.Errorf("document has no rates")
	}
	for code, rate := range table.Rates {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("%w: %s = %v", domain.ErrInvalidFXRate, code, rate)
		}
	}

	table.Base = strings.ToUpper(table.Base)
	upper := make(map[string]float64, len(table.Rates))
	for code, rate := range table.Rates {
		upper[strings.ToUpper(code)] = rate
	}
	table.Rates = upper
	return table, nil
}

func decodeECB(body []byte) (*domain.FXTable, error) {
	var doc struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
		Date  string             `json:"date"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid ECB document: %w", err)
	}
	return &domain.FXTable{Base: doc.Base, Rates: doc.Rates, AsOf: doc.Date}, nil
}

func decodeExchangeRateAPI(body []byte) (*domain.FXTable, error) {
	var doc struct {
		Base            string             `json:"base"`
		BaseCode        string             `json:"base_code"`
		Rates           map[string]float64 `json:"rates"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
		Timestamp       json.RawMessage    `json:"timestamp"`
		Date            json.RawMessage    `json:"date"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid exchangerate-api document: %w", err)
	}

	base := doc.Base
	if base == "" {
		base = doc.BaseCode
	}
	rates := doc.Rates
	if len(rates) == 0 {
		rates = doc.ConversionRates
	}

	asOf := decodeTimestamp(doc.Timestamp)
	if asOf == "" {
		asOf = decodeTimestamp(doc.Date)
	}
	return &domain.FXTable{Base: base, Rates: rates, AsOf: asOf}, nil
}

// decodeTimestamp accepts either a quoted date string or a unix-seconds
// number and renders it as YYYY-MM-DD.
func decodeTimestamp(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return time.Unix(int64(n), 0).UTC().Format("2006-01-02")
	}

	// Last resort: return the raw token without quotes.
	return strings.Trim(string(raw), `"`)
}
