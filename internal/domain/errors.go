package domain

import "errors"

// Hard failure kinds. Soft issues travel as Warning values instead.
var (
	// ErrMissingFXRate - currency conversion was requested but the FX
	// table has no rate for one of the codes.
	ErrMissingFXRate = errors.New("missing FX rate")

	// ErrFXUnavailable - every FX source failed and no fallback exists.
	ErrFXUnavailable = errors.New("FX rates unavailable")

	// ErrInvalidFXRate - a rate is zero, negative or non-finite.
	ErrInvalidFXRate = errors.New("invalid FX rate")

	// ErrUnsupportedConversion - the indicator-type rules block a
	// conversion the caller explicitly forced.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrInvalidTimeBasis - a time target was requested, the indicator
	// type requires a time basis, and none could be inferred.
	ErrInvalidTimeBasis = errors.New("no source time basis")

	// ErrAggregationEmpty - an aggregation was asked over no values.
	ErrAggregationEmpty = errors.New("aggregation over empty input")

	// ErrUnitMismatch - aggregation inputs carry different units and
	// pre-normalization was not requested.
	ErrUnitMismatch = errors.New("unit mismatch")
)
