package domain

// Scale is the magnitude a value is reported in ("GDP in billions").
type Scale string

const (
	ScaleOnes            Scale = "ones"
	ScaleHundreds        Scale = "hundreds"
	ScaleThousands       Scale = "thousands"
	ScaleHundredMillions Scale = "hundred-millions"
	ScaleMillions        Scale = "millions"
	ScaleBillions        Scale = "billions"
	ScaleTrillions       Scale = "trillions"
)

// ValidScale reports whether s is a known magnitude token.
func ValidScale(s Scale) bool {
	switch s {
	case ScaleOnes, ScaleHundreds, ScaleThousands, ScaleHundredMillions,
		ScaleMillions, ScaleBillions, ScaleTrillions:
		return true
	}
	return false
}

// TimeScale is the time basis of a flow ("exports per month").
type TimeScale string

const (
	TimeHour    TimeScale = "hour"
	TimeDay     TimeScale = "day"
	TimeWeek    TimeScale = "week"
	TimeMonth   TimeScale = "month"
	TimeQuarter TimeScale = "quarter"
	TimeYear    TimeScale = "year"
)

// ValidTimeScale reports whether t is a known time-basis token.
func ValidTimeScale(t TimeScale) bool {
	switch t {
	case TimeHour, TimeDay, TimeWeek, TimeMonth, TimeQuarter, TimeYear:
		return true
	}
	return false
}

// UnitCategory classifies what kind of measure a unit string describes.
type UnitCategory string

const (
	CategoryCurrency    UnitCategory = "currency"
	CategoryPercentage  UnitCategory = "percentage"
	CategoryIndex       UnitCategory = "index"
	CategoryPhysical    UnitCategory = "physical"
	CategoryEnergy      UnitCategory = "energy"
	CategoryTemperature UnitCategory = "temperature"
	CategoryPopulation  UnitCategory = "population"
	CategoryCount       UnitCategory = "count"
	CategoryRate        UnitCategory = "rate"
	CategoryTime        UnitCategory = "time"
	CategoryRatio       UnitCategory = "ratio"
	CategoryComposite   UnitCategory = "composite"
	CategoryUnknown     UnitCategory = "unknown"
)

// IndicatorType is the closed set of indicator classifications the engine
// understands. Unrecognized types fall back to IndicatorOther.
type IndicatorType string

const (
	IndicatorFlow        IndicatorType = "flow"
	IndicatorStock       IndicatorType = "stock"
	IndicatorBalance     IndicatorType = "balance"
	IndicatorCount       IndicatorType = "count"
	IndicatorVolume      IndicatorType = "volume"
	IndicatorPrice       IndicatorType = "price"
	IndicatorCapacity    IndicatorType = "capacity"
	IndicatorPercentage  IndicatorType = "percentage"
	IndicatorRatio       IndicatorType = "ratio"
	IndicatorIndex       IndicatorType = "index"
	IndicatorRate        IndicatorType = "rate"
	IndicatorYield       IndicatorType = "yield"
	IndicatorSpread      IndicatorType = "spread"
	IndicatorShare       IndicatorType = "share"
	IndicatorVolatility  IndicatorType = "volatility"
	IndicatorCorrelation IndicatorType = "correlation"
	IndicatorElasticity  IndicatorType = "elasticity"
	IndicatorMultiplier  IndicatorType = "multiplier"
	IndicatorSentiment   IndicatorType = "sentiment"
	IndicatorAllocation  IndicatorType = "allocation"
	IndicatorProbability IndicatorType = "probability"
	IndicatorDuration    IndicatorType = "duration"
	IndicatorIntensity   IndicatorType = "intensity"
	IndicatorScore       IndicatorType = "score"
	IndicatorGap         IndicatorType = "gap"
	IndicatorOther       IndicatorType = "other"
)

// AllIndicatorTypes lists every known indicator type.
var AllIndicatorTypes = []IndicatorType{
	IndicatorFlow, IndicatorStock, IndicatorBalance, IndicatorCount,
	IndicatorVolume, IndicatorPrice, IndicatorCapacity, IndicatorPercentage,
	IndicatorRatio, IndicatorIndex, IndicatorRate, IndicatorYield,
	IndicatorSpread, IndicatorShare, IndicatorVolatility, IndicatorCorrelation,
	IndicatorElasticity, IndicatorMultiplier, IndicatorSentiment,
	IndicatorAllocation, IndicatorProbability, IndicatorDuration,
	IndicatorIntensity, IndicatorScore, IndicatorGap, IndicatorOther,
}

// TemporalAggregation describes how within-period values combine.
type TemporalAggregation string

const (
	AggPointInTime      TemporalAggregation = "point-in-time"
	AggPeriodTotal      TemporalAggregation = "period-total"
	AggPeriodAverage    TemporalAggregation = "period-average"
	AggPeriodRate       TemporalAggregation = "period-rate"
	AggPeriodCumulative TemporalAggregation = "period-cumulative"
	AggNotApplicable    TemporalAggregation = "not-applicable"
)

// Domain is a high-level semantic tag used by consumers for formatting.
type Domain string

const (
	DomainWages             Domain = "wages"
	DomainPercentage        Domain = "percentage"
	DomainCount             Domain = "count"
	DomainEnergy            Domain = "energy"
	DomainCommodity         Domain = "commodity"
	DomainAgriculture       Domain = "agriculture"
	DomainMetals            Domain = "metals"
	DomainEmissions         Domain = "emissions"
	DomainMonetaryAggregate Domain = "monetary_aggregate"
)
