package units

import (
	"regexp"

	"github.com/quantatomai/normalize/internal/domain"
)

// isoCodes is the currency registry: every ISO-4217 code the engine
// accepts. Codes outside this set are treated as unknown and ignored.
var isoCodes = map[string]bool{
	"AED": true, "AFN": true, "ALL": true, "AMD": true, "ANG": true,
	"AOA": true, "ARS": true, "AUD": true, "AZN": true, "BAM": true,
	"BDT": true, "BGN": true, "BHD": true, "BIF": true, "BND": true,
	"BOB": true, "BRL": true, "BWP": true, "BYN": true, "CAD": true,
	"CDF": true, "CHF": true, "CLP": true, "CNY": true, "COP": true,
	"CRC": true, "CUP": true, "CZK": true, "DKK": true, "DOP": true,
	"DZD": true, "EGP": true, "ETB": true, "EUR": true, "FJD": true,
	"GBP": true, "GEL": true, "GHS": true, "GMD": true, "GNF": true,
	"GTQ": true, "HKD": true, "HNL": true, "HRK": true, "HTG": true,
	"HUF": true, "IDR": true, "ILS": true, "INR": true, "IQD": true,
	"IRR": true, "ISK": true, "JMD": true, "JOD": true, "JPY": true,
	"KES": true, "KGS": true, "KHR": true, "KRW": true, "KWD": true,
	"KZT": true, "LAK": true, "LBP": true, "LKR": true, "LYD": true,
	"MAD": true, "MDL": true, "MGA": true, "MKD": true, "MMK": true,
	"MNT": true, "MUR": true, "MWK": true, "MXN": true, "MYR": true,
	"MZN": true, "NAD": true, "NGN": true, "NIO": true, "NOK": true,
	"NPR": true, "NZD": true, "OMR": true, "PAB": true, "PEN": true,
	"PGK": true, "PHP": true, "PKR": true, "PLN": true, "PYG": true,
	"QAR": true, "RON": true, "RSD": true, "RUB": true, "RWF": true,
	"SAR": true, "SCR": true, "SDG": true, "SEK": true, "SGD": true,
	"SLL": true, "SOS": true, "SSP": true, "SYP": true, "THB": true,
	"TJS": true, "TMT": true, "TND": true, "TRY": true, "TTD": true,
	"TWD": true, "TZS": true, "UAH": true, "UGX": true, "USD": true,
	"UYU": true, "UZS": true, "VES": true, "VND": true, "XAF": true,
	"XOF": true, "XPF": true, "YER": true, "ZAR": true, "ZMW": true,
	"ZWL": true,
}

// KnownCurrency reports whether code is in the currency registry.
// The check is case-sensitive on the canonical uppercase form.
func KnownCurrency(code string) bool {
	return isoCodes[code]
}

// currencySymbols maps symbols to ISO codes. Ambiguous symbols resolve by
// precedence: "$" is USD, "¥" is CNY.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "CNY"},
	{"₹", "INR"},
	{"₽", "RUB"},
	{"₩", "KRW"},
	{"₺", "TRY"},
	{"₦", "NGN"},
	{"₫", "VND"},
	{"₴", "UAH"},
	{"₪", "ILS"},
	{"฿", "THB"},
	{"zł", "PLN"},
	{"r$", "BRL"},
	{"$", "USD"},
}

// currencyWords maps spelled-out currency names to ISO codes. Ambiguous
// names ("dollar", "peso") resolve to the most common code.
var currencyWords = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`\beuros?\b`), "EUR"},
	{regexp.MustCompile(`\bdollars?\b`), "USD"},
	{regexp.MustCompile(`\b(pounds?( sterling)?|sterling)\b`), "GBP"},
	{regexp.MustCompile(`\byen\b`), "JPY"},
	{regexp.MustCompile(`\b(yuan|renminbi)\b`), "CNY"},
	{regexp.MustCompile(`\brupees?\b`), "INR"},
	{regexp.MustCompile(`\brupiahs?\b`), "IDR"},
	{regexp.MustCompile(`\br(o|u)ubles?\b`), "RUB"},
	{regexp.MustCompile(`\bwon\b`), "KRW"},
	{regexp.MustCompile(`\bfrancs?\b`), "CHF"},
	{regexp.MustCompile(`\breal(es|s)?\b`), "BRL"},
	{regexp.MustCompile(`\bkronor\b|\bkrona\b`), "SEK"},
	{regexp.MustCompile(`\bkroner?\b`), "NOK"},
	{regexp.MustCompile(`\bzlotys?\b`), "PLN"},
	{regexp.MustCompile(`\brand\b`), "ZAR"},
	{regexp.MustCompile(`\blira\b`), "TRY"},
	{regexp.MustCompile(`\bdirhams?\b`), "AED"},
	{regexp.MustCompile(`\briyals?\b`), "SAR"},
	{regexp.MustCompile(`\bbaht\b`), "THB"},
	{regexp.MustCompile(`\bringgit\b`), "MYR"},
	{regexp.MustCompile(`\bpesos?\b`), "MXN"},
	{regexp.MustCompile(`\bforint\b`), "HUF"},
	{regexp.MustCompile(`\bkorunas?\b`), "CZK"},
	{regexp.MustCompile(`\bshekels?\b`), "ILS"},
	{regexp.MustCompile(`\bnairas?\b`), "NGN"},
	{regexp.MustCompile(`\bhryvnias?\b`), "UAH"},
}

// isoCodePattern matches any standalone 3-letter token. Word boundaries
// keep "scr" inside "subscribers" from triggering a false SCR hit.
var isoCodePattern = regexp.MustCompile(`\b[a-z]{3}\b`)

// magnitudePatterns is checked in order; longest match wins, so
// "hundred million" is tested before "million" and "hundred".
var magnitudePatterns = []struct {
	pattern *regexp.Regexp
	scale   domain.Scale
}{
	{regexp.MustCompile(`\bhundred[- ]millions?\b`), domain.ScaleHundredMillions},
	{regexp.MustCompile(`\btrillions?\b|\btn\b`), domain.ScaleTrillions},
	{regexp.MustCompile(`\bbillions?\b|\bbn\b`), domain.ScaleBillions},
	{regexp.MustCompile(`\bmillions?\b|\bmn\b|\bmio\b`), domain.ScaleMillions},
	{regexp.MustCompile(`\bthousands?\b|\bk\b|\b000s\b`), domain.ScaleThousands},
	{regexp.MustCompile(`\bhundreds?\b`), domain.ScaleHundreds},
}

// timePatterns anchors on per-phrases, adverbs and slash abbreviations.
var timePatterns = []struct {
	pattern *regexp.Regexp
	scale   domain.TimeScale
}{
	{regexp.MustCompile(`\byearly\b|\bannually\b|\bannualized\b|\bper (year|annum)\b|/\s*(yr|y)\b|\bp\.?a\.?\b`), domain.TimeYear},
	{regexp.MustCompile(`\bquarterly\b|\bper quarter\b|/\s*q(tr|uarter)?\b`), domain.TimeQuarter},
	{regexp.MustCompile(`\bmonthly\b|\bper month\b|/\s*mo(nth)?\b`), domain.TimeMonth},
	{regexp.MustCompile(`\bweekly\b|\bper week\b|/\s*w(k|eek)?\b`), domain.TimeWeek},
	{regexp.MustCompile(`\bdaily\b|\bper day\b|/\s*d(ay)?\b`), domain.TimeDay},
	{regexp.MustCompile(`\bhourly\b|\bper hour\b|/\s*h(r|our)?\b`), domain.TimeHour},
}

// percentagePattern covers explicit percentage tokens. Spelled-out
// "basis points" is an index token, but the bps abbreviation reads as a
// percentage-family measure.
var percentagePattern = regexp.MustCompile(`%|\bpct\b|\bpp\b|\bbps\b|\bpercent(age)?( of)?\b|\bper cent\b`)

// indexPattern covers index-style measures.
var indexPattern = regexp.MustCompile(`\bbasis points\b|\bpoints?\b|\bindex\b`)

// ratePattern covers per-head and per-base-quantity measures, which are
// not convertible.
var ratePattern = regexp.MustCompile(`\bper (capita|person|head|1000|100|million)\b|/\s*100\b|/\s*1000\b`)

// durationPattern matches units that are themselves a length of time.
var durationPattern = regexp.MustCompile(`^(hours?|days?|weeks?|months?|quarters?|years?)$`)

// ratioPattern covers dimensionless multiples.
var ratioPattern = regexp.MustCompile(`\btimes\b|\bratio\b|\bmultiples?\b|\bx\b|\bcoefficient\b`)

// pricePattern matches "CODE / noun" quotes like "usd/liter". A time word
// after the slash is a composite flow, not a price, and is excluded here.
var pricePattern = regexp.MustCompile(`\b[a-z]{3}\s*/\s*[a-z]+`)

// energyUnits maps energy tokens to canonical labels.
var energyUnits = map[string]string{
	"twh": "TWh", "gwh": "GWh", "mwh": "MWh", "kwh": "kWh",
	"gw": "GW", "mw": "MW", "kw": "kW",
	"tj": "TJ", "gj": "GJ", "mj": "MJ",
	"btu": "BTU", "boe": "BOE", "toe": "TOE",
	"terajoules": "TJ", "gigajoules": "GJ",
	"gigawatts": "GW", "megawatts": "MW", "kilowatts": "kW",
}

// physicalUnits maps physical and commodity tokens to canonical labels.
var physicalUnits = map[string]string{
	"bbl": "BBL", "barrel": "BBL", "barrels": "BBL",
	"bushel": "bushels", "bushels": "bushels",
	"tonne": "tonnes", "tonnes": "tonnes", "ton": "tonnes", "tons": "tonnes",
	"kg": "kg", "kilograms": "kg", "kilogram": "kg",
	"g": "g", "grams": "g", "gram": "g",
	"lb": "lbs", "lbs": "lbs", "pound": "lbs",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"litre": "litres", "litres": "litres", "liter": "litres", "liters": "litres",
	"gallon": "gallons", "gallons": "gallons",
	"m3": "m3", "hectare": "hectares", "hectares": "hectares",
	"sqm": "sqm", "km": "km", "miles": "miles",
}

// temperatureUnits maps temperature tokens to canonical labels.
var temperatureUnits = map[string]string{
	"celsius": "°C", "°c": "°C", "fahrenheit": "°F", "°f": "°F",
	"kelvin": "K",
}

// Domain dictionaries used by explain-record domain detection. Metals
// override generic commodity terms when both match.
var (
	metalsPattern      = regexp.MustCompile(`\b(copper|silver|gold|steel|aluminium|aluminum|zinc|nickel|platinum|palladium|iron ore|tin|lead)\b`)
	emissionsPattern   = regexp.MustCompile(`\bco2\b|\bcarbon\b|\bemissions?\b|\bkt of co2\b`)
	agriculturePattern = regexp.MustCompile(`\b(bushels?|wheat|corn|maize|soybeans?|grain|rice|coffee|cocoa|sugar|cotton|livestock|cattle)\b`)
	commodityPattern   = regexp.MustCompile(`\b(bbl|barrels?|crude|oil|gas|coal|lumber|brent|wti)\b`)
	wagesPattern       = regexp.MustCompile(`\b(wages?|salar(y|ies)|earnings|compensation|payroll|labou?r cost)\b`)
	monetaryPattern    = regexp.MustCompile(`\bmoney supply\b|\bm[0123]\b|\bmonetary base\b`)
)

// populationPattern matches stock-like count nouns that never take a time
// basis ("Population", "Inhabitants").
var populationPattern = regexp.MustCompile(`\b(population|inhabitants?|residents?|people)\b`)

// countPattern matches generic countable nouns.
var countPattern = regexp.MustCompile(`\b(units?|numbers?|counts?|persons?|vehicles?|cars?|subscribers?|dwellings?|permits?|registrations?|arrivals?|departures?|visitors?|passengers?|jobs?|employees?|households?|companies|firms?|establishments?)\b`)

// perCapitaPattern is used by the normalizer's per-capita special case.
var perCapitaPattern = regexp.MustCompile(`\bper capita\b`)

// PerCapita reports whether the normalized form of s mentions per capita.
func PerCapita(s string) bool {
	return perCapitaPattern.MatchString(NormalizeText(s))
}

// StockLikeCount reports whether a normalized indicator name denotes a
// population-style level: a count that has no time basis.
func StockLikeCount(normName string) bool {
	return populationPattern.MatchString(normName)
}
