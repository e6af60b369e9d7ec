package pdfimport

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/pdfimport/date"
	"github.com/shopspring/decimal"
)

// Documents write numbers the German way: '.' groups thousands and ',' starts the decimals.

const (
	amountFraction = 2 // digits of an amount, in minor units
	sharesFraction = 6 // maximum digits of a share count
	priceFraction  = 6 // maximum digits of a unit price
)

// PieceNotation is the unit of measure of securities quoted per piece.
// Any other notation (EUR, USD...) quotes a percentage of the face value.
const PieceNotation = "STK"

var (
	// 1.234.567,89: thousands grouped by '.', decimals after ','
	groupedRegex    = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{3})*(,[0-9]+)?$`)
	germanDateRegex = regexp.MustCompile(`^([0-9]{1,2})\.([0-9]{1,2})\.([0-9]{4})$`)
)

// maxMinorUnits is the largest amount a Money can hold.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// parseNumber returns the decimal value of a localized literal with at most maxFraction decimals.
func parseNumber(s string, maxFraction int32) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !groupedRegex.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	units, decimals, _ := strings.Cut(s, ",")
	if len(decimals) > int(maxFraction) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimals", ErrMalformedNumber, s, maxFraction)
	}
	literal := strings.ReplaceAll(units, ".", "")
	if decimals != "" {
		literal += "." + decimals
	}
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, s, err)
	}
	return d, nil
}

// parseAmount parses an amount into minor units of fraction digits. Decimals,
// when present, are exactly fraction digits.
func parseAmount(s string, fraction int32) (int64, error) {
	d, err := parseNumber(s, fraction)
	if err != nil {
		return 0, err
	}
	if _, decimals, ok := strings.Cut(strings.TrimSpace(s), ","); ok && len(decimals) != int(fraction) {
		return 0, fmt.Errorf("%w: %q want %d decimals", ErrMalformedNumber, s, fraction)
	}
	minor := d.Shift(fraction)
	if minor.GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("%w: %q is too large", ErrMalformedNumber, s)
	}
	return minor.IntPart(), nil
}

// ParseAmount parses an amount with cents like "1.234,56" into minor units
// (123456). Whole amounts like "17" are accepted.
func ParseAmount(s string) (int64, error) { return parseAmount(s, amountFraction) }

// ParsePrice parses a unit price like "0,700000".
func ParsePrice(s string) (decimal.Decimal, error) { return parseNumber(s, priceFraction) }

// IsPercentQuoted reports whether the notation quotes a percentage of the face value.
func IsPercentQuoted(notation string) bool {
	return notation != "" && !strings.EqualFold(notation, PieceNotation)
}

// ParseShares parses a share count like "1.000,000".
//
// Securities with a notation other than PieceNotation are quoted as a
// percentage of their face value: the nominal is divided by 100.
func ParseShares(s, notation string) (Quantity, error) {
	d, err := parseNumber(s, sharesFraction)
	if err != nil {
		return Quantity{}, err
	}
	q := Quantity{value: d}
	if IsPercentQuoted(notation) {
		q = q.Div(100)
	}
	return q, nil
}

// ParseDate parses a date like "17.11.2014" or "1.6.2011".
func ParseDate(s string) (date.Date, error) {
	m := germanDateRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return date.Date{}, fmt.Errorf("%w: %q want DD.MM.YYYY", ErrMalformedDate, s)
	}
	// the regex guarantees digits only
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 1 {
		return date.Date{}, fmt.Errorf("%w: %q has no year", ErrMalformedDate, s)
	}
	d, err := date.Strict(year, time.Month(month), day)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, s, err)
	}
	return d, nil
}

// ParseCurrency returns the ISO 4217 code for s, uppercased.
func ParseCurrency(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if err := ValidateCurrency(code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCurrency, err)
	}
	return code, nil
}

// ParseMoney parses a currency and an amount literal with the decimals of the
// currency minor unit: "59,55" in EUR, "1.234" in JPY.
func ParseMoney(currency, amount string) (Money, error) {
	cur, err := ParseCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	v, err := parseAmount(amount, fraction(cur))
	if err != nil {
		return Money{}, err
	}
	return MoneyOf(cur, v), nil
}

// FormatAmount is the inverse of ParseAmount: 123456 is "1.234,56".
func FormatAmount(amount int64) string { return formatMinor(amount, amountFraction) }

// FormatMoney is the inverse of ParseMoney for the amount of m: "1.234" for JPY 1234.
func FormatMoney(m Money) string { return formatMinor(m.Amount(), fraction(m.Currency())) }

// formatMinor formats an amount of minor units with fraction decimals.
func formatMinor(amount int64, fraction int32) string {
	s := decimal.New(amount, -fraction).StringFixed(fraction)
	units, decimals, _ := strings.Cut(s, ".")
	if decimals == "" {
		return groupThousands(units)
	}
	return groupThousands(units) + "," + decimals
}

// FormatShares formats a share count with three decimals: "25,000".
func FormatShares(q Quantity) string {
	s := q.value.StringFixed(3)
	units, decimals, _ := strings.Cut(s, ".")
	return groupThousands(units) + "," + decimals
}

// FormatDate is the inverse of ParseDate, with zero padded day and month.
func FormatDate(d date.Date) string { return d.Format("02.01.2006") }

// groupThousands inserts '.' every three digits from the right.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
