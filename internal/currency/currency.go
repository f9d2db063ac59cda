// Package currency converts between USD decimal amounts and microcents, the
// fixed-point unit (1e-8 USD) used for every internal money value.
//
// All conversions go through decimal arithmetic; float inputs are first
// rendered to their shortest decimal literal and never multiplied as floats.
package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/creditmeter/internal/domain"
)

const (
	FractionDigits    = 8
	MicrocentsPerCent = 1_000_000
	MicrocentsPerUSD  = 100_000_000

	// MaxSafeCents is the largest cent value that survives a round trip
	// through an IEEE-754 double on the wire (2^53 - 1).
	MaxSafeCents = 1<<53 - 1

	// maxOrder bounds the decimal order of magnitude accepted in scientific
	// notation. Larger values are out of range long before this.
	maxOrder = 30
)

type Rounding string

const (
	RoundingCeil   Rounding = "ceil"
	RoundingFloor  Rounding = "floor"
	RoundingHalfUp Rounding = "round"
)

var (
	amountPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
	separators    = strings.NewReplacer("$", "", ",", "", "_", "", " ", "", "\u00a0", "")
	maxSafeCents  = decimal.NewFromInt(MaxSafeCents)

	// MaxMicrocents is the largest magnitude a single money value may have:
	// the microcent equivalent of MaxSafeCents.
	MaxMicrocents = maxSafeCents.Mul(decimal.NewFromInt(MicrocentsPerCent))
)

const (
	microcentShift int32 = FractionDigits
	centsShift     int32 = -6
)

func ParseRounding(s string) (Rounding, error) {
	switch r := Rounding(strings.ToLower(strings.TrimSpace(s))); r {
	case RoundingCeil, RoundingFloor, RoundingHalfUp:
		return r, nil
	}
	return "", fmt.Errorf("unsupported rounding mode: %q", s)
}

// Round rounds d to an integer using the given mode. Half-up is applied away
// from zero, which is the same as half-up for the nonnegative values this
// package deals with.
func Round(d decimal.Decimal, r Rounding) (decimal.Decimal, error) {
	switch r {
	case RoundingCeil:
		return d.RoundCeil(0), nil
	case RoundingFloor:
		return d.RoundFloor(0), nil
	case RoundingHalfUp:
		return d.Round(0), nil
	}
	return decimal.Zero, fmt.Errorf("unsupported rounding mode: %q", r)
}

// ParseUsdToMicrocents parses a USD amount given as a string, json.Number,
// float, integer or decimal and returns it in microcents. Currency symbols and
// thousands separators are ignored, scientific notation is expanded. Digits
// beyond the 8th fractional place are rounded half-up.
func ParseUsdToMicrocents(value any) (decimal.Decimal, error) {
	literal, err := normalize(value)
	if err != nil {
		return decimal.Zero, err
	}
	if !amountPattern.MatchString(literal) {
		return decimal.Zero, fmt.Errorf("%w: malformed usd amount %q", domain.ErrInvalidAmount, literal)
	}

	amount, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, err.Error())
	}
	if amount.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: negative usd amount %q", domain.ErrInvalidAmount, literal)
	}

	return amount.Shift(microcentShift).Round(0), nil
}

// SafeParseUsdToMicrocents is ParseUsdToMicrocents for optional upstream
// fields: nil, empty or malformed input yields ok == false instead of an error.
func SafeParseUsdToMicrocents(value any) (decimal.Decimal, bool) {
	if value == nil {
		return decimal.Zero, false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return decimal.Zero, false
	}
	m, err := ParseUsdToMicrocents(value)
	if err != nil {
		return decimal.Zero, false
	}
	return m, true
}

// ParseSignedUsdToMicrocents accepts a leading minus sign, for admin
// adjustments that debit an account.
func ParseSignedUsdToMicrocents(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if rest, found := strings.CutPrefix(trimmed, "-"); found {
		m, err := ParseUsdToMicrocents(rest)
		if err != nil {
			return decimal.Zero, err
		}
		return m.Neg(), nil
	}
	return ParseUsdToMicrocents(trimmed)
}

func MicrocentsToCents(microcents decimal.Decimal, rounding Rounding) (int64, error) {
	if microcents.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative microcents %s", domain.ErrInvalidAmount, microcents.String())
	}
	cents, err := Round(microcents.Shift(centsShift), rounding)
	if err != nil {
		return 0, err
	}
	if cents.GreaterThan(maxSafeCents) {
		return 0, fmt.Errorf("%w: %s cents", domain.ErrOutOfRange, cents.String())
	}
	return cents.IntPart(), nil
}

// CheckRange returns ErrOutOfRange when |microcents| exceeds MaxMicrocents.
func CheckRange(microcents decimal.Decimal) error {
	if microcents.Abs().GreaterThan(MaxMicrocents) {
		return fmt.Errorf("%w: %s microcents", domain.ErrOutOfRange, microcents.String())
	}
	return nil
}

func CentsToMicrocents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Mul(decimal.NewFromInt(MicrocentsPerCent))
}

// FormatMicrocentsUsd renders microcents as a plain USD decimal without
// trailing zeros, e.g. 340000 -> "0.0034".
func FormatMicrocentsUsd(microcents decimal.Decimal) string {
	return microcents.Shift(-microcentShift).String()
}

func normalize(value any) (string, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case decimal.Decimal:
		s = v.String()
	case *decimal.Decimal:
		if v == nil {
			return "", fmt.Errorf("%w: nil amount", domain.ErrInvalidAmount)
		}
		s = v.String()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: non-finite amount", domain.ErrInvalidAmount)
		}
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: non-finite amount", domain.ErrInvalidAmount)
		}
		s = strconv.FormatFloat(f, 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	default:
		return "", fmt.Errorf("%w: unsupported amount type %T", domain.ErrInvalidAmount, value)
	}

	s = separators.Replace(strings.TrimSpace(s))
	if upper := strings.ToUpper(s); strings.HasPrefix(upper, "USD") {
		s = s[3:]
	} else if strings.HasSuffix(upper, "USD") {
		s = s[:len(s)-3]
	}

	if strings.ContainsAny(s, "eE") {
		return expandExponent(s)
	}
	return s, nil
}

// expandExponent rewrites scientific notation as a plain decimal literal. The
// order of magnitude is checked before expanding, so a huge exponent never
// turns into a huge string: values below the rounding precision collapse to
// zero and values above maxOrder are out of range.
func expandExponent(s string) (string, error) {
	expanded, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: malformed usd amount %q", domain.ErrInvalidAmount, s)
	}
	if expanded.IsZero() {
		return "0", nil
	}

	order := int64(expanded.Exponent()) + int64(expanded.NumDigits()) - 1
	switch {
	case order > maxOrder:
		return "", fmt.Errorf("%w: usd amount %q", domain.ErrOutOfRange, s)
	case order < -int64(FractionDigits)-1:
		if expanded.Sign() < 0 {
			return "-0", nil
		}
		return "0", nil
	}
	return expanded.String(), nil
}
