package currency

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/creditmeter/internal/domain"
)

func TestParseUsdToMicrocents(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
		wantErr  error
	}{
		{name: "Sub-cent string", value: "0.0034", expected: "340000"},
		{name: "One cent", value: "0.01", expected: "1000000"},
		{name: "Float input", value: 1.5, expected: "150000000"},
		{name: "Float32 input", value: float32(0.25), expected: "25000000"},
		{name: "Integer input", value: 12, expected: "1200000000"},
		{name: "Int64 input", value: int64(3), expected: "300000000"},
		{name: "Symbol and separators", value: "$12,345.60", expected: "1234560000000"},
		{name: "Currency code suffix", value: "4.2 USD", expected: "420000000"},
		{name: "Currency code prefix", value: "usd 4.2", expected: "420000000"},
		{name: "Explicit plus sign", value: "+0.5", expected: "50000000"},
		{name: "Scientific notation string", value: "1.5e-7", expected: "15"},
		{name: "Scientific notation upper case", value: "2E-3", expected: "200000"},
		{name: "Scientific float", value: 1.5e-7, expected: "15"},
		{name: "json.Number", value: json.Number("0.00012"), expected: "12000"},
		{name: "Decimal input", value: decimal.RequireFromString("0.1"), expected: "10000000"},
		{name: "Eight fractional digits exact", value: "0.12345678", expected: "12345678"},
		{name: "Ninth digit rounds up at five", value: "0.000000015", expected: "2"},
		{name: "Ninth digit rounds down below five", value: "0.000000014", expected: "1"},
		{name: "Half microcent rounds up", value: "0.000000005", expected: "1"},
		{name: "Zero", value: "0", expected: "0"},
		{name: "Negative zero", value: "-0", expected: "0"},
		{name: "Whitespace", value: "  7.00 ", expected: "700000000"},
		{name: "Empty string", value: "", wantErr: domain.ErrInvalidAmount},
		{name: "Letters", value: "abc", wantErr: domain.ErrInvalidAmount},
		{name: "Two dots", value: "1.2.3", wantErr: domain.ErrInvalidAmount},
		{name: "Leading dot", value: ".5", wantErr: domain.ErrInvalidAmount},
		{name: "Trailing dot", value: "5.", wantErr: domain.ErrInvalidAmount},
		{name: "Negative", value: "-0.01", wantErr: domain.ErrInvalidAmount},
		{name: "Negative with symbol", value: "-$5", wantErr: domain.ErrInvalidAmount},
		{name: "Negative float", value: -1.0, wantErr: domain.ErrInvalidAmount},
		{name: "NaN", value: math.NaN(), wantErr: domain.ErrInvalidAmount},
		{name: "Infinity", value: math.Inf(1), wantErr: domain.ErrInvalidAmount},
		{name: "Broken exponent", value: "1e", wantErr: domain.ErrInvalidAmount},
		{name: "Huge positive exponent", value: "1e20000000", wantErr: domain.ErrOutOfRange},
		{name: "Huge negative exponent", value: "1e-20000000", expected: "0"},
		{name: "Exponent above order limit", value: "1e31", wantErr: domain.ErrOutOfRange},
		{name: "Exponent at order limit", value: "1e30", expected: "100000000000000000000000000000000000000"},
		{name: "Tiny exponent below precision", value: "4.9e-10", expected: "0"},
		{name: "Tiny exponent at precision", value: "5e-9", expected: "1"},
		{name: "Long mantissa with negative exponent", value: "123456789012345678901234567890e-27", expected: "12345678901"},
		{name: "Zero with huge exponent", value: "0e999999999", expected: "0"},
		{name: "Unsupported type", value: []byte("1"), wantErr: domain.ErrInvalidAmount},
		{name: "Nil", value: nil, wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseUsdToMicrocents(tt.value)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.String())
		})
	}
}

func TestParseUsdToMicrocents_RoundTrip(t *testing.T) {
	values := []string{
		"0", "0.01", "0.0034", "1", "1.5", "12345.6", "0.00000001", "0.12345678",
		"99999999.99999999", "1000000000000", "3.14159265", "0.1",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			m, err := ParseUsdToMicrocents(v)
			require.NoError(t, err)
			assert.True(t, m.IsInteger())
			assert.Equal(t, v, FormatMicrocentsUsd(m))

			back, err := ParseUsdToMicrocents(FormatMicrocentsUsd(m))
			require.NoError(t, err)
			assert.True(t, m.Equal(back))
		})
	}
}

func TestSafeParseUsdToMicrocents(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		ok       bool
		expected string
	}{
		{name: "Valid", value: "0.02", ok: true, expected: "2000000"},
		{name: "Nil", value: nil, ok: false},
		{name: "Blank", value: "   ", ok: false},
		{name: "Malformed", value: "n/a", ok: false},
		{name: "Negative", value: "-1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := SafeParseUsdToMicrocents(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, result.String())
			} else {
				assert.True(t, result.IsZero())
			}
		})
	}
}

func TestParseSignedUsdToMicrocents(t *testing.T) {
	m, err := ParseSignedUsdToMicrocents("-1.25")
	require.NoError(t, err)
	assert.Equal(t, "-125000000", m.String())

	m, err = ParseSignedUsdToMicrocents("$2")
	require.NoError(t, err)
	assert.Equal(t, "200000000", m.String())

	_, err = ParseSignedUsdToMicrocents("--1")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestMicrocentsToCents(t *testing.T) {
	tests := []struct {
		name       string
		microcents decimal.Decimal
		rounding   Rounding
		expected   int64
		wantErr    error
	}{
		{name: "Ceil fraction", microcents: decimal.NewFromInt(1_150_000), rounding: RoundingCeil, expected: 2},
		{name: "Floor fraction", microcents: decimal.NewFromInt(1_150_000), rounding: RoundingFloor, expected: 1},
		{name: "Round below half", microcents: decimal.NewFromInt(1_150_000), rounding: RoundingHalfUp, expected: 1},
		{name: "Round at half", microcents: decimal.NewFromInt(1_500_000), rounding: RoundingHalfUp, expected: 2},
		{name: "Ceil exact", microcents: decimal.NewFromInt(3_000_000), rounding: RoundingCeil, expected: 3},
		{name: "Ceil tiny", microcents: decimal.NewFromInt(15), rounding: RoundingCeil, expected: 1},
		{name: "Floor tiny", microcents: decimal.NewFromInt(15), rounding: RoundingFloor, expected: 0},
		{name: "Zero", microcents: decimal.Zero, rounding: RoundingCeil, expected: 0},
		{name: "Largest safe value", microcents: decimal.NewFromInt(MaxSafeCents).Mul(decimal.NewFromInt(MicrocentsPerCent)), rounding: RoundingCeil, expected: MaxSafeCents},
		{name: "Above safe bound", microcents: decimal.NewFromInt(MaxSafeCents).Mul(decimal.NewFromInt(MicrocentsPerCent)).Add(decimal.NewFromInt(1)), rounding: RoundingCeil, wantErr: domain.ErrOutOfRange},
		{name: "Negative", microcents: decimal.NewFromInt(-1), rounding: RoundingCeil, wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MicrocentsToCents(tt.microcents, tt.rounding)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := MicrocentsToCents(decimal.NewFromInt(1), Rounding("bankers"))
	assert.Error(t, err)
}

func TestParseRounding(t *testing.T) {
	r, err := ParseRounding(" CEIL ")
	require.NoError(t, err)
	assert.Equal(t, RoundingCeil, r)

	r, err = ParseRounding("round")
	require.NoError(t, err)
	assert.Equal(t, RoundingHalfUp, r)

	_, err = ParseRounding("up")
	assert.Error(t, err)
}

func TestParseUsdToMicrocents_HugeExponentReturnsQuickly(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ParseUsdToMicrocents("1e20000000")
		_, _ = ParseUsdToMicrocents("1e-20000000")
		_, _ = ParseSignedUsdToMicrocents("-1e2000000000")
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("parsing a huge exponent did not return")
	}
}

func TestCheckRange(t *testing.T) {
	assert.NoError(t, CheckRange(MaxMicrocents))
	assert.NoError(t, CheckRange(MaxMicrocents.Neg()))
	assert.ErrorIs(t, CheckRange(MaxMicrocents.Add(decimal.NewFromInt(1))), domain.ErrOutOfRange)
	assert.ErrorIs(t, CheckRange(MaxMicrocents.Add(decimal.NewFromInt(1)).Neg()), domain.ErrOutOfRange)
}

func TestCentsToMicrocents(t *testing.T) {
	assert.Equal(t, "2000000", CentsToMicrocents(2).String())
	assert.Equal(t, "0", CentsToMicrocents(0).String())
}
