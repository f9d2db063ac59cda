package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
)

func opts(bps int64, cents, markup currency.Rounding, minCharge int64) Options {
	o := DefaultOptions()
	o.MarkupBps = bps
	o.CentsRounding = cents
	o.MarkupRounding = markup
	o.MinChargeCents = minCharge
	return o
}

func TestPriceGatewayCost(t *testing.T) {
	tests := []struct {
		name           string
		cost           any
		options        Options
		baseMicrocents string
		markupMicro    string
		totalMicro     string
		baseCents      int64
		markupCents    int64
		totalCents     int64
	}{
		{
			name:           "One cent with default markup",
			cost:           "0.01",
			options:        DefaultOptions(),
			baseMicrocents: "1000000",
			markupMicro:    "150000",
			totalMicro:     "1150000",
			baseCents:      1,
			markupCents:    1,
			totalCents:     2,
		},
		{
			name:           "Floor cents rounding",
			cost:           "0.01",
			options:        opts(1500, currency.RoundingFloor, currency.RoundingHalfUp, 0),
			baseMicrocents: "1000000",
			markupMicro:    "150000",
			totalMicro:     "1150000",
			baseCents:      1,
			markupCents:    0,
			totalCents:     1,
		},
		{
			name:           "Markup rounds half-up at microcent precision",
			cost:           "0.00000003",
			options:        DefaultOptions(),
			baseMicrocents: "3",
			markupMicro:    "0",
			totalMicro:     "3",
			baseCents:      1,
			markupCents:    0,
			totalCents:     1,
		},
		{
			name:           "Markup half microcent rounds up",
			cost:           "0.0000001",
			options:        opts(500, currency.RoundingCeil, currency.RoundingHalfUp, 0),
			baseMicrocents: "10",
			markupMicro:    "1",
			totalMicro:     "11",
			baseCents:      1,
			markupCents:    1,
			totalCents:     1,
		},
		{
			name:           "Markup ceil rounding",
			cost:           "0.00000003",
			options:        opts(1500, currency.RoundingCeil, currency.RoundingCeil, 0),
			baseMicrocents: "3",
			markupMicro:    "1",
			totalMicro:     "4",
			baseCents:      1,
			markupCents:    1,
			totalCents:     1,
		},
		{
			name:           "Zero markup",
			cost:           "1.234",
			options:        opts(0, currency.RoundingCeil, currency.RoundingHalfUp, 0),
			baseMicrocents: "123400000",
			markupMicro:    "0",
			totalMicro:     "123400000",
			baseCents:      124,
			markupCents:    0,
			totalCents:     124,
		},
		{
			name:           "Minimum charge lifts small usage",
			cost:           "0.00000015",
			options:        opts(1500, currency.RoundingCeil, currency.RoundingHalfUp, 5),
			baseMicrocents: "15",
			markupMicro:    "2",
			totalMicro:     "17",
			baseCents:      1,
			markupCents:    1,
			totalCents:     5,
		},
		{
			name:           "Minimum charge below computed total is ignored",
			cost:           "2",
			options:        opts(1500, currency.RoundingCeil, currency.RoundingHalfUp, 5),
			baseMicrocents: "200000000",
			markupMicro:    "30000000",
			totalMicro:     "230000000",
			baseCents:      200,
			markupCents:    30,
			totalCents:     230,
		},
		{
			name:           "Sub-microcent cost keeps exact values",
			cost:           "0.000000001",
			options:        opts(1500, currency.RoundingCeil, currency.RoundingHalfUp, 1),
			baseMicrocents: "0",
			markupMicro:    "0",
			totalMicro:     "0",
			baseCents:      0,
			markupCents:    0,
			totalCents:     0,
		},
		{
			name:           "Scientific notation cost",
			cost:           "3.4e-3",
			options:        DefaultOptions(),
			baseMicrocents: "340000",
			markupMicro:    "51000",
			totalMicro:     "391000",
			baseCents:      1,
			markupCents:    1,
			totalCents:     1,
		},
		{
			name:           "Float cost",
			cost:           0.5,
			options:        DefaultOptions(),
			baseMicrocents: "50000000",
			markupMicro:    "7500000",
			totalMicro:     "57500000",
			baseCents:      50,
			markupCents:    8,
			totalCents:     58,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := PriceGatewayCost(tt.cost, tt.options)
			require.NoError(t, err)

			assert.Equal(t, domain.CurrencyUSD, b.Currency)
			assert.Equal(t, DefaultSource, b.Source)
			assert.Equal(t, tt.options.MarkupBps, b.MarkupBps)
			assert.Equal(t, tt.baseMicrocents, b.BaseMicrocents.String())
			assert.Equal(t, tt.markupMicro, b.MarkupMicrocents.String())
			assert.Equal(t, tt.totalMicro, b.TotalMicrocents.String())
			assert.Equal(t, tt.baseCents, b.BaseCents)
			assert.Equal(t, tt.markupCents, b.MarkupCents)
			assert.Equal(t, tt.totalCents, b.TotalCents)
			assert.Equal(t, tt.options.CentsRounding, b.CentsRounding)
			assert.Equal(t, tt.options.MarkupRounding, b.MarkupRounding)
		})
	}
}

func TestPriceGatewayCost_ZeroCostNeverBilled(t *testing.T) {
	for _, bps := range []int64{0, 1, 1500, 10000, 250000} {
		for _, minCharge := range []int64{0, 1, 50} {
			b, err := PriceGatewayCost("0", opts(bps, currency.RoundingCeil, currency.RoundingHalfUp, minCharge))
			require.NoError(t, err)
			assert.True(t, b.BaseMicrocents.IsZero())
			assert.True(t, b.MarkupMicrocents.IsZero())
			assert.True(t, b.TotalMicrocents.IsZero())
			assert.Zero(t, b.BaseCents)
			assert.Zero(t, b.MarkupCents)
			assert.Zero(t, b.TotalCents)
		}
	}
}

func TestPriceGatewayCost_MinimumChargeOnNonzeroUsage(t *testing.T) {
	b, err := PriceGatewayCost("0.00000015", opts(1500, currency.RoundingCeil, currency.RoundingHalfUp, 1))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.TotalCents, int64(1))

	b, err = PriceGatewayCost("0.00000015", opts(1500, currency.RoundingFloor, currency.RoundingHalfUp, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.TotalCents, "floor rounding to zero cents is zero usage for billing")
}

func TestPriceGatewayCost_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cost    any
		options Options
		wantErr error
	}{
		{name: "Malformed cost", cost: "free", options: DefaultOptions(), wantErr: domain.ErrInvalidAmount},
		{name: "Negative cost", cost: "-0.01", options: DefaultOptions(), wantErr: domain.ErrInvalidAmount},
		{name: "Negative markup", cost: "0.01", options: opts(-1, currency.RoundingCeil, currency.RoundingHalfUp, 0), wantErr: domain.ErrInvalidAmount},
		{name: "Negative minimum charge", cost: "0.01", options: opts(1500, currency.RoundingCeil, currency.RoundingHalfUp, -1), wantErr: domain.ErrInvalidAmount},
		{name: "Unknown rounding", cost: "0.01", options: opts(1500, "bankers", currency.RoundingHalfUp, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceGatewayCost(tt.cost, tt.options)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPriceGatewayCost_Idempotent(t *testing.T) {
	first, err := PriceGatewayCost("0.0123456789", DefaultOptions())
	require.NoError(t, err)
	second, err := PriceGatewayCost("0.0123456789", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func randomCosts(n int) []string {
	rnd := rand.New(rand.NewSource(20240601))
	costs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		micro := decimal.NewFromInt(rnd.Int63n(10_000_000_000))
		costs = append(costs, currency.FormatMicrocentsUsd(micro))
	}
	return costs
}

func TestPriceGatewayCost_TotalIsBasePlusMarkup(t *testing.T) {
	roundings := []currency.Rounding{currency.RoundingCeil, currency.RoundingFloor, currency.RoundingHalfUp}
	for _, cost := range randomCosts(300) {
		for _, bps := range []int64{0, 1, 999, 1500, 3333, 10000, 123456} {
			for _, r := range roundings {
				b, err := PriceGatewayCost(cost, opts(bps, r, r, 0))
				require.NoError(t, err)
				assert.True(t, b.TotalMicrocents.Equal(b.BaseMicrocents.Add(b.MarkupMicrocents)), "cost %s bps %d", cost, bps)
				assert.GreaterOrEqual(t, b.MarkupMicrocents.Sign(), 0)
			}
		}
	}
}

// Cent figures are rounded independently, so MarkupCents may differ from
// TotalCents-BaseCents by one cent. This is intended billing behavior.
func TestPriceGatewayCost_IndependentCentRounding(t *testing.T) {
	b, err := PriceGatewayCost("0.005", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.BaseCents)
	assert.Equal(t, int64(1), b.MarkupCents)
	assert.Equal(t, int64(1), b.TotalCents)
	assert.Equal(t, int64(1), b.MarkupCents-(b.TotalCents-b.BaseCents))

	bounds := map[currency.Rounding][2]int64{
		currency.RoundingCeil:   {0, 1},
		currency.RoundingFloor:  {-1, 0},
		currency.RoundingHalfUp: {-1, 1},
	}
	seen := map[int64]bool{}
	for r, bound := range bounds {
		for _, cost := range randomCosts(500) {
			b, err := PriceGatewayCost(cost, opts(1500, r, currency.RoundingHalfUp, 0))
			require.NoError(t, err)
			diff := b.MarkupCents - (b.TotalCents - b.BaseCents)
			assert.GreaterOrEqual(t, diff, bound[0], "rounding %s cost %s", r, cost)
			assert.LessOrEqual(t, diff, bound[1], "rounding %s cost %s", r, cost)
			seen[diff] = true
		}
	}
	assert.True(t, seen[0])
}

func TestCostBreakdown_Metadata(t *testing.T) {
	b, err := PriceGatewayCost("0.01", DefaultOptions())
	require.NoError(t, err)

	md := b.Metadata()
	assert.Equal(t, "1150000", md["totalMicrocents"])
	assert.Equal(t, int64(2), md["totalCents"])
	assert.Equal(t, "ceil", md["centsRounding"])
	assert.Equal(t, int64(1500), md["markupBps"])
}
