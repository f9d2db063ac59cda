// Package pricing turns a gateway-reported USD cost into a billable
// breakdown. Markup is computed at microcent precision before any cent
// rounding, and every cent figure is rounded independently from its own
// microcent value.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
)

const (
	DefaultMarkupBps = 1500
	DefaultSource    = "gateway"

	bpsDenominatorShift int32 = -4 // 10000 bps = 100%
)

type Options struct {
	MarkupBps      int64
	CentsRounding  currency.Rounding
	MarkupRounding currency.Rounding
	MinChargeCents int64
	Source         string
}

func DefaultOptions() Options {
	return Options{
		MarkupBps:      DefaultMarkupBps,
		CentsRounding:  currency.RoundingCeil,
		MarkupRounding: currency.RoundingHalfUp,
		MinChargeCents: 0,
		Source:         DefaultSource,
	}
}

func (o Options) Validate() error {
	if o.MarkupBps < 0 {
		return fmt.Errorf("%w: negative markup bps %d", domain.ErrInvalidAmount, o.MarkupBps)
	}
	if o.MinChargeCents < 0 {
		return fmt.Errorf("%w: negative minimum charge %d", domain.ErrInvalidAmount, o.MinChargeCents)
	}
	if _, err := currency.ParseRounding(string(o.CentsRounding)); err != nil {
		return fmt.Errorf("cents rounding: %w", err)
	}
	if _, err := currency.ParseRounding(string(o.MarkupRounding)); err != nil {
		return fmt.Errorf("markup rounding: %w", err)
	}
	return nil
}

type CostBreakdown struct {
	Currency         string            `json:"currency"`
	Source           string            `json:"source"`
	MarkupBps        int64             `json:"markupBps"`
	BaseMicrocents   decimal.Decimal   `json:"baseMicrocents"`
	MarkupMicrocents decimal.Decimal   `json:"markupMicrocents"`
	TotalMicrocents  decimal.Decimal   `json:"totalMicrocents"`
	BaseCents        int64             `json:"baseCents"`
	MarkupCents      int64             `json:"markupCents"`
	TotalCents       int64             `json:"totalCents"`
	CentsRounding    currency.Rounding `json:"centsRounding"`
	MarkupRounding   currency.Rounding `json:"markupRounding"`
}

// Metadata flattens the breakdown into ledger entry metadata. Microcent
// values are kept as strings.
func (b CostBreakdown) Metadata() map[string]any {
	return map[string]any{
		"currency":         b.Currency,
		"source":           b.Source,
		"markupBps":        b.MarkupBps,
		"baseMicrocents":   b.BaseMicrocents.String(),
		"markupMicrocents": b.MarkupMicrocents.String(),
		"totalMicrocents":  b.TotalMicrocents.String(),
		"baseCents":        b.BaseCents,
		"markupCents":      b.MarkupCents,
		"totalCents":       b.TotalCents,
		"centsRounding":    string(b.CentsRounding),
		"markupRounding":   string(b.MarkupRounding),
	}
}

// PriceGatewayCost prices a single gateway cost. It is pure: the same input
// always yields the same breakdown.
func PriceGatewayCost(costUsd any, opts Options) (CostBreakdown, error) {
	if err := opts.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	base, err := currency.ParseUsdToMicrocents(costUsd)
	if err != nil {
		return CostBreakdown{}, err
	}

	markup, err := currency.Round(base.Mul(decimal.NewFromInt(opts.MarkupBps)).Shift(bpsDenominatorShift), opts.MarkupRounding)
	if err != nil {
		return CostBreakdown{}, err
	}
	total := base.Add(markup)

	baseCents, err := currency.MicrocentsToCents(base, opts.CentsRounding)
	if err != nil {
		return CostBreakdown{}, fmt.Errorf("base cents: %w", err)
	}
	markupCents, err := currency.MicrocentsToCents(markup, opts.CentsRounding)
	if err != nil {
		return CostBreakdown{}, fmt.Errorf("markup cents: %w", err)
	}
	totalCents, err := currency.MicrocentsToCents(total, opts.CentsRounding)
	if err != nil {
		return CostBreakdown{}, fmt.Errorf("total cents: %w", err)
	}

	if opts.MinChargeCents > 0 && totalCents > 0 && totalCents < opts.MinChargeCents {
		totalCents = opts.MinChargeCents
	}

	source := opts.Source
	if source == "" {
		source = DefaultSource
	}

	return CostBreakdown{
		Currency:         domain.CurrencyUSD,
		Source:           source,
		MarkupBps:        opts.MarkupBps,
		BaseMicrocents:   base,
		MarkupMicrocents: markup,
		TotalMicrocents:  total,
		BaseCents:        baseCents,
		MarkupCents:      markupCents,
		TotalCents:       totalCents,
		CentsRounding:    opts.CentsRounding,
		MarkupRounding:   opts.MarkupRounding,
	}, nil
}
