package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// TaxCalculator applies one static tax rule set: a cumulative progressive
// PIT band walk over exemption-adjusted income, plus flat-rate VAT on gross
// revenue. It holds no mutable state; concurrent use needs no coordination.
type TaxCalculator struct {
	rules      domain.TaxRuleSet
	vatEnabled bool
}

// NewTaxCalculator validates the rule set and builds a calculator. An
// invalid bracket table is a construction-time failure, never a per-call one.
func NewTaxCalculator(rules domain.TaxRuleSet, vatEnabled bool) (*TaxCalculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax rule set: %w", err)
	}
	return &TaxCalculator{rules: rules, vatEnabled: vatEnabled}, nil
}

// PersonalIncomeTax calculates PIT in kobo for an annual income in kobo.
// The exemption threshold is an absolute deduction from gross income, not a
// zero-rate band; the brackets then apply cumulatively to what remains.
func (c *TaxCalculator) PersonalIncomeTax(taxableIncome domain.Money) domain.Money {
	if taxableIncome <= 0 {
		return 0
	}

	grossIncome := taxableIncome.Decimal()
	chargeable := grossIncome.Sub(c.rules.ExemptThreshold)
	if chargeable.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	tax := decimal.Zero
	previousLimit := decimal.Zero
	for _, bracket := range c.rules.Brackets {
		if chargeable.LessThanOrEqual(previousLimit) {
			break
		}
		// Tax the slice of chargeable income above the previous bound and
		// at or below this one. The final bracket has no upper bound, so
		// the walk always reaches full coverage.
		taxableInBand := chargeable.Sub(previousLimit)
		if bracket.UpperBound != nil {
			bandWidth := bracket.UpperBound.Sub(previousLimit)
			if taxableInBand.GreaterThan(bandWidth) {
				taxableInBand = bandWidth
			}
			previousLimit = *bracket.UpperBound
		}
		tax = tax.Add(taxableInBand.Mul(bracket.Rate))
		if bracket.UpperBound == nil {
			break
		}
	}

	return domain.MoneyFromDecimal(tax)
}

// VAT calculates value-added tax in kobo on gross revenue in kobo. Zero when
// VAT is disabled or revenue is not positive.
func (c *TaxCalculator) VAT(revenue domain.Money) domain.Money {
	if !c.vatEnabled || revenue <= 0 {
		return 0
	}
	return domain.MoneyFromDecimal(revenue.Decimal().Mul(c.rules.VATRate))
}

// Summarize composes PIT and VAT into a tax summary for already-aggregated
// revenue and expense totals. The calculator is period-agnostic; the caller
// attaches period boundaries.
func (c *TaxCalculator) Summarize(totalRevenue, totalExpenses domain.Money) domain.TaxSummary {
	// A loss yields zero taxable income, never a tax credit.
	netProfit := (totalRevenue - totalExpenses).ClampNonNegative()

	pit := c.PersonalIncomeTax(netProfit)
	vat := c.VAT(totalRevenue)

	effectiveRate := decimal.Zero
	if netProfit > 0 {
		effectiveRate = decimal.NewFromInt(int64(pit)).
			Div(decimal.NewFromInt(int64(netProfit))).
			Round(4)
	}

	return domain.TaxSummary{
		TotalRevenue:       totalRevenue,
		TotalExpenses:      totalExpenses,
		NetProfit:          netProfit,
		TaxableIncome:      netProfit,
		EstimatedIncomeTax: pit,
		EffectiveTaxRate:   effectiveRate,
		VATPayable:         vat,
		TaxYear:            c.rules.Year,
		CalculationMethod:  c.rules.CalculationMethod,
		Disclaimer:         c.rules.Disclaimer,
	}
}

// taxService implements the TaxSvcFacade interface by feeding the P&L
// calculator's output into a TaxCalculator. It never queries the ledger
// directly.
type taxService struct {
	BaseService
	summary portssvc.SummarySvcFacade
	rules   domain.TaxRuleSet
}

// NewTaxService creates a new tax service over the given rule set. The rule
// set is validated up front so construction fails fast on a malformed table.
func NewTaxService(summary portssvc.SummarySvcFacade, rules domain.TaxRuleSet) (portssvc.TaxSvcFacade, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax rule set: %w", err)
	}
	return &taxService{summary: summary, rules: rules}, nil
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// TaxSummary computes the P&L for the period and derives the tax estimate
// from its revenue and combined expense totals.
func (s *taxService) TaxSummary(ctx context.Context, ownerID string, start, end time.Time, mode domain.AccountingMode, vatEnabled bool) (*domain.TaxSummary, error) {
	pl, err := s.summary.ProfitAndLoss(ctx, ownerID, start, end, mode)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute profit and loss for tax summary",
			slog.String("owner_id", ownerID))
		return nil, err
	}

	calculator, err := NewTaxCalculator(s.rules, vatEnabled)
	if err != nil {
		// Unreachable: the rule set was validated at service construction.
		return nil, err
	}

	summary := calculator.Summarize(pl.TotalSales, pl.TotalExpenses())
	summary.PeriodStart = start
	summary.PeriodEnd = end

	s.LogInfo(ctx, "Tax summary computed",
		slog.String("owner_id", ownerID),
		slog.Int("tax_year", summary.TaxYear),
		slog.Int64("taxable_income", int64(summary.TaxableIncome)),
		slog.Int64("estimated_income_tax", int64(summary.EstimatedIncomeTax)))
	return &summary, nil
}
