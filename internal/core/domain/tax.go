package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one band of a cumulative progressive rate table. UpperBound
// is the cumulative upper limit on chargeable income in naira; nil means the
// band is unbounded and must terminate the table.
type TaxBracket struct {
	UpperBound *decimal.Decimal `json:"upperBound"`
	Rate       decimal.Decimal  `json:"rate"`
}

// TaxRuleSet is a complete, static tax configuration. It is validated once
// at calculator construction, never per call.
type TaxRuleSet struct {
	Year              int
	ExemptThreshold   decimal.Decimal // Absolute deduction from gross income, in naira
	Brackets          []TaxBracket    // Ascending cumulative upper bounds; last is unbounded
	VATRate           decimal.Decimal
	CalculationMethod string
	Disclaimer        string
}

// Validate checks the structural invariants of the rule set: at least one
// bracket, strictly increasing positive upper bounds, rates in (0, 1], and
// an unbounded final bracket so a band walk always covers the full income.
func (r TaxRuleSet) Validate() error {
	if len(r.Brackets) == 0 {
		return fmt.Errorf("tax rule set %d has no brackets", r.Year)
	}
	if r.ExemptThreshold.IsNegative() {
		return fmt.Errorf("tax rule set %d has negative exemption threshold", r.Year)
	}
	if r.VATRate.IsNegative() {
		return fmt.Errorf("tax rule set %d has negative VAT rate", r.Year)
	}
	prev := decimal.Zero
	for i, b := range r.Brackets {
		last := i == len(r.Brackets)-1
		if b.Rate.LessThanOrEqual(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s out of range (0, 1]", i, b.Rate)
		}
		if b.UpperBound == nil {
			if !last {
				return fmt.Errorf("bracket %d: unbounded bracket before end of table", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("final bracket must be unbounded")
		}
		if b.UpperBound.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d: upper bound %s not above previous bound %s", i, b.UpperBound, prev)
		}
		prev = *b.UpperBound
	}
	return nil
}

// NigeriaTaxAct2026 is the simplified PIT rule set for Nigerian sole
// proprietors under the Nigeria Tax Act 2025 (effective January 1, 2026).
// The first ₦800,000 of annual income is fully exempt; the bands below apply
// to chargeable income only, i.e. income after the exemption is removed.
func NigeriaTaxAct2026() TaxRuleSet {
	bound := func(n int64) *decimal.Decimal {
		d := decimal.NewFromInt(n)
		return &d
	}
	return TaxRuleSet{
		Year:            2026,
		ExemptThreshold: decimal.NewFromInt(800_000),
		Brackets: []TaxBracket{
			{UpperBound: bound(2_200_000), Rate: decimal.NewFromFloat(0.15)},
			{UpperBound: bound(11_200_000), Rate: decimal.NewFromFloat(0.18)},
			{UpperBound: bound(24_200_000), Rate: decimal.NewFromFloat(0.21)},
			{UpperBound: bound(49_200_000), Rate: decimal.NewFromFloat(0.23)},
			{UpperBound: nil, Rate: decimal.NewFromFloat(0.25)},
		},
		VATRate: decimal.NewFromFloat(0.075),
		CalculationMethod: "Nigeria Tax Act 2025 - PIT for Sole Proprietors " +
			"(₦800,000 exemption applied)",
		Disclaimer: "These are estimates only and do not constitute official tax filing with FIRS " +
			"(Federal Inland Revenue Service). Consult a licensed tax professional for " +
			"accurate tax computation and filing.",
	}
}

// TaxSummary is the derived tax estimate for an already-aggregated period.
// The calculator is period-agnostic; PeriodStart/PeriodEnd are attached by
// the caller.
type TaxSummary struct {
	TotalRevenue       Money           `json:"totalRevenue"`
	TotalExpenses      Money           `json:"totalExpenses"`
	NetProfit          Money           `json:"netProfit"`     // Clamped at zero: a loss is no taxable income, not a credit
	TaxableIncome      Money           `json:"taxableIncome"` // Equals NetProfit; the exemption is applied inside PIT
	EstimatedIncomeTax Money           `json:"estimatedIncomeTax"`
	EffectiveTaxRate   decimal.Decimal `json:"effectiveTaxRate"` // Fraction rounded to 4 places; zero when NetProfit is zero
	VATPayable         Money           `json:"vatPayable"`
	TaxYear            int             `json:"taxYear"`
	CalculationMethod  string          `json:"calculationMethod"`
	Disclaimer         string          `json:"disclaimer"`
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
}
