package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// TaxSummaryResponse renders the derived tax estimate, monetary amounts in
// naira. EffectiveTaxRate is a fraction (multiply by 100 for a percentage).
type TaxSummaryResponse struct {
	TotalRevenue       string  `json:"totalRevenue"`
	TotalExpenses      string  `json:"totalExpenses"`
	NetProfit          string  `json:"netProfit"`
	TaxableIncome      string  `json:"taxableIncome"`
	EstimatedIncomeTax string  `json:"estimatedIncomeTax"`
	EffectiveTaxRate   float64 `json:"effectiveTaxRate"`
	VATPayable         string  `json:"vatPayable"`
	TaxYear            int     `json:"taxYear"`
	CalculationMethod  string  `json:"calculationMethod"`
	Disclaimer         string  `json:"disclaimer"`
	PeriodStart        string  `json:"periodStart"`
	PeriodEnd          string  `json:"periodEnd"`
}

// ToTaxSummaryResponse converts a domain tax summary to its response form.
func ToTaxSummaryResponse(s *domain.TaxSummary) TaxSummaryResponse {
	rate, _ := s.EffectiveTaxRate.Float64()
	return TaxSummaryResponse{
		TotalRevenue:       s.TotalRevenue.String(),
		TotalExpenses:      s.TotalExpenses.String(),
		NetProfit:          s.NetProfit.String(),
		TaxableIncome:      s.TaxableIncome.String(),
		EstimatedIncomeTax: s.EstimatedIncomeTax.String(),
		EffectiveTaxRate:   rate,
		VATPayable:         s.VATPayable.String(),
		TaxYear:            s.TaxYear,
		CalculationMethod:  s.CalculationMethod,
		Disclaimer:         s.Disclaimer,
		PeriodStart:        s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          s.PeriodEnd.Format("2006-01-02"),
	}
}
