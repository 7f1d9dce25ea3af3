package domain

import "time"

// AccountingMode tells the profit-and-loss calculator whether inventory
// accounting applies. The caller resolves it once (explicit business filter,
// or the owner's registered business if any) so the calculator never does a
// hidden lookup.
type AccountingMode struct {
	BusinessID *string
}

// IndividualMode is the mode for owners with no business: COGS is zero and
// every expense counts as operating.
func IndividualMode() AccountingMode {
	return AccountingMode{}
}

// BusinessMode is the mode for a specific business: expenses split by
// subtype and inventory snapshots feed COGS.
func BusinessMode(businessID string) AccountingMode {
	return AccountingMode{BusinessID: &businessID}
}

// IsBusiness reports whether inventory accounting applies.
func (m AccountingMode) IsBusiness() bool {
	return m.BusinessID != nil
}

// DailySummary is the cash position for a single calendar date. Derived on
// every request, never persisted.
type DailySummary struct {
	Date         time.Time `json:"date"`
	Currency     string    `json:"currency"`
	TotalIncome  Money     `json:"totalIncome"`
	TotalExpense Money     `json:"totalExpense"`
	NetCash      Money     `json:"netCash"` // Income minus expense; may be negative
}

// RangeSummary is the cash position over an inclusive date range.
type RangeSummary struct {
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Currency     string    `json:"currency"`
	TotalIncome  Money     `json:"totalIncome"`
	TotalExpense Money     `json:"totalExpense"`
	NetProfit    Money     `json:"netProfit"` // May be negative
}

// ProfitAndLoss is a proper P&L statement for an inclusive date range.
// COGS = max(0, opening stock + inventory purchases - closing stock); the
// pre-clamp value is kept in COGSRaw so data-entry inconsistencies remain
// visible to the caller. Only NetProfit, GrossProfit and COGSRaw may be
// negative.
type ProfitAndLoss struct {
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Currency           string    `json:"currency"`
	TotalSales         Money     `json:"totalSales"`
	OpeningStock       Money     `json:"openingStock"`
	InventoryPurchases Money     `json:"inventoryPurchases"`
	ClosingStock       Money     `json:"closingStock"`
	COGS               Money     `json:"cogs"`
	COGSRaw            Money     `json:"cogsRaw"`
	OperatingExpenses  Money     `json:"operatingExpenses"`
	GrossProfit        Money     `json:"grossProfit"`
	NetProfit          Money     `json:"netProfit"`
}

// TotalExpenses is the combined expense figure fed into tax estimation.
func (p ProfitAndLoss) TotalExpenses() Money {
	return p.InventoryPurchases + p.OperatingExpenses
}

// TypeTotals carries per-type aggregates from the ledger query layer. An
// aggregate over an empty set is zero, never an error.
type TypeTotals struct {
	Income       Money
	Expense      Money
	IncomeCount  int64
	ExpenseCount int64
}

// DashboardActivity bundles the rolling aggregates shown on the dashboard:
// today, the last 7 days, and the last 30 days.
type DashboardActivity struct {
	Today TypeTotals
	Week  TypeTotals
	Month TypeTotals
}

// ExpenseSplit carries expense aggregates split by subtype. Untyped is the
// total of legacy records with no subtype; the calculator folds it per the
// active UntypedExpensePolicy.
type ExpenseSplit struct {
	Operating Money
	Inventory Money
	Untyped   Money
}
