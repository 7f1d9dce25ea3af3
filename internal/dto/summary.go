package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// DailySummaryResponse is the cash position for one date, amounts in naira.
type DailySummaryResponse struct {
	Date         string `json:"date"`
	Currency     string `json:"currency"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	NetCash      string `json:"netCash"`
}

// RangeSummaryResponse is the cash position over an inclusive date range.
type RangeSummaryResponse struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Currency     string `json:"currency"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	NetProfit    string `json:"netProfit"`
}

// ProfitAndLossResponse is the full P&L statement, amounts in naira.
type ProfitAndLossResponse struct {
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	Currency           string `json:"currency"`
	TotalSales         string `json:"totalSales"`
	OpeningStock       string `json:"openingStock"`
	InventoryPurchases string `json:"inventoryPurchases"`
	ClosingStock       string `json:"closingStock"`
	COGS               string `json:"cogs"`
	COGSRaw            string `json:"cogsRaw"`
	OperatingExpenses  string `json:"operatingExpenses"`
	GrossProfit        string `json:"grossProfit"`
	NetProfit          string `json:"netProfit"`
}

// ActivityTotalsResponse is one side (income or expense) of a dashboard
// period block.
type ActivityTotalsResponse struct {
	Total string `json:"total"`
	Count int64  `json:"count"`
}

// PeriodActivityResponse is one dashboard period block.
type PeriodActivityResponse struct {
	Income            ActivityTotalsResponse `json:"income"`
	Expense           ActivityTotalsResponse `json:"expense"`
	Net               string                 `json:"net"`
	TotalTransactions int64                  `json:"totalTransactions"`
}

// DashboardResponse bundles the owner's business and rolling activity.
type DashboardResponse struct {
	Business          *BusinessResponse      `json:"business"`
	TransactionsToday PeriodActivityResponse `json:"transactionsToday"`
	TransactionsWeek  PeriodActivityResponse `json:"transactionsWeek"`
	TransactionsMonth PeriodActivityResponse `json:"transactionsMonth"`
}

// ToDailySummaryResponse converts a domain daily summary to its response form.
func ToDailySummaryResponse(s *domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:         s.Date.Format("2006-01-02"),
		Currency:     s.Currency,
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		NetCash:      s.NetCash.String(),
	}
}

// ToRangeSummaryResponse converts a domain range summary to its response form.
func ToRangeSummaryResponse(s *domain.RangeSummary) RangeSummaryResponse {
	return RangeSummaryResponse{
		StartDate:    s.StartDate.Format("2006-01-02"),
		EndDate:      s.EndDate.Format("2006-01-02"),
		Currency:     s.Currency,
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		NetProfit:    s.NetProfit.String(),
	}
}

// ToProfitAndLossResponse converts a domain P&L statement to its response form.
func ToProfitAndLossResponse(p *domain.ProfitAndLoss) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		StartDate:          p.StartDate.Format("2006-01-02"),
		EndDate:            p.EndDate.Format("2006-01-02"),
		Currency:           p.Currency,
		TotalSales:         p.TotalSales.String(),
		OpeningStock:       p.OpeningStock.String(),
		InventoryPurchases: p.InventoryPurchases.String(),
		ClosingStock:       p.ClosingStock.String(),
		COGS:               p.COGS.String(),
		COGSRaw:            p.COGSRaw.String(),
		OperatingExpenses:  p.OperatingExpenses.String(),
		GrossProfit:        p.GrossProfit.String(),
		NetProfit:          p.NetProfit.String(),
	}
}

func toPeriodActivityResponse(t domain.TypeTotals) PeriodActivityResponse {
	return PeriodActivityResponse{
		Income:            ActivityTotalsResponse{Total: t.Income.String(), Count: t.IncomeCount},
		Expense:           ActivityTotalsResponse{Total: t.Expense.String(), Count: t.ExpenseCount},
		Net:               (t.Income - t.Expense).String(),
		TotalTransactions: t.IncomeCount + t.ExpenseCount,
	}
}

// ToDashboardResponse converts dashboard activity plus the owner's business
// (may be nil) to the response form.
func ToDashboardResponse(business *domain.Business, activity *domain.DashboardActivity) DashboardResponse {
	resp := DashboardResponse{
		TransactionsToday: toPeriodActivityResponse(activity.Today),
		TransactionsWeek:  toPeriodActivityResponse(activity.Week),
		TransactionsMonth: toPeriodActivityResponse(activity.Month),
	}
	if business != nil {
		b := ToBusinessResponse(*business)
		resp.Business = &b
	}
	return resp
}
