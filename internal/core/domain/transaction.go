package domain

import "time"

// TransactionType indicates whether a transaction records money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ExpenseSubtype categorises an expense for tax purposes. Only meaningful
// when the transaction type is Expense; income transactions carry none.
type ExpenseSubtype string

const (
	// OperatingExpense covers rent, utilities, salaries and the like.
	OperatingExpense ExpenseSubtype = "operating"
	// InventoryPurchase is stock bought for resale; it feeds COGS.
	InventoryPurchase ExpenseSubtype = "inventory"
)

// UntypedExpensePolicy names the treatment of expense records that predate
// expense sub-typing and carry no subtype at all.
type UntypedExpensePolicy string

// UntypedAsOperating folds untyped expenses into operating expenses. This is
// the only policy in force; it exists as a named value so the fallback is an
// explicit, testable input rather than an implicit branch.
const UntypedAsOperating UntypedExpensePolicy = "treat_as_operating"

// Transaction is a single financial event in a user's ledger. It is income
// or expense, dated (calendar date, no time component), and optionally tied
// to a business. Deletion is a flag flip; soft-deleted transactions are
// excluded from every aggregation.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	OwnerID       string          `json:"ownerID"`       // FK -> users; every query is scoped to one owner
	BusinessID    *string         `json:"businessID"`    // Nullable; absent in individual mode
	Type          TransactionType `json:"type"`
	ExpenseType   *ExpenseSubtype `json:"expenseType"` // Nullable; nil on income and on legacy untyped expenses
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	TotalAmount   Money           `json:"totalAmount"` // Equals the sum of item amounts whenever items exist
	IsDeleted     bool            `json:"isDeleted"`
	AuditFields
}

// LineItem belongs to exactly one Transaction and is replaced wholesale when
// the parent's item set is updated.
type LineItem struct {
	ItemID        string    `json:"itemID"`
	TransactionID string    `json:"transactionID"`
	Description   string    `json:"description"`
	Amount        Money     `json:"amount"` // Strictly positive
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SumItems returns the total of the given line items.
func SumItems(items []LineItem) Money {
	var total Money
	for _, item := range items {
		total += item.Amount
	}
	return total
}
