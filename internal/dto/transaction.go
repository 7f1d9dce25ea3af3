package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// CreateLineItemRequest is one line item of a transaction being created or
// replaced. Amount is a major-unit decimal string and must be positive.
type CreateLineItemRequest struct {
	Description string `json:"description" binding:"required,max=255"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"max=100"`
}

// CreateTransactionRequest creates a ledger entry. Either Items is non-empty
// (the total is computed as their sum) or TotalAmount is set explicitly.
type CreateTransactionRequest struct {
	BusinessID  *string                 `json:"businessID" binding:"omitempty,uuid"`
	Type        string                  `json:"type" binding:"required,oneof=income expense"`
	ExpenseType *string                 `json:"expenseType" binding:"omitempty,oneof=operating inventory"`
	Date        string                  `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                  `json:"description"`
	TotalAmount *string                 `json:"totalAmount" binding:"required_without=Items"`
	Items       []CreateLineItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateTransactionRequest replaces a transaction's mutable fields and its
// full item set. The stored total is recomputed from the new items.
type UpdateTransactionRequest struct {
	Type        string                  `json:"type" binding:"required,oneof=income expense"`
	ExpenseType *string                 `json:"expenseType" binding:"omitempty,oneof=operating inventory"`
	Date        string                  `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                  `json:"description"`
	TotalAmount *string                 `json:"totalAmount" binding:"required_without=Items"`
	Items       []CreateLineItemRequest `json:"items" binding:"omitempty,dive"`
}

// ListTransactionsRequest filters the owner's ledger listing.
type ListTransactionsRequest struct {
	BusinessID *string `form:"business_id" binding:"omitempty,uuid"`
	Type       *string `form:"type" binding:"omitempty,oneof=income expense"`
	StartDate  *string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page       int     `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// LineItemResponse renders a line item with its amount in naira.
type LineItemResponse struct {
	ItemID      string `json:"itemID"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

// TransactionResponse renders a transaction with amounts in naira. Internal
// aggregation stays in kobo; the conversion happens only here at the
// presentation boundary.
type TransactionResponse struct {
	TransactionID string             `json:"transactionID"`
	BusinessID    *string            `json:"businessID,omitempty"`
	Type          string             `json:"type"`
	ExpenseType   *string            `json:"expenseType,omitempty"`
	Date          string             `json:"date"`
	Description   string             `json:"description"`
	TotalAmount   string             `json:"totalAmount"`
	Items         []LineItemResponse `json:"items,omitempty"`
}

// ListTransactionsResponse is a paginated ledger listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// ToLineItemResponse converts a domain line item to its response form.
func ToLineItemResponse(item domain.LineItem) LineItemResponse {
	return LineItemResponse{
		ItemID:      item.ItemID,
		Description: item.Description,
		Amount:      item.Amount.String(),
		Category:    item.Category,
	}
}

// ToTransactionResponse converts a domain transaction and its items to the
// response form.
func ToTransactionResponse(txn domain.Transaction, items []domain.LineItem) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		BusinessID:    txn.BusinessID,
		Type:          string(txn.Type),
		Date:          txn.Date.Format("2006-01-02"),
		Description:   txn.Description,
		TotalAmount:   txn.TotalAmount.String(),
	}
	if txn.ExpenseType != nil {
		et := string(*txn.ExpenseType)
		resp.ExpenseType = &et
	}
	if len(items) > 0 {
		resp.Items = make([]LineItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = ToLineItemResponse(item)
		}
	}
	return resp
}
