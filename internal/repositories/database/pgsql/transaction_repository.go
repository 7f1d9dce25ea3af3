package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

var FULL_TRANSACTION_SELECT_QUERY = `
SELECT
	t.transaction_id, t.owner_id, t.business_id, t.type, t.expense_type,
	t.date, t.description, t.total_amount, t.is_deleted,
	t.created_at, t.last_updated_at
FROM transactions t
`

// buildFilterClause turns a TransactionFilter into a WHERE fragment and the
// matching positional args. Soft-deleted rows are always excluded.
func buildFilterClause(filter portsrepo.TransactionFilter) (string, []any) {
	var sb strings.Builder
	args := []any{filter.OwnerID}
	sb.WriteString("WHERE t.owner_id = $1 AND t.is_deleted = FALSE")

	next := func() int { return len(args) + 1 }

	if filter.BusinessID != nil {
		fmt.Fprintf(&sb, " AND t.business_id = $%d", next())
		args = append(args, *filter.BusinessID)
	}
	if filter.Type != nil {
		fmt.Fprintf(&sb, " AND t.type = $%d", next())
		args = append(args, *filter.Type)
	}
	if filter.Date != nil {
		fmt.Fprintf(&sb, " AND t.date = $%d", next())
		args = append(args, *filter.Date)
	}
	if filter.FromDate != nil {
		fmt.Fprintf(&sb, " AND t.date >= $%d", next())
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		fmt.Fprintf(&sb, " AND t.date <= $%d", next())
		args = append(args, *filter.ToDate)
	}
	return sb.String(), args
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.OwnerID,
		&txn.BusinessID,
		&txn.Type,
		&txn.ExpenseType,
		&txn.Date,
		&txn.Description,
		&txn.TotalAmount,
		&txn.IsDeleted,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// insertItems batch-inserts the full item set for a transaction.
func insertItems(ctx context.Context, tx pgx.Tx, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_items (item_id, transaction_id, description, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		batch.Queue(query,
			item.ItemID,
			item.TransactionID,
			item.Description,
			item.Amount,
			item.Category,
			item.CreatedAt,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert transaction item: %w", err)
		}
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transactions (
			transaction_id, owner_id, business_id, type, expense_type,
			date, description, total_amount, is_deleted, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		txn.TransactionID,
		txn.OwnerID,
		txn.BusinessID,
		txn.Type,
		txn.ExpenseType,
		txn.Date,
		txn.Description,
		txn.TotalAmount,
		txn.IsDeleted,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := FULL_TRANSACTION_SELECT_QUERY + `WHERE t.owner_id = $1 AND t.transaction_id = $2 AND t.is_deleted = FALSE`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, ownerID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error) {
	query := `
		SELECT item_id, transaction_id, description, amount, category, created_at
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.ItemID,
			&item.TransactionID,
			&item.Description,
			&item.Amount,
			&item.Category,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", err)
	}
	return items, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	clause, args := buildFilterClause(filter)
	query := FULL_TRANSACTION_SELECT_QUERY + clause + " ORDER BY t.date DESC, t.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	clause, args := buildFilterClause(filter)
	query := `SELECT COUNT(*) FROM transactions t ` + clause

	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET business_id = $1, type = $2, expense_type = $3, date = $4,
			description = $5, total_amount = $6, last_updated_at = $7
		WHERE owner_id = $8 AND transaction_id = $9 AND is_deleted = FALSE;
	`
	result, err := tx.Exec(ctx, query,
		txn.BusinessID,
		txn.Type,
		txn.ExpenseType,
		txn.Date,
		txn.Description,
		txn.TotalAmount,
		txn.LastUpdatedAt,
		txn.OwnerID,
		txn.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Items are replaced wholesale so total_amount and the item sum can
	// never drift apart.
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return fmt.Errorf("failed to clear items for transaction %s: %w", txn.TransactionID, err)
	}
	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) MarkDeleted(ctx context.Context, ownerID, transactionID string, deletedAt time.Time) error {
	query := `
		UPDATE transactions
		SET is_deleted = TRUE, last_updated_at = $1
		WHERE owner_id = $2 AND transaction_id = $3 AND is_deleted = FALSE;
	`
	result, err := r.Pool.Exec(ctx, query, deletedAt, ownerID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s deleted: %w", transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) SumByType(ctx context.Context, filter portsrepo.TransactionFilter) (domain.TypeTotals, error) {
	clause, args := buildFilterClause(filter)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.total_amount ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE t.type = 'income'),
			COUNT(*) FILTER (WHERE t.type = 'expense')
		FROM transactions t ` + clause

	var totals domain.TypeTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&totals.Income,
		&totals.Expense,
		&totals.IncomeCount,
		&totals.ExpenseCount,
	)
	if err != nil {
		return domain.TypeTotals{}, fmt.Errorf("failed to sum transactions by type: %w", err)
	}
	return totals, nil
}

func (r *PgxTransactionRepository) SumExpensesBySubtype(ctx context.Context, filter portsrepo.TransactionFilter) (domain.ExpenseSplit, error) {
	clause, args := buildFilterClause(filter)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.expense_type = 'operating' THEN t.total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.expense_type = 'inventory' THEN t.total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.expense_type IS NULL THEN t.total_amount ELSE 0 END), 0)
		FROM transactions t ` + clause + ` AND t.type = 'expense'`

	var split domain.ExpenseSplit
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&split.Operating,
		&split.Inventory,
		&split.Untyped,
	)
	if err != nil {
		return domain.ExpenseSplit{}, fmt.Errorf("failed to sum expenses by subtype: %w", err)
	}
	return split, nil
}
