package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
)

type PgxSalesRepository struct {
	BaseRepository
}

func newPgxSalesRepository(pool *pgxpool.Pool) portsrepo.SalesRepository {
	return &PgxSalesRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SalesRepository = (*PgxSalesRepository)(nil)

func (r *PgxSalesRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	query := `
		INSERT INTO sales (sale_id, sale_date, amount, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		sale.SaleID,
		sale.SaleDate,
		sale.Amount,
		sale.Description,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save sale %s: %w", sale.SaleID, err)
	}
	return nil
}

func (r *PgxSalesRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT sale_id, sale_date, amount, description, created_at, created_by, last_updated_at, last_updated_by
		FROM sales
		ORDER BY sale_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		err := rows.Scan(
			&sale.SaleID,
			&sale.SaleDate,
			&sale.Amount,
			&sale.Description,
			&sale.CreatedAt,
			&sale.CreatedBy,
			&sale.LastUpdatedAt,
			&sale.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, expense_date, amount, category, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.ExpenseDate,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT expense_id, expense_date, amount, category, description, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		ORDER BY expense_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		err := rows.Scan(
			&expense.ExpenseID,
			&expense.ExpenseDate,
			&expense.Amount,
			&expense.Category,
			&expense.Description,
			&expense.CreatedAt,
			&expense.CreatedBy,
			&expense.LastUpdatedAt,
			&expense.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
