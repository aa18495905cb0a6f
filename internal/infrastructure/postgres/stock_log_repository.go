package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var _ repository.StockLogRepository = (*StockLogRepo)(nil)

// StockLogRepo log de stock append-only.
type StockLogRepo struct {
	q Querier
}

func NewStockLogRepository(q Querier) *StockLogRepo {
	return &StockLogRepo{q: q}
}

func (r *StockLogRepo) Append(ctx context.Context, l *entity.StockLog) error {
	var priceFrom, priceTo decimal.NullDecimal
	var supplierFrom, supplierTo *string
	if l.PriceChange != nil {
		priceFrom = decimal.NewNullDecimal(l.PriceChange.From)
		priceTo = decimal.NewNullDecimal(l.PriceChange.To)
	}
	if l.SupplierChange != nil {
		supplierFrom, supplierTo = &l.SupplierChange.From, &l.SupplierChange.To
	}
	query := `
		INSERT INTO stock_logs (id, product_id, product_name, action, quantity, previous_stock, new_stock,
		                        user_name, ts, notes, price_from, price_to, supplier_from, supplier_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ProductID, l.ProductName, l.Action, l.Quantity, l.PreviousStock, l.NewStock,
		l.User, l.Timestamp, l.Notes, priceFrom, priceTo, supplierFrom, supplierTo,
	)
	if err != nil {
		return fmt.Errorf("insert stock log: %w", err)
	}
	return nil
}

// List del más reciente al más antiguo (orden de inserción inverso).
func (r *StockLogRepo) List(ctx context.Context) ([]*entity.StockLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, product_name, action, quantity, previous_stock, new_stock,
		       user_name, ts, notes, price_from, price_to, supplier_from, supplier_to
		FROM stock_logs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLog
	for rows.Next() {
		var l entity.StockLog
		var priceFrom, priceTo decimal.NullDecimal
		var supplierFrom, supplierTo *string
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Action, &l.Quantity, &l.PreviousStock, &l.NewStock,
			&l.User, &l.Timestamp, &l.Notes, &priceFrom, &priceTo, &supplierFrom, &supplierTo); err != nil {
			return nil, fmt.Errorf("scan stock log: %w", err)
		}
		if priceFrom.Valid && priceTo.Valid {
			l.PriceChange = &entity.PriceChange{From: priceFrom.Decimal, To: priceTo.Decimal}
		}
		if supplierFrom != nil && supplierTo != nil {
			l.SupplierChange = &entity.SupplierChange{From: *supplierFrom, To: *supplierTo}
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
