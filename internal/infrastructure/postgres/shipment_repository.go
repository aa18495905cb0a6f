package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var (
	_ repository.ShipmentRepository    = (*ShipmentRepo)(nil)
	_ repository.ShipmentLogRepository = (*ShipmentLogRepo)(nil)
)

// ShipmentRepo líneas de despacho.
type ShipmentRepo struct {
	q Querier
}

func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, product_id, product_name, category, quantity, price_per_unit,
	shipping_fee_percentage, shipping_fee, gst_percentage, gst_amount, total_value, notes, last_updated`

func scanShipment(row pgx.Row) (*entity.ShipmentItem, error) {
	var s entity.ShipmentItem
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Category, &s.Quantity, &s.PricePerUnit,
		&s.ShippingFeePercentage, &s.ShippingFee, &s.GSTPercentage, &s.GSTAmount, &s.TotalValue, &s.Notes, &s.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.ShipmentItem) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.ProductName, s.Category, s.Quantity, s.PricePerUnit,
		s.ShippingFeePercentage, s.ShippingFee, s.GSTPercentage, s.GSTAmount, s.TotalValue, s.Notes, s.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.ShipmentItem, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

// Delete no falla si la línea ya no existe.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) List(ctx context.Context) ([]*entity.ShipmentItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var out []*entity.ShipmentItem
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ShipmentLogRepo log de despachos append-only.
type ShipmentLogRepo struct {
	q Querier
}

func NewShipmentLogRepository(q Querier) *ShipmentLogRepo {
	return &ShipmentLogRepo{q: q}
}

func (r *ShipmentLogRepo) Append(ctx context.Context, l *entity.ShipmentLog) error {
	query := `
		INSERT INTO shipment_logs (id, shipment_id, product_name, action, quantity, stock_change,
		                           user_name, ts, notes, shipping_fee, gst_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ShipmentID, l.ProductName, l.Action, l.Quantity, l.StockChange,
		l.User, l.Timestamp, l.Notes, l.ShippingFee, l.GSTAmount,
	)
	if err != nil {
		return fmt.Errorf("insert shipment log: %w", err)
	}
	return nil
}

func (r *ShipmentLogRepo) List(ctx context.Context) ([]*entity.ShipmentLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, shipment_id, product_name, action, quantity, stock_change,
		       user_name, ts, notes, shipping_fee, gst_amount
		FROM shipment_logs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shipment logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.ShipmentLog
	for rows.Next() {
		var l entity.ShipmentLog
		if err := rows.Scan(&l.ID, &l.ShipmentID, &l.ProductName, &l.Action, &l.Quantity, &l.StockChange,
			&l.User, &l.Timestamp, &l.Notes, &l.ShippingFee, &l.GSTAmount); err != nil {
			return nil, fmt.Errorf("scan shipment log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
