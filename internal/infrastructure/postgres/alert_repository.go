package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, type, product_id, product_name, message, severity, ts, acknowledged`

// AlertRepo alertas persistidas en la tabla alerts.
type AlertRepo struct {
	q Querier
}

func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	if err := row.Scan(&a.ID, &a.Type, &a.ProductID, &a.ProductName, &a.Message, &a.Severity, &a.Timestamp, &a.Acknowledged); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepo) Save(ctx context.Context, alerts ...*entity.Alert) error {
	for _, a := range alerts {
		_, err := r.q.Exec(ctx, `INSERT INTO alerts (`+alertColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, a.Type, a.ProductID, a.ProductName, a.Message, a.Severity, a.Timestamp, a.Acknowledged)
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) SetAcknowledged(ctx context.Context, id string, acknowledged bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET acknowledged = $2 WHERE id = $1`, id, acknowledged)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) List(ctx context.Context) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
