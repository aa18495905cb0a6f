package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Ensure inserta la categoría; si ya existe no hace nada.
func (r *CategoryRepo) Ensure(ctx context.Context, name string) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM categories ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
