package repository

import "context"

// CategoryRepository nombres de categoría registrados.
type CategoryRepository interface {
	// Ensure registra la categoría si no existe; es idempotente.
	Ensure(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}
