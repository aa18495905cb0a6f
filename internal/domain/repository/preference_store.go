package repository

import "context"

// PreferenceStore almacenamiento clave/valor de sesión y preferencias
// (equivalente servidor del local storage del dashboard).
type PreferenceStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
