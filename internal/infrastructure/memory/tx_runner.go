package memory

import (
	"context"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las mutaciones del Store y restaura el snapshot previo si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el lock de escritura, ejecuta fn con repos atados a la "transacción" y
// hace rollback (restaura el snapshot) si fn devuelve error o entra en pánico.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := r.s.st.snapshot()
	committed := false
	defer func() {
		if !committed {
			r.s.st = before
		}
	}()

	if err := fn(r.s.repos(true)); err != nil {
		return err
	}
	committed = true
	return nil
}
