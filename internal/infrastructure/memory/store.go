// Package memory implementa los puertos de persistencia en memoria de proceso.
// Es el driver por defecto: un reinicio vacía el ledger.
package memory

import (
	"slices"
	"sync"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// state colecciones del ledger. Los punteros guardados nunca se mutan en sitio
// (se reemplazan por copias), así que una copia superficial sirve de snapshot.
type state struct {
	products      map[string]*entity.Product
	productOrder  []string
	categories    []string
	stockLogs     []*entity.StockLog // del más antiguo al más reciente
	shipments     map[string]*entity.ShipmentItem
	shipmentOrder []string
	shipmentLogs  []*entity.ShipmentLog // del más antiguo al más reciente
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		shipments: make(map[string]*entity.ShipmentItem),
	}
}

func (s *state) snapshot() *state {
	cp := &state{
		products:      make(map[string]*entity.Product, len(s.products)),
		productOrder:  slices.Clone(s.productOrder),
		categories:    slices.Clone(s.categories),
		stockLogs:     slices.Clone(s.stockLogs),
		shipments:     make(map[string]*entity.ShipmentItem, len(s.shipments)),
		shipmentOrder: slices.Clone(s.shipmentOrder),
		shipmentLogs:  slices.Clone(s.shipmentLogs),
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.shipments {
		cp.shipments[k] = v
	}
	return cp
}

// Store ledger en memoria protegido por un único RWMutex.
// TxRunner mantiene el lock de escritura durante toda la transacción.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve los repositorios fuera de transacción (cada llamada toma su propio lock).
func (s *Store) Repos() ledger.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) ledger.Repos {
	return ledger.Repos{
		Products:     &ProductRepo{s: s, inTx: inTx},
		Categories:   &CategoryRepo{s: s, inTx: inTx},
		StockLogs:    &StockLogRepo{s: s, inTx: inTx},
		Shipments:    &ShipmentRepo{s: s, inTx: inTx},
		ShipmentLogs: &ShipmentLogRepo{s: s, inTx: inTx},
	}
}

func (s *Store) read(inTx bool, fn func(st *state)) {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.st)
}

func (s *Store) write(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}
