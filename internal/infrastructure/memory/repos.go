package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.StockLogRepository    = (*StockLogRepo)(nil)
	_ repository.ShipmentRepository    = (*ShipmentRepo)(nil)
	_ repository.ShipmentLogRepository = (*ShipmentLogRepo)(nil)
)

// ProductRepo productos en memoria. Devuelve siempre copias.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = p.Clone()
		st.productOrder = append(st.productOrder, p.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(r.inTx, func(st *state) {
		out = st.products[id].Clone()
	})
	return out, nil
}

// GetForUpdate el lock lo mantiene TxRunner; equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID] = p.Clone()
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.s.read(r.inTx, func(st *state) {
		out = make([]*entity.Product, 0, len(st.productOrder))
		for _, id := range st.productOrder {
			out = append(out, st.products[id].Clone())
		}
	})
	return out, nil
}

// CategoryRepo nombres de categoría en orden de alta.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

func (r *CategoryRepo) Ensure(_ context.Context, name string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if !slices.Contains(st.categories, name) {
			st.categories = append(st.categories, name)
		}
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]string, error) {
	var out []string
	r.s.read(r.inTx, func(st *state) {
		out = slices.Clone(st.categories)
	})
	return out, nil
}

// StockLogRepo log de stock; List invierte el orden de inserción.
type StockLogRepo struct {
	s    *Store
	inTx bool
}

func (r *StockLogRepo) Append(_ context.Context, l *entity.StockLog) error {
	cp := *l
	return r.s.write(r.inTx, func(st *state) error {
		st.stockLogs = append(st.stockLogs, &cp)
		return nil
	})
}

func (r *StockLogRepo) List(_ context.Context) ([]*entity.StockLog, error) {
	var out []*entity.StockLog
	r.s.read(r.inTx, func(st *state) {
		out = make([]*entity.StockLog, 0, len(st.stockLogs))
		for i := len(st.stockLogs) - 1; i >= 0; i-- {
			cp := *st.stockLogs[i]
			out = append(out, &cp)
		}
	})
	return out, nil
}

// ShipmentRepo líneas de despacho en orden de alta.
type ShipmentRepo struct {
	s    *Store
	inTx bool
}

func (r *ShipmentRepo) Create(_ context.Context, item *entity.ShipmentItem) error {
	cp := *item
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.shipments[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.shipments[item.ID] = &cp
		st.shipmentOrder = append(st.shipmentOrder, item.ID)
		return nil
	})
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.ShipmentItem, error) {
	var out *entity.ShipmentItem
	r.s.read(r.inTx, func(st *state) {
		if it, ok := st.shipments[id]; ok {
			cp := *it
			out = &cp
		}
	})
	return out, nil
}

func (r *ShipmentRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.shipments[id]; !ok {
			return nil
		}
		delete(st.shipments, id)
		st.shipmentOrder = slices.DeleteFunc(st.shipmentOrder, func(s string) bool { return s == id })
		return nil
	})
}

func (r *ShipmentRepo) List(_ context.Context) ([]*entity.ShipmentItem, error) {
	var out []*entity.ShipmentItem
	r.s.read(r.inTx, func(st *state) {
		out = make([]*entity.ShipmentItem, 0, len(st.shipmentOrder))
		for _, id := range st.shipmentOrder {
			cp := *st.shipments[id]
			out = append(out, &cp)
		}
	})
	return out, nil
}

// ShipmentLogRepo log de despachos; List invierte el orden de inserción.
type ShipmentLogRepo struct {
	s    *Store
	inTx bool
}

func (r *ShipmentLogRepo) Append(_ context.Context, l *entity.ShipmentLog) error {
	cp := *l
	return r.s.write(r.inTx, func(st *state) error {
		st.shipmentLogs = append(st.shipmentLogs, &cp)
		return nil
	})
}

func (r *ShipmentLogRepo) List(_ context.Context) ([]*entity.ShipmentLog, error) {
	var out []*entity.ShipmentLog
	r.s.read(r.inTx, func(st *state) {
		out = make([]*entity.ShipmentLog, 0, len(st.shipmentLogs))
		for i := len(st.shipmentLogs) - 1; i >= 0; i-- {
			cp := *st.shipmentLogs[i]
			out = append(out, &cp)
		}
	})
	return out, nil
}
