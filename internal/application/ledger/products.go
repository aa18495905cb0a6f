package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// AddProductInput datos de alta de un producto.
type AddProductInput struct {
	Name         string
	Category     string
	CurrentStock int
	MinThreshold int
	MaxThreshold int
	Price        decimal.Decimal
	Supplier     string
}

func (in AddProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinThreshold < 0 || in.MaxThreshold < 0 {
		return domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// StockUpdateInput cambio de stock y, opcionalmente, de precio y proveedor.
// NewPrice y NewSupplier nil significan "sin cambio".
type StockUpdateInput struct {
	ProductID   string
	NewStock    int
	Action      string
	Notes       string
	NewPrice    *decimal.Decimal
	NewSupplier *string
}

func (in StockUpdateInput) validate() error {
	if in.NewStock < 0 || !entity.IsValidStockAction(in.Action) {
		return domain.ErrInvalidInput
	}
	if in.NewPrice != nil && in.NewPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// StockUpdateResult producto ya actualizado y el log generado.
type StockUpdateResult struct {
	Product *entity.Product
	Log     *entity.StockLog
}

// AddProduct crea el producto, registra su categoría si es nueva y agrega un log "add"
// con PreviousStock=0.
func (uc *LedgerUseCase) AddProduct(ctx context.Context, actor entity.User, in AddProductInput) (*entity.Product, error) {
	const op = "add_product"
	if err := in.validate(); err != nil {
		uc.record(op, resultFailed)
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		CurrentStock: in.CurrentStock,
		MinThreshold: in.MinThreshold,
		MaxThreshold: in.MaxThreshold,
		Price:        in.Price,
		Supplier:     in.Supplier,
		LastUpdated:  now.Format(entity.DateLayout),
		CreatedAt:    now,
	}
	l := &entity.StockLog{
		ID:            uuid.New().String(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		Action:        entity.StockActionAdd,
		Quantity:      p.CurrentStock,
		PreviousStock: 0,
		NewStock:      p.CurrentStock,
		User:          actor.Name,
		Timestamp:     now,
		Notes:         "New product added to inventory",
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Categories.Ensure(ctx, p.Category); err != nil {
			return err
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		return r.StockLogs.Append(ctx, l)
	})
	if err != nil {
		uc.record(op, resultFailed)
		return nil, fmt.Errorf("add product: %w", err)
	}

	uc.log.Info().Str("product_id", p.ID).Str("product", p.Name).Int("stock", p.CurrentStock).Str("user", actor.Name).Msg("producto creado")
	uc.afterCommit(ctx, actor, op, stockEvent(entity.EventTypeProductCreated, l))
	return p.Clone(), nil
}

// UpdateStock reemplaza stock, precio y proveedor del producto y agrega el log.
// add con menos stock o remove con más stock son ErrInvalidInput.
// Producto inexistente: no-op, devuelve (nil, nil).
func (uc *LedgerUseCase) UpdateStock(ctx context.Context, actor entity.User, in StockUpdateInput) (*StockUpdateResult, error) {
	const op = "update_stock"
	if err := in.validate(); err != nil {
		uc.record(op, resultFailed)
		return nil, err
	}

	var res *StockUpdateResult
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil || p == nil {
			return err
		}
		if !entity.ActionMatchesChange(in.Action, p.CurrentStock, in.NewStock) {
			return fmt.Errorf("%w: acción %q no corresponde a %d → %d", domain.ErrInvalidInput, in.Action, p.CurrentStock, in.NewStock)
		}
		l, err := uc.applyStockChange(ctx, r, actor, p, in, uc.now())
		if err != nil {
			return err
		}
		res = &StockUpdateResult{Product: p, Log: l}
		return nil
	})
	if err != nil {
		uc.record(op, resultFailed)
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if res == nil {
		uc.record(op, resultNoop)
		uc.log.Debug().Str("product_id", in.ProductID).Msg("update stock: producto inexistente, se ignora")
		return nil, nil
	}

	uc.log.Info().Str("product_id", res.Product.ID).Str("action", in.Action).
		Int("previous", res.Log.PreviousStock).Int("new", res.Log.NewStock).Str("user", actor.Name).Msg("stock actualizado")
	uc.afterCommit(ctx, actor, op, stockEvent(entity.EventTypeStockChanged, res.Log))
	res.Product = res.Product.Clone()
	return res, nil
}

// applyStockChange muta p dentro de la transacción y persiste producto y log.
// Es el camino común de UpdateStock, AddToShipment y RemoveFromShipment.
func (uc *LedgerUseCase) applyStockChange(
	ctx context.Context,
	r Repos,
	actor entity.User,
	p *entity.Product,
	in StockUpdateInput,
	now time.Time,
) (*entity.StockLog, error) {
	l := &entity.StockLog{
		ID:            uuid.New().String(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		Action:        in.Action,
		Quantity:      abs(in.NewStock - p.CurrentStock),
		PreviousStock: p.CurrentStock,
		NewStock:      in.NewStock,
		User:          actor.Name,
		Timestamp:     now,
	}

	var notes []string
	if in.Notes != "" {
		notes = append(notes, in.Notes)
	}
	if in.NewPrice != nil && !in.NewPrice.Equal(p.Price) {
		l.PriceChange = &entity.PriceChange{From: p.Price, To: *in.NewPrice}
		notes = append(notes, fmt.Sprintf("Price updated: RS:%s → RS:%s", p.Price.String(), in.NewPrice.String()))
		p.Price = *in.NewPrice
	}
	if in.NewSupplier != nil && *in.NewSupplier != p.Supplier {
		l.SupplierChange = &entity.SupplierChange{From: p.Supplier, To: *in.NewSupplier}
		notes = append(notes, fmt.Sprintf("Supplier updated: %s → %s", p.Supplier, *in.NewSupplier))
		p.Supplier = *in.NewSupplier
	}
	l.Notes = strings.Join(notes, " | ")

	p.CurrentStock = in.NewStock
	p.LastUpdated = now.Format(entity.DateLayout)

	if err := r.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := r.StockLogs.Append(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddCategory registra una categoría. Vacía → ErrInvalidInput; repetida no hace nada.
func (uc *LedgerUseCase) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		return r.Categories.Ensure(ctx, name)
	})
	if err != nil {
		uc.record("add_category", resultFailed)
		return fmt.Errorf("add category: %w", err)
	}
	uc.record("add_category", resultOK)
	return nil
}
