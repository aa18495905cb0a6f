package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/inventory"
)

// ShipmentInput marca Quantity unidades del producto para despacho.
type ShipmentInput struct {
	ProductID      string
	Quantity       int
	ShippingFeePct decimal.Decimal
	GSTPct         decimal.Decimal
	Notes          string
}

func (in ShipmentInput) validate() error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !inventory.ValidPercentage(in.ShippingFeePct) || !inventory.ValidPercentage(in.GSTPct) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ShipmentResult línea creada, su log y el producto con el stock ya descontado.
type ShipmentResult struct {
	Item    *entity.ShipmentItem
	Log     *entity.ShipmentLog
	Product *entity.Product
}

// RemovedShipment línea eliminada. Product es nil si el producto de origen ya no existe.
type RemovedShipment struct {
	Item    *entity.ShipmentItem
	Product *entity.Product
}

// AddToShipment calcula flete/GST, crea la línea y su log, y descuenta el stock con acción "remove".
// Producto inexistente: no-op (nil, nil). Quantity > stock: *domain.InsufficientStockError.
func (uc *LedgerUseCase) AddToShipment(ctx context.Context, actor entity.User, in ShipmentInput) (*ShipmentResult, error) {
	const op = "add_to_shipment"
	if err := in.validate(); err != nil {
		uc.record(op, resultFailed)
		return nil, err
	}

	var res *ShipmentResult
	var stockLog *entity.StockLog
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil || p == nil {
			return err
		}
		if in.Quantity > p.CurrentStock {
			return &domain.InsufficientStockError{Available: p.CurrentStock, Requested: in.Quantity}
		}

		now := uc.now()
		amounts := inventory.CalcShipment(p.Price, in.ShippingFeePct, in.GSTPct, in.Quantity)
		item := &entity.ShipmentItem{
			ID:                    uuid.New().String(),
			ProductID:             p.ID,
			ProductName:           p.Name,
			Category:              p.Category,
			Quantity:              in.Quantity,
			PricePerUnit:          p.Price,
			ShippingFeePercentage: in.ShippingFeePct,
			ShippingFee:           amounts.ShippingFee,
			GSTPercentage:         in.GSTPct,
			GSTAmount:             amounts.GSTAmount,
			TotalValue:            amounts.TotalValue,
			Notes:                 in.Notes,
			LastUpdated:           now,
		}
		marked := fmt.Sprintf("Marked %d units for shipment", in.Quantity)
		notes := in.Notes
		if notes == "" {
			notes = marked
		}
		sl := &entity.ShipmentLog{
			ID:          uuid.New().String(),
			ShipmentID:  item.ID,
			ProductName: p.Name,
			Action:      entity.ShipmentActionMarked,
			Quantity:    in.Quantity,
			StockChange: -in.Quantity,
			User:        actor.Name,
			Timestamp:   now,
			Notes:       notes,
			ShippingFee: amounts.ShippingFee,
			GSTAmount:   amounts.GSTAmount,
		}
		if err := r.Shipments.Create(ctx, item); err != nil {
			return err
		}
		if err := r.ShipmentLogs.Append(ctx, sl); err != nil {
			return err
		}
		stockLog, err = uc.applyStockChange(ctx, r, actor, p, StockUpdateInput{
			ProductID: p.ID,
			NewStock:  p.CurrentStock - in.Quantity,
			Action:    entity.StockActionRemove,
			Notes:     marked,
		}, now)
		if err != nil {
			return err
		}
		res = &ShipmentResult{Item: item, Log: sl, Product: p}
		return nil
	})
	if err != nil {
		uc.record(op, resultFailed)
		return nil, fmt.Errorf("add to shipment: %w", err)
	}
	if res == nil {
		uc.record(op, resultNoop)
		return nil, nil
	}

	uc.log.Info().Str("shipment_id", res.Item.ID).Str("product", res.Item.ProductName).
		Int("quantity", res.Item.Quantity).Str("total", res.Item.TotalValue.StringFixed(2)).Str("user", actor.Name).Msg("producto marcado para despacho")
	ev := stockEvent(entity.EventTypeShipmentMarked, stockLog)
	ev.ShipmentID = res.Item.ID
	uc.afterCommit(ctx, actor, op, ev)
	res.Product = res.Product.Clone()
	return res, nil
}

// RemoveFromShipment devuelve la cantidad de la línea al producto (acción "add") y elimina la línea.
// Si el producto ya no existe la línea se elimina igual. Línea inexistente: no-op (nil, nil).
func (uc *LedgerUseCase) RemoveFromShipment(ctx context.Context, actor entity.User, shipmentID string) (*RemovedShipment, error) {
	const op = "remove_from_shipment"

	var res *RemovedShipment
	var stockLog *entity.StockLog
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		item, err := r.Shipments.GetByID(ctx, shipmentID)
		if err != nil || item == nil {
			return err
		}
		res = &RemovedShipment{Item: item}

		p, err := r.Products.GetForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if p != nil {
			stockLog, err = uc.applyStockChange(ctx, r, actor, p, StockUpdateInput{
				ProductID: p.ID,
				NewStock:  p.CurrentStock + item.Quantity,
				Action:    entity.StockActionAdd,
				Notes:     fmt.Sprintf("Returned %d units from shipment to inventory", item.Quantity),
			}, uc.now())
			if err != nil {
				return err
			}
			res.Product = p
		}
		return r.Shipments.Delete(ctx, item.ID)
	})
	if err != nil {
		uc.record(op, resultFailed)
		return nil, fmt.Errorf("remove from shipment: %w", err)
	}
	if res == nil {
		uc.record(op, resultNoop)
		return nil, nil
	}

	ev := entity.LedgerEvent{
		EventType:   entity.EventTypeShipmentRemoved,
		ProductID:   res.Item.ProductID,
		ProductName: res.Item.ProductName,
		Quantity:    res.Item.Quantity,
		ShipmentID:  res.Item.ID,
	}
	if stockLog != nil {
		ev = stockEvent(entity.EventTypeShipmentRemoved, stockLog)
		ev.ShipmentID = res.Item.ID
	} else {
		uc.log.Warn().Str("shipment_id", res.Item.ID).Str("product_id", res.Item.ProductID).Msg("producto de origen inexistente, no se devuelve stock")
	}
	uc.log.Info().Str("shipment_id", res.Item.ID).Int("quantity", res.Item.Quantity).Str("user", actor.Name).Msg("despacho eliminado")
	uc.afterCommit(ctx, actor, op, ev)
	res.Product = res.Product.Clone()
	return res, nil
}
