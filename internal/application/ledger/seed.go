package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// SeedData colecciones iniciales cargadas al arrancar.
type SeedData struct {
	Categories []string
	Products   []*entity.Product
	StockLogs  []*entity.StockLog // del más antiguo al más reciente
}

// Seed carga los datos tal cual (sin generar logs) y ejecuta el hook de productos una vez,
// de modo que las alertas iniciales salen del mismo deriver.
func (uc *LedgerUseCase) Seed(ctx context.Context, data SeedData) error {
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		for _, c := range data.Categories {
			if err := r.Categories.Ensure(ctx, c); err != nil {
				return err
			}
		}
		for _, p := range data.Products {
			if err := r.Categories.Ensure(ctx, p.Category); err != nil {
				return err
			}
			if err := r.Products.Create(ctx, p); err != nil {
				return err
			}
		}
		for _, l := range data.StockLogs {
			if err := r.StockLogs.Append(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	uc.log.Info().Int("products", len(data.Products)).Int("logs", len(data.StockLogs)).Msg("datos de demo cargados")
	uc.afterCommit(ctx, entity.SystemUser, "seed")
	return nil
}

func demoProduct(id, name, category string, stock, minT, maxT int, price int64, supplier, updated string) *entity.Product {
	created, _ := time.Parse(entity.DateLayout, updated)
	return &entity.Product{
		ID: id, Name: name, Category: category,
		CurrentStock: stock, MinThreshold: minT, MaxThreshold: maxT,
		Price: decimal.NewFromInt(price), Supplier: supplier,
		LastUpdated: updated, CreatedAt: created,
	}
}

// DemoData productos y logs de ejemplo del dashboard. now fija la fecha de los logs "de hoy".
func DemoData(now time.Time) SeedData {
	products := []*entity.Product{
		demoProduct("1", "iPhone 15 Pro", "Electronics", 25, 10, 100, 999, "Apple Inc.", "2024-01-15"),
		demoProduct("2", "Samsung Galaxy S24", "Electronics", 8, 15, 80, 899, "Samsung", "2024-01-14"),
		demoProduct("3", `MacBook Pro 16"`, "Electronics", 12, 5, 30, 2499, "Apple Inc.", "2024-01-13"),
		demoProduct("4", "Nike Air Max 270", "Footwear", 45, 20, 100, 150, "Nike", "2024-01-12"),
		demoProduct("5", "Adidas Ultraboost 22", "Footwear", 3, 15, 75, 180, "Adidas", "2024-01-11"),
		demoProduct("6", "Levi's 501 Jeans", "Clothing", 28, 10, 60, 89, "Levi Strauss & Co.", "2024-01-10"),
		demoProduct("7", "Sony WH-1000XM5", "Electronics", 18, 8, 40, 399, "Sony", "2024-01-09"),
		demoProduct("8", "Instant Pot Duo 7-in-1", "Home & Kitchen", 6, 12, 50, 99, "Instant Brands", "2024-01-08"),
	}
	byName := make(map[string]string, len(products))
	for _, p := range products {
		byName[p.Name] = p.ID
	}

	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	mk := func(id, product, action string, qty, prev, next int, user string, ts time.Time, notes string) *entity.StockLog {
		return &entity.StockLog{
			ID: id, ProductID: byName[product], ProductName: product, Action: action,
			Quantity: qty, PreviousStock: prev, NewStock: next, User: user, Timestamp: ts, Notes: notes,
		}
	}

	logs := []*entity.StockLog{
		mk("3", `MacBook Pro 16"`, entity.StockActionAdd, 4, 8, 12, "Admin User", at("2024-01-15T11:00:00Z"), "Stock adjustment after inventory count"),
		mk("2", "Samsung Galaxy S24", entity.StockActionRemove, 7, 15, 8, "Staff User", at("2024-01-15T12:15:00Z"), "Sold to customer - Order #12345"),
		mk("1", "iPhone 15 Pro", entity.StockActionAdd, 50, 75, 125, "Admin User", at("2024-01-15T14:30:00Z"), "New shipment received from supplier"),
	}

	today := []*entity.StockLog{
		mk("today-4", "Nike Air Max 270", entity.StockActionAdd, 30, 45, 75, "Staff User", now.Add(-6*time.Hour), "Restocking popular item"),
		mk("today-3", `MacBook Pro 16"`, entity.StockActionAdd, 3, 12, 15, "Admin User", now.Add(-4*time.Hour), "Inventory count adjustment"),
		mk("today-2", "Samsung Galaxy S24", entity.StockActionRemove, 5, 8, 3, "Staff User", now.Add(-2*time.Hour), "Sold to customer - Order #12346"),
		mk("today-5", "Sony WH-1000XM5", entity.StockActionRemove, 3, 18, 15, "Admin User", now.Add(-1*time.Hour), "Damaged items removed from inventory"),
		mk("today-1", "iPhone 15 Pro", entity.StockActionAdd, 25, 25, 50, "Admin User", now, "New shipment received from Apple"),
	}
	today[1].SupplierChange = &entity.SupplierChange{From: "Apple Inc.", To: "Apple Authorized Reseller"}
	today[3].PriceChange = &entity.PriceChange{From: decimal.NewFromInt(399), To: decimal.NewFromInt(379)}
	today[4].PriceChange = &entity.PriceChange{From: decimal.NewFromInt(999), To: decimal.NewFromInt(1099)}

	return SeedData{
		Categories: entity.DefaultCategories,
		Products:   products,
		StockLogs:  append(logs, today...),
	}
}
