package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// Kind tipo de reporte por rango.
type Kind string

const (
	KindInventory Kind = "inventory"
	KindShipment  Kind = "shipment"
)

// ParseKind inventory o shipment; vacío es inventory.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindInventory:
		return KindInventory, nil
	case KindShipment:
		return KindShipment, nil
	}
	return "", fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, s)
}

// TopN filas de los rankings de stock y de despachos.
const TopN = 10

// RangeReport datos de un reporte de inventario o de despachos.
type RangeReport struct {
	Kind        Kind
	Range       TimeRange
	GeneratedAt time.Time

	Inventory  InventorySummary // solo KindInventory
	Categories []CategoryValue
	TopStock   []StockLevel

	Shipment           ShipmentSummary // solo KindShipment
	TopShipments       []*entity.ShipmentItem
	ShipmentCategories []CategoryShipment

	Activity        ActivitySummary
	Trend           []TrendPoint
	Recommendations []string
}

// DailyReport actividad del día.
type DailyReport struct {
	Date    time.Time
	Summary DailySummary
	Entries []DailyEntry
}

// File PDF generado.
type File struct {
	Name    string
	Content []byte
}

// ReportPDFGenerator renderiza los reportes.
type ReportPDFGenerator interface {
	GenerateRangeReport(ctx context.Context, r *RangeReport) ([]byte, error)
	GenerateDailyReport(ctx context.Context, r *DailyReport) ([]byte, error)
}

// SnapshotSource lo implementa ledger.LedgerUseCase.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// Metrics reportes generados por tipo y resultado.
type Metrics interface {
	RecordReportGenerated(kind, result string)
}

// UseCase arma y exporta reportes sobre un snapshot del ledger.
type UseCase struct {
	source    SnapshotSource
	generator ReportPDFGenerator
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(source SnapshotSource, generator ReportPDFGenerator, metrics Metrics, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{source: source, generator: generator, metrics: metrics, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Summary agregados del reporte sin renderizar.
func (uc *UseCase) Summary(ctx context.Context, kind Kind, rangeToken string) (*RangeReport, error) {
	snap, err := uc.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Build(snap, kind, ParseTimeRange(rangeToken), uc.now()), nil
}

// Build arma el reporte por rango a partir del snapshot.
func Build(snap *ledger.Snapshot, kind Kind, r TimeRange, now time.Time) *RangeReport {
	logs := FilterLogsSince(snap.StockLogs, r.Cutoff(now))
	rep := &RangeReport{
		Kind:        kind,
		Range:       r,
		GeneratedAt: now,
		Activity:    SummarizeActivity(logs),
		Trend:       Trend(logs, r, now),
	}
	switch kind {
	case KindShipment:
		rep.Shipment = SummarizeShipments(snap.Shipments)
		rep.TopShipments = TopShipments(snap.Shipments, TopN)
		rep.ShipmentCategories = GroupShipmentsByCategory(snap.Shipments)
		rep.Recommendations = ShipmentRecommendations(snap.Shipments)
	default:
		rep.Inventory = SummarizeInventory(snap.Products, logs)
		rep.Categories = GroupProductsByCategory(snap.Products)
		rep.TopStock = TopStockLevels(snap.Products, TopN)
		rep.Recommendations = InventoryRecommendations(snap.Products, rep.Categories, logs)
	}
	return rep
}

// Export genera el PDF del reporte. Sin productos (inventory) o sin despachos
// (shipment) devuelve ErrNoReportData.
func (uc *UseCase) Export(ctx context.Context, kind Kind, rangeToken string) (*File, error) {
	snap, err := uc.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if (kind == KindShipment && len(snap.Shipments) == 0) || (kind != KindShipment && len(snap.Products) == 0) {
		uc.record(string(kind), "no_data")
		return nil, fmt.Errorf("%w: %s", domain.ErrNoReportData, kind)
	}
	now := uc.now()
	rep := Build(snap, kind, ParseTimeRange(rangeToken), now)
	content, err := uc.generator.GenerateRangeReport(ctx, rep)
	if err != nil {
		uc.record(string(kind), "failed")
		uc.log.Error().Err(err).Str("kind", string(kind)).Msg("fallo al generar el reporte")
		return nil, errors.Join(domain.ErrExportFailed, err)
	}
	uc.record(string(kind), "ok")
	name := RangeFileName(kind, rep.Range, now)
	uc.log.Info().Str("file", name).Int("bytes", len(content)).Msg("reporte generado")
	return &File{Name: name, Content: content}, nil
}

// Daily arma el reporte del día sin renderizar.
func (uc *UseCase) Daily(ctx context.Context) (*DailyReport, error) {
	snap, err := uc.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	entries := DailyEntries(snap.StockLogs, snap.ShipmentLogs, now)
	return &DailyReport{Date: now, Summary: SummarizeDaily(entries), Entries: entries}, nil
}

// ExportDaily genera el PDF del día. Sin actividad hoy devuelve ErrNoReportData.
func (uc *UseCase) ExportDaily(ctx context.Context) (*File, error) {
	rep, err := uc.Daily(ctx)
	if err != nil {
		return nil, err
	}
	if len(rep.Entries) == 0 {
		uc.record("daily", "no_data")
		return nil, fmt.Errorf("%w: sin actividad hoy", domain.ErrNoReportData)
	}
	content, err := uc.generator.GenerateDailyReport(ctx, rep)
	if err != nil {
		uc.record("daily", "failed")
		uc.log.Error().Err(err).Msg("fallo al generar el reporte diario")
		return nil, errors.Join(domain.ErrExportFailed, err)
	}
	uc.record("daily", "ok")
	return &File{Name: DailyFileName(rep.Date), Content: content}, nil
}

func (uc *UseCase) record(kind, result string) {
	if uc.metrics != nil {
		uc.metrics.RecordReportGenerated(kind, result)
	}
}
