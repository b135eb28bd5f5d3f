package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Tope de entradas por reporte PDF; por encima, acotar con from/to.
const reportMaxEntries = 1000

// HistoryUseCase consultas de solo lectura sobre el libro de movimientos.
// Las escrituras pasan siempre por el motor de movimientos.
type HistoryUseCase struct {
	historyRepo repository.HistoryRepository
	reportGen   HistoryReportGenerator
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(historyRepo repository.HistoryRepository, reportGen HistoryReportGenerator) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo, reportGen: reportGen}
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (uc *HistoryUseCase) ListByProduct(productID string, page dto.PageRequest) ([]*dto.HistoryResponse, error) {
	page.DefaultPage()
	entries, err := uc.historyRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.HistoryResponsesFrom(entries), nil
}

// List lista todos los movimientos en un rango de fechas opcional, con total
// para paginación.
func (uc *HistoryUseCase) List(from, to *time.Time, page dto.PageRequest) (*dto.HistoryListResponse, error) {
	page.DefaultPage()
	entries, err := uc.historyRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.historyRepo.Count(from, to)
	if err != nil {
		return nil, err
	}
	totalPages := total / page.Limit
	if total%page.Limit != 0 {
		totalPages++
	}
	return &dto.HistoryListResponse{
		History:    dto.HistoryResponsesFrom(entries),
		Total:      total,
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		TotalPages: totalPages,
	}, nil
}

// Report genera el PDF del reporte de movimientos en un rango de fechas opcional.
func (uc *HistoryUseCase) Report(ctx context.Context, from, to *time.Time) ([]byte, error) {
	entries, err := uc.historyRepo.List(from, to, reportMaxEntries, 0)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateHistoryReport(ctx, entries, from, to)
}
