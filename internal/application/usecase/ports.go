package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// HistoryReportGenerator genera la representación PDF del reporte de movimientos.
// Lo implementa pdf.MarotoReportGenerator.
type HistoryReportGenerator interface {
	GenerateHistoryReport(ctx context.Context, entries []*entity.History, from, to *time.Time) ([]byte, error)
}
