// Package pdf genera el reporte PDF de movimientos de stock usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Código | Tipo | Cant | Stock result | Nota  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Neto                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.HistoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.HistoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateHistoryReport genera el PDF del reporte de movimientos y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateHistoryReport(
	_ context.Context,
	entries []*entity.History,
	from, to *time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, e := range entries {
		m.AddRows(entryRow(e))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(from, to *time.Time) core.Row {
	rango := "Todo el historial"
	if from != nil || to != nil {
		f, t := "...", "..."
		if from != nil {
			f = from.Format("02/01/2006")
		}
		if to != nil {
			t = to.Format("02/01/2006")
		}
		rango = f + " - " + t
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Movimientos de stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(rango, props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(6).Add(
		header("Fecha", 2),
		header("Código", 2),
		header("Tipo", 1),
		header("Cant.", 1),
		header("Stock", 1),
		header("Usuario", 2),
		header("Nota", 3),
	)
}

func entryRow(e *entity.History) core.Row {
	code := e.ProductCode
	if code == "" {
		code = "(eliminado)"
	}
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a}))
	}
	return row.New(5).Add(
		cell(e.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
		cell(code, 2, align.Left),
		cell(e.Type, 1, align.Center),
		cell(fmt.Sprintf("%d", e.Quantity), 1, align.Right),
		cell(fmt.Sprintf("%d", e.ResultingStock), 1, align.Right),
		cell(e.UserID, 2, align.Left),
		cell(e.Note, 3, align.Left),
	)
}

// totalsRow: unidades entradas, salidas y neto del rango.
func totalsRow(entries []*entity.History) core.Row {
	var in, out int64
	for _, e := range entries {
		if e.Type == entity.MovementTypeIn {
			in += e.Quantity
		} else {
			out += e.Quantity
		}
	}
	resumen := fmt.Sprintf("Entradas: %d    Salidas: %d    Neto: %+d", in, out, in-out)
	return row.New(8).Add(
		col.New(12).Add(
			text.New(resumen, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}
