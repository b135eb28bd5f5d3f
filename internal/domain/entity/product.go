package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Stock solo cambia en la creación, por edición directa de catálogo o por el
// motor de movimientos (internal/application/inventory); nunca por los dos
// caminos a la vez.
type Product struct {
	ID           string
	Code         string // código único del producto
	Name         string
	Available    bool
	Sizes        []string
	Images       []string
	BuyPrice     decimal.Decimal
	AskingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        int64 // cantidad en bodega, nunca negativa
	Category     string
	Description  string
	AddedBy      string // UserID del creador
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
