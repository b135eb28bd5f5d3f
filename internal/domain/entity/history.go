package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// History representa un movimiento de stock en el libro de auditoría.
// Inmutable una vez creado, salvo el desenlace del producto: al eliminar un
// producto sus entradas quedan huérfanas (ProductID nil, ProductCode vacío)
// pero nunca se borran.
type History struct {
	ID             string
	ProductID      *string // nil si el producto fue eliminado
	ProductCode    string  // snapshot del código al momento del movimiento
	UserID         string
	Type           string // in, out
	Quantity       int64  // siempre >= 1
	Note           string
	ResultingStock int64 // stock del producto inmediatamente después del movimiento
	CreatedAt      time.Time
}
