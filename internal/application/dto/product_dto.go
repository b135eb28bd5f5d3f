package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// Stock inicial permitido solo en la creación; después solo cambia vía movimientos.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Available    *bool           `json:"available,omitempty"` // nil => true
	Sizes        []string        `json:"sizes,omitempty"`
	Images       []string        `json:"images,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	AskingPrice  decimal.Decimal `json:"asking_price,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`
	Stock        int64           `json:"stock,omitempty"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye Stock.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Available    *bool           `json:"available,omitempty"`
	Sizes        []string        `json:"sizes,omitempty"`
	Images       []string        `json:"images,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	AskingPrice  decimal.Decimal `json:"asking_price,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Available    bool            `json:"available"`
	Sizes        []string        `json:"sizes"`
	Images       []string        `json:"images"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	AskingPrice  decimal.Decimal `json:"asking_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int64           `json:"stock"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	AddedBy      string          `json:"added_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductResponseFrom mapea la entidad a su representación pública.
func ProductResponseFrom(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Available:    p.Available,
		Sizes:        p.Sizes,
		Images:       p.Images,
		BuyPrice:     p.BuyPrice,
		AskingPrice:  p.AskingPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		Category:     p.Category,
		Description:  p.Description,
		AddedBy:      p.AddedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
