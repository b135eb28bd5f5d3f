package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// HistoryResponse representación pública de una entrada del libro de movimientos.
type HistoryResponse struct {
	ID             string    `json:"id"`
	ProductID      *string   `json:"product_id"` // null si el producto fue eliminado
	ProductCode    string    `json:"product_code"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	Note           string    `json:"note"`
	ResultingStock int64     `json:"resulting_stock"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryListResponse listado paginado de movimientos.
type HistoryListResponse struct {
	History    []*HistoryResponse `json:"history"`
	Total      int                `json:"total"`
	Page       PageResponse       `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// HistoryResponseFrom mapea la entidad a su representación pública.
func HistoryResponseFrom(h *entity.History) *HistoryResponse {
	if h == nil {
		return nil
	}
	return &HistoryResponse{
		ID:             h.ID,
		ProductID:      h.ProductID,
		ProductCode:    h.ProductCode,
		UserID:         h.UserID,
		Type:           h.Type,
		Quantity:       h.Quantity,
		Note:           h.Note,
		ResultingStock: h.ResultingStock,
		CreatedAt:      h.CreatedAt,
	}
}

// HistoryResponsesFrom mapea un listado de entidades.
func HistoryResponsesFrom(entries []*entity.History) []*HistoryResponse {
	out := make([]*HistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryResponseFrom(e))
	}
	return out
}
