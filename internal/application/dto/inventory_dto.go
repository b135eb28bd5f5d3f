package dto

// ApplyMovementRequest body para POST /api/inventory/movements.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // in, out
	Quantity  int64  `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// MovementResponse producto actualizado + entrada creada por un movimiento.
type MovementResponse struct {
	Product *ProductResponse `json:"product"`
	Entry   *HistoryResponse `json:"entry"`
}

// ReversalResponse producto actualizado tras revertir un movimiento.
type ReversalResponse struct {
	Product *ProductResponse `json:"product"`
}
