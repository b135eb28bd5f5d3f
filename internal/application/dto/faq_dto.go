package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// FAQRequest body para crear o actualizar una FAQ.
type FAQRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FAQResponse representación pública de una FAQ.
type FAQResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FAQResponseFrom mapea la entidad a su representación pública.
func FAQResponseFrom(f *entity.FAQ) *FAQResponse {
	if f == nil {
		return nil
	}
	return &FAQResponse{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
