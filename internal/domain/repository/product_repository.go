package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción del motor de movimientos.
	GetForUpdate(id string) (*entity.Product, error)
	// Update actualiza campos descriptivos. No toca Stock (se maneja vía movimientos).
	Update(product *entity.Product) error
	// UpdateStock actualiza solo el stock (usado por el motor de movimientos).
	UpdateStock(id string, stock int64) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre, código o categoría (el query llega ya normalizado).
	Search(query string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
