package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// HistoryRepository define el puerto de persistencia para el libro de movimientos.
// Las entradas son inmutables: no hay Update, solo el desenlace del producto al
// eliminarlo (DetachProduct) y el borrado individual vía reversa del motor.
type HistoryRepository interface {
	Create(entry *entity.History) error
	GetByID(id string) (*entity.History, error)
	Delete(id string) error
	ListByProduct(productID string, limit, offset int) ([]*entity.History, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.History, error)
	Count(from, to *time.Time) (int, error)
	// DetachProduct deja huérfanas las entradas de un producto eliminado:
	// product_id NULL y product_code vacío. Las entradas sobreviven.
	DetachProduct(productID string) error
}
