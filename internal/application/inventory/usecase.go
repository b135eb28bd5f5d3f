package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos de stock: cada mutación de stock
// y su entrada en el libro de auditoría se confirman como una sola transacción
// (bloqueo de fila con SELECT FOR UPDATE y Commit/Rollback). Invariante: el
// stock del producto siempre coincide con el resulting_stock de su entrada
// superviviente más reciente, y nunca es negativo en estado confirmado.
type MovementUseCase struct {
	txRunner TxRunner
}

// NewMovementUseCase construye el motor de movimientos.
func NewMovementUseCase(txRunner TxRunner) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID string
	UserID    string
	Type      string // in, out
	Quantity  int64  // >= 1
	Note      string
}

// ApplyMovement aplica un movimiento: bloquea la fila del producto, calcula el
// nuevo stock, rechaza salidas que lo dejarían negativo y confirma la
// actualización del producto junto con la entrada del libro en una sola
// transacción. Devuelve el producto actualizado y la entrada creada.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Product, *entity.History, error) {
	// Validar antes de cualquier escritura
	if input.ProductID == "" || input.UserID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIn && input.Type != entity.MovementTypeOut {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Quantity < 1 {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		product *entity.Product
		entry   *entity.History
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.HistoryRepository,
	) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE) para serializar
		// movimientos concurrentes sobre el mismo producto
		p, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		delta := input.Quantity
		if input.Type == entity.MovementTypeOut {
			delta = -delta
		}
		newStock := p.Stock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}

		if err := productRepo.UpdateStock(p.ID, newStock); err != nil {
			return err
		}
		now := time.Now()
		p.Stock = newStock
		p.UpdatedAt = now

		productID := p.ID
		e := &entity.History{
			ID:             uuid.New().String(),
			ProductID:      &productID,
			ProductCode:    p.Code,
			UserID:         input.UserID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			Note:           input.Note,
			ResultingStock: newStock,
			CreatedAt:      now,
		}
		if err := historyRepo.Create(e); err != nil {
			return err
		}

		product = p
		entry = e
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, entry, nil
}

// ReverseMovement deshace un movimiento: elimina la entrada del libro y aplica
// el delta inverso sobre el stock actual del producto, todo en una transacción.
// Revertir una entrada "in" que dejaría el stock negativo se rechaza con
// ErrInsufficientStock y no se elimina nada. Si el producto ya no existe la
// entrada se elimina de todos modos (no hay nada que compensar) y se reporta
// ErrNotFound al caller.
func (uc *MovementUseCase) ReverseMovement(ctx context.Context, entryID string) (*entity.Product, error) {
	if entryID == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		product     *entity.Product
		productGone bool
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.HistoryRepository,
	) error {
		entry, err := historyRepo.GetByID(entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}

		var p *entity.Product
		if entry.ProductID != nil {
			p, err = productRepo.GetForUpdate(*entry.ProductID)
			if err != nil {
				return err
			}
		}
		if p == nil {
			// Entrada huérfana: se elimina sin compensación de stock
			productGone = true
			return historyRepo.Delete(entry.ID)
		}

		// Delta inverso: deshacer un "in" resta, deshacer un "out" suma
		newStock := p.Stock - entry.Quantity
		if entry.Type == entity.MovementTypeOut {
			newStock = p.Stock + entry.Quantity
		}
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}

		if err := productRepo.UpdateStock(p.ID, newStock); err != nil {
			return err
		}
		if err := historyRepo.Delete(entry.ID); err != nil {
			return err
		}
		p.Stock = newStock
		p.UpdatedAt = time.Now()
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if productGone {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// DeleteProduct elimina un producto dejando huérfanas sus entradas del libro
// (product_id NULL, product_code vacío) en la misma transacción. El historial
// sobrevive como registro de auditoría.
func (uc *MovementUseCase) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.HistoryRepository,
	) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := historyRepo.DetachProduct(productID); err != nil {
			return err
		}
		return productRepo.Delete(productID)
	})
}
