package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyColumns = `id, product_id, product_code, user_id, type, quantity, note, resulting_stock, created_at`

// HistoryRepo implementación del puerto HistoryRepository sobre PostgreSQL (usable con pool o tx).
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del libro de movimientos. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create persiste una entrada del libro de movimientos.
func (r *HistoryRepo) Create(entry *entity.History) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.ProductCode, entry.UserID,
		entry.Type, entry.Quantity, entry.Note, entry.ResultingStock, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *HistoryRepo) GetByID(id string) (*entity.History, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE id = $1`
	var h entity.History
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&h.ID, &h.ProductID, &h.ProductCode, &h.UserID,
		&h.Type, &h.Quantity, &h.Note, &h.ResultingStock, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return &h, nil
}

// Delete elimina una entrada por ID (solo vía reversa del motor de movimientos).
func (r *HistoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

// ListByProduct lista las entradas de un producto, más recientes primero.
func (r *HistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.History, error) {
	query := `
		SELECT ` + historyColumns + ` FROM history
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history by product: %w", err)
	}
	return r.scanAll(rows)
}

// List lista todas las entradas en un rango de fechas opcional, más recientes primero.
func (r *HistoryRepo) List(from, to *time.Time, limit, offset int) ([]*entity.History, error) {
	query := `SELECT ` + historyColumns + ` FROM history`
	where, args := dateRange(from, to)
	query += where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return r.scanAll(rows)
}

// Count cuenta las entradas en un rango de fechas opcional (para paginación).
func (r *HistoryRepo) Count(from, to *time.Time) (int, error) {
	query := `SELECT count(*) FROM history`
	where, args := dateRange(from, to)
	query += where
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return total, nil
}

// DetachProduct deja huérfanas las entradas de un producto eliminado.
// Única mutación permitida sobre entradas existentes.
func (r *HistoryRepo) DetachProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE history SET product_id = NULL, product_code = '' WHERE product_id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("detach product from history: %w", err)
	}
	return nil
}

func dateRange(from, to *time.Time) (string, []any) {
	var args []any
	where := ""
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}
	return where, args
}

func (r *HistoryRepo) scanAll(rows pgx.Rows) ([]*entity.History, error) {
	defer rows.Close()
	var list []*entity.History
	for rows.Next() {
		var h entity.History
		if err := rows.Scan(&h.ID, &h.ProductID, &h.ProductCode, &h.UserID,
			&h.Type, &h.Quantity, &h.Note, &h.ResultingStock, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
