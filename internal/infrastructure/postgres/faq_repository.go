package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.FAQRepository = (*FAQRepo)(nil)

// FAQRepo implementación del puerto FAQRepository sobre PostgreSQL.
type FAQRepo struct {
	pool *pgxpool.Pool
}

// NewFAQRepository construye el adaptador de persistencia para FAQs.
func NewFAQRepository(pool *pgxpool.Pool) *FAQRepo {
	return &FAQRepo{pool: pool}
}

// Create persiste una nueva FAQ.
func (r *FAQRepo) Create(faq *entity.FAQ) error {
	query := `
		INSERT INTO faqs (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		faq.ID, faq.Title, faq.Description, faq.CreatedAt, faq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert faq: %w", err)
	}
	return nil
}

// GetByID obtiene una FAQ por ID.
func (r *FAQRepo) GetByID(id string) (*entity.FAQ, error) {
	query := `SELECT id, title, description, created_at, updated_at FROM faqs WHERE id = $1`
	var f entity.FAQ
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Title, &f.Description, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faq: %w", err)
	}
	return &f, nil
}

// Update actualiza una FAQ.
func (r *FAQRepo) Update(faq *entity.FAQ) error {
	query := `UPDATE faqs SET title = $2, description = $3, updated_at = $4 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		faq.ID, faq.Title, faq.Description, faq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	return nil
}

// List lista todas las FAQs, más recientes primero.
func (r *FAQRepo) List() ([]*entity.FAQ, error) {
	query := `SELECT id, title, description, created_at, updated_at FROM faqs ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()
	var list []*entity.FAQ
	for rows.Next() {
		var f entity.FAQ
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina una FAQ por ID.
func (r *FAQRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	return nil
}
