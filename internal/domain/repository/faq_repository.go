package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// FAQRepository define el puerto de persistencia para FAQ.
type FAQRepository interface {
	Create(faq *entity.FAQ) error
	GetByID(id string) (*entity.FAQ, error)
	Update(faq *entity.FAQ) error
	List() ([]*entity.FAQ, error)
	Delete(id string) error
}
