package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// FAQUseCase casos de uso CRUD para FAQs (mutaciones solo admin, vía RBAC en HTTP).
type FAQUseCase struct {
	faqRepo repository.FAQRepository
}

// NewFAQUseCase construye el caso de uso.
func NewFAQUseCase(faqRepo repository.FAQRepository) *FAQUseCase {
	return &FAQUseCase{faqRepo: faqRepo}
}

// Create crea una FAQ.
func (uc *FAQUseCase) Create(in dto.FAQRequest) (*dto.FAQResponse, error) {
	if in.Title == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	faq := &entity.FAQ{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.faqRepo.Create(faq); err != nil {
		return nil, err
	}
	return dto.FAQResponseFrom(faq), nil
}

// List lista todas las FAQs.
func (uc *FAQUseCase) List() ([]*dto.FAQResponse, error) {
	faqs, err := uc.faqRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, dto.FAQResponseFrom(f))
	}
	return out, nil
}

// Update actualiza una FAQ existente.
func (uc *FAQUseCase) Update(id string, in dto.FAQRequest) (*dto.FAQResponse, error) {
	if in.Title == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	faq, err := uc.faqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, domain.ErrNotFound
	}
	faq.Title = in.Title
	faq.Description = in.Description
	faq.UpdatedAt = time.Now()
	if err := uc.faqRepo.Update(faq); err != nil {
		return nil, err
	}
	return dto.FAQResponseFrom(faq), nil
}

// Delete elimina una FAQ.
func (uc *FAQUseCase) Delete(id string) error {
	faq, err := uc.faqRepo.GetByID(id)
	if err != nil {
		return err
	}
	if faq == nil {
		return domain.ErrNotFound
	}
	return uc.faqRepo.Delete(id)
}
