package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

// ProductUseCase casos de uso CRUD para productos. El stock inicial se fija al
// crear; después solo cambia vía el motor de movimientos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto con su stock inicial.
func (uc *ProductUseCase) Create(userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Available:    available,
		Sizes:        in.Sizes,
		Images:       in.Images,
		BuyPrice:     in.BuyPrice,
		AskingPrice:  in.AskingPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		Category:     in.Category,
		Description:  in.Description,
		AddedBy:      userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return dto.ProductResponseFrom(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ProductResponseFrom(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(products), nil
}

// Search busca productos por nombre, código o categoría. El término se
// normaliza (minúsculas, sin tildes) para coincidir con search_text en DB.
func (uc *ProductUseCase) Search(query string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	query = textutil.Normalize(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	products, err := uc.productRepo.Search(query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(products), nil
}

// Update actualiza campos descriptivos de un producto. Stock no se toca aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	if in.Available != nil {
		product.Available = *in.Available
	}
	if in.Sizes != nil {
		product.Sizes = in.Sizes
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	product.BuyPrice = in.BuyPrice
	product.AskingPrice = in.AskingPrice
	product.SellingPrice = in.SellingPrice
	product.Category = in.Category
	product.Description = in.Description
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return dto.ProductResponseFrom(product), nil
}

func toResponses(products []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponseFrom(p))
	}
	return out
}
