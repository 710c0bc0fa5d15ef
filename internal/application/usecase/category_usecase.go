package usecase

import (
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryUseCase consultas y alta manual de categorías.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

// Create alta manual. El par (nombre, subcategoría) debe ser único, ambas
// subcategorías nulas incluido.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.ListByName(in.Name)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if equalOptional(c.Subcategory, in.Subcategory) {
			return nil, domain.ErrDuplicate
		}
	}
	cat := &entity.Category{Name: in.Name, Subcategory: in.Subcategory}
	if err := uc.categories.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByID devuelve la categoría o nil si no existe.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryResponse, error) {
	cat, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := []dto.CategoryResponse{}
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Subcategory: c.Subcategory}
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
