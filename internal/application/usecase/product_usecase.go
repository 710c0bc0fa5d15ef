package usecase

import (
	"sort"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase consultas y alta manual de productos. Las facetas nunca se
// editan por aquí: solo el importador las deriva del SKU.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	rules      catalog.Rules
}

func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, rules catalog.Rules) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, rules: rules}
}

// Create alta manual. El SKU debe ser único y la categoría, si viene, existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != nil {
		cat, err := uc.categories.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		SKU:        in.SKU,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		StockLevel: in.StockLevel,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, nil), nil
}

// GetBySKU devuelve el producto o nil si no existe.
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	names, err := uc.categoryNames()
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product, names), nil
}

// List lista productos con filtros opcionales por categoría, talla y color.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(filter)
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames()
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: []dto.ProductResponse{}}
	for _, p := range list {
		out.Items = append(out.Items, *uc.toResponse(p, names))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Facets devuelve las tallas y colores distintos del catálogo, pasados otra
// vez por el vocabulario del importador para no exponer tokens sucios que
// hayan quedado de datos antiguos.
func (uc *ProductUseCase) Facets() (*dto.ProductFacetsResponse, error) {
	rawSizes, err := uc.products.DistinctSizes()
	if err != nil {
		return nil, err
	}
	rawColors, err := uc.products.DistinctColors()
	if err != nil {
		return nil, err
	}

	sizeSet := map[string]struct{}{}
	for _, raw := range rawSizes {
		for _, part := range splitFacet(raw) {
			if tok := uc.rules.NormalizeSize(part); tok != nil {
				sizeSet[*tok] = struct{}{}
			}
		}
	}
	colorSet := map[string]struct{}{}
	for _, raw := range rawColors {
		for _, part := range splitFacet(raw) {
			if c := catalog.NormalizeColor(part); c != nil {
				colorSet[*c] = struct{}{}
			}
		}
	}

	out := &dto.ProductFacetsResponse{Sizes: []string{}, Colors: []string{}}
	for s := range sizeSet {
		out.Sizes = append(out.Sizes, s)
	}
	for c := range colorSet {
		out.Colors = append(out.Colors, c)
	}
	sort.Strings(out.Sizes)
	sort.Strings(out.Colors)
	return out, nil
}

func splitFacet(raw string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '/' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (uc *ProductUseCase) categoryNames() (map[int64]string, error) {
	cats, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product, names map[int64]string) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		StockLevel: p.StockLevel,
		Size:       p.Size,
		Prefix:     p.Prefix,
		DesignCode: p.DesignCode,
		Pattern:    p.Pattern,
		Color:      p.Color,
	}
	if p.CategoryID != nil && names != nil {
		if name, ok := names[*p.CategoryID]; ok {
			resp.CategoryName = &name
		}
	}
	return resp
}
