package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	CategoryID *int64
	Size       string
	Color      string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetBySKU devuelve (nil, nil) si el SKU no existe.
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ListBySKUPrefix devuelve los productos cuyo SKU empieza por el literal
	// dado (los metacaracteres de LIKE se escapan).
	ListBySKUPrefix(prefix string) ([]*entity.Product, error)
	// ListBySKUContains devuelve los productos cuyo SKU contiene el fragmento.
	ListBySKUContains(fragment string) ([]*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	DistinctSizes() ([]string, error)
	DistinctColors() ([]string, error)
	// DecrementStock descuenta qty unidades; devuelve ErrInsufficientStock si
	// el stock quedaría negativo.
	DecrementStock(sku string, qty int) error
}
