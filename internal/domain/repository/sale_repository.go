package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ProductSale (DIP).
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	// Create persiste la venta y rellena SaleID.
	Create(sale *entity.ProductSale) error
	List() ([]*entity.ProductSale, error)
	ListBySKU(sku string) ([]*entity.ProductSale, error)
}
