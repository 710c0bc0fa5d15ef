package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable
// con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y rellena SaleID. Una violación de clave foránea
// (SKU inexistente) se traduce a ErrNotFound.
func (r *SaleRepo) Create(sale *entity.ProductSale) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO product_sales (channel, date, sku, quantity)
		 VALUES ($1, $2, $3, $4) RETURNING sale_id`,
		sale.Channel, sale.Date, sale.SKU, sale.Quantity,
	).Scan(&sale.SaleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert sale %s: producto inexistente: %w", sale.SKU, domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List lista todas las ventas, más recientes primero.
func (r *SaleRepo) List() ([]*entity.ProductSale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT sale_id, channel, date, sku, quantity FROM product_sales ORDER BY date DESC, sale_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return scanSales(rows)
}

// ListBySKU lista las ventas de un SKU concreto, más recientes primero.
func (r *SaleRepo) ListBySKU(sku string) ([]*entity.ProductSale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT sale_id, channel, date, sku, quantity FROM product_sales WHERE sku = $1 ORDER BY date DESC, sale_id DESC`,
		sku)
	if err != nil {
		return nil, fmt.Errorf("list sales by sku: %w", err)
	}
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]*entity.ProductSale, error) {
	defer rows.Close()
	var list []*entity.ProductSale
	for rows.Next() {
		var s entity.ProductSale
		if err := rows.Scan(&s.SaleID, &s.Channel, &s.Date, &s.SKU, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
