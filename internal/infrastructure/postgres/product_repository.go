package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `sku, name, category_id, stock_level, size, prefix, design_code, pattern, color`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO products (sku, name, category_id, stock_level, size, prefix, design_code, pattern, color)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.SKU, product.Name, product.CategoryID, product.StockLevel,
		product.Size, product.Prefix, product.DesignCode, product.Pattern, product.Color,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert product %s: categoría inexistente: %w", product.SKU, domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update reemplaza los campos mutables del producto (el SKU nunca cambia).
func (r *ProductRepo) Update(product *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET name = $2, category_id = $3, stock_level = $4, size = $5,
		        prefix = $6, design_code = $7, pattern = $8, color = $9
		 WHERE sku = $1`,
		product.SKU, product.Name, product.CategoryID, product.StockLevel,
		product.Size, product.Prefix, product.DesignCode, product.Pattern, product.Color,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListBySKUPrefix lista productos cuyo SKU empieza por el literal dado.
func (r *ProductRepo) ListBySKUPrefix(prefix string) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku LIKE $1 ORDER BY sku`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("list products by sku prefix: %w", err)
	}
	return scanProducts(rows)
}

// ListBySKUContains lista productos cuyo SKU contiene el fragmento dado.
func (r *ProductRepo) ListBySKUContains(fragment string) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku LIKE $1 ORDER BY sku`,
		"%"+escapeLike(fragment)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("list products by sku fragment: %w", err)
	}
	return scanProducts(rows)
}

// List lista productos con filtros opcionales.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	var args []any
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Size != "" {
		args = append(args, filter.Size)
		query += fmt.Sprintf(" AND size = $%d", len(args))
	}
	if filter.Color != "" {
		args = append(args, filter.Color)
		query += fmt.Sprintf(" AND color = $%d", len(args))
	}
	query += " ORDER BY sku"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

// DistinctSizes tallas distintas no nulas presentes en el catálogo.
func (r *ProductRepo) DistinctSizes() ([]string, error) {
	return r.distinct("size")
}

// DistinctColors colores distintos no nulos presentes en el catálogo.
func (r *ProductRepo) DistinctColors() ([]string, error) {
	return r.distinct("color")
}

func (r *ProductRepo) distinct(column string) ([]string, error) {
	// column viene de un conjunto fijo interno, nunca de entrada de usuario.
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT `+column+` FROM products WHERE `+column+` IS NOT NULL AND `+column+` <> ''`)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// DecrementStock descuenta qty unidades con guardia de stock no negativo.
func (r *ProductRepo) DecrementStock(sku string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_level = stock_level - $2 WHERE sku = $1 AND stock_level >= $2`,
		sku, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.SKU, &p.Name, &p.CategoryID, &p.StockLevel,
		&p.Size, &p.Prefix, &p.DesignCode, &p.Pattern, &p.Color)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.CategoryID, &p.StockLevel,
			&p.Size, &p.Prefix, &p.DesignCode, &p.Pattern, &p.Color); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
