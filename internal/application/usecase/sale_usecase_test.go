package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles mínimos: producto con stock mutable y ventas en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	bySKU  map[string]*entity.Product
	sizes  []string
	colors []string
}

func (r *stubProductRepo) Create(p *entity.Product) error {
	r.bySKU[p.SKU] = p
	return nil
}

func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *stubProductRepo) Update(*entity.Product) error { return nil }

func (r *stubProductRepo) ListBySKUPrefix(string) ([]*entity.Product, error)   { return nil, nil }
func (r *stubProductRepo) ListBySKUContains(string) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) DistinctSizes() ([]string, error)  { return r.sizes, nil }
func (r *stubProductRepo) DistinctColors() ([]string, error) { return r.colors, nil }

func (r *stubProductRepo) DecrementStock(sku string, qty int) error {
	p, ok := r.bySKU[sku]
	if !ok {
		return domain.ErrNotFound
	}
	if p.StockLevel < qty {
		return domain.ErrInsufficientStock
	}
	p.StockLevel -= qty
	return nil
}

type stubSaleRepo struct {
	sales  []*entity.ProductSale
	nextID int64
}

func (r *stubSaleRepo) Create(s *entity.ProductSale) error {
	r.nextID++
	s.SaleID = r.nextID
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) List() ([]*entity.ProductSale, error) { return r.sales, nil }

func (r *stubSaleRepo) ListBySKU(sku string) ([]*entity.ProductSale, error) {
	var out []*entity.ProductSale
	for _, s := range r.sales {
		if s.SKU == sku {
			out = append(out, s)
		}
	}
	return out, nil
}

// stubTxRunner pasa los repos tal cual; el rollback real lo cubren los tests
// de infraestructura.
type stubTxRunner struct {
	products *stubProductRepo
	sales    *stubSaleRepo
}

func (tx *stubTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	return fn(tx.products, tx.sales)
}

func newSaleFixture(stock int) (*usecase.SaleUseCase, *stubProductRepo, *stubSaleRepo) {
	products := &stubProductRepo{bySKU: map[string]*entity.Product{
		"SC-0001": {SKU: "SC-0001", Name: "Camiseta", StockLevel: stock},
	}}
	sales := &stubSaleRepo{}
	uc := usecase.NewSaleUseCase(sales, &stubTxRunner{products: products, sales: sales})
	return uc, products, sales
}

func TestSaleCreateDescuentaStock(t *testing.T) {
	uc, products, sales := newSaleFixture(10)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		SKU:      "SC-0001",
		Quantity: 3,
		Date:     "2024-03-05",
		Channel:  "TIKTOK",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "SC-0001", out.SKU)
	assert.Equal(t, "2024-03-05", out.Date)
	assert.Equal(t, "TIKTOK", out.Channel)

	assert.Equal(t, 7, products.bySKU["SC-0001"].StockLevel)
	assert.Len(t, sales.sales, 1)
}

func TestSaleCreateStockInsuficiente(t *testing.T) {
	uc, products, sales := newSaleFixture(2)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		SKU:      "SC-0001",
		Quantity: 5,
		Date:     "2024-03-05",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, products.bySKU["SC-0001"].StockLevel, "el stock no cambia en una venta rechazada")
	assert.Empty(t, sales.sales)
}

func TestSaleCreateProductoInexistente(t *testing.T) {
	uc, _, sales := newSaleFixture(10)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		SKU:      "NADA-0001",
		Quantity: 1,
		Date:     "2024-03-05",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, sales.sales)
}

func TestSaleCreateEntradaInvalida(t *testing.T) {
	uc, _, _ := newSaleFixture(10)

	casos := []dto.CreateSaleRequest{
		{SKU: "", Quantity: 1, Date: "2024-03-05"},
		{SKU: "SC-0001", Quantity: 0, Date: "2024-03-05"},
		{SKU: "SC-0001", Quantity: -1, Date: "2024-03-05"},
		{SKU: "SC-0001", Quantity: 1, Date: "05/03/2024"},
	}
	for _, in := range casos {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v", in)
	}
}

func TestSaleCreateCanalPorDefecto(t *testing.T) {
	uc, _, sales := newSaleFixture(10)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		SKU:      "SC-0001",
		Quantity: 1,
		Date:     "2024-03-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "unknown", out.Channel)
	require.Len(t, sales.sales, 1)
	assert.Equal(t, "unknown", sales.sales[0].Channel)
}
