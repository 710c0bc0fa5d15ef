package importer_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria: repos, lector y ejecutor de transacciones
// ──────────────────────────────────────────────────────────────────────────────

// fakeReader devuelve una matriz fija, como si viniera del archivo.
type fakeReader struct {
	rows [][]string
	err  error
}

func (f *fakeReader) Read(string) ([][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeCategoryRepo struct {
	byID   map[int64]*entity.Category
	nextID int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[int64]*entity.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	c.CategoryID = r.nextID
	r.nextID++
	cp := *c
	r.byID[c.CategoryID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) ListByName(name string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.sorted() {
		if c.Name == name {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.sorted() {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) sorted() []*entity.Category {
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out
}

type fakeProductRepo struct {
	bySKU map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySKU: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := r.bySKU[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.bySKU[p.SKU] = &cp
	return nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.bySKU[p.SKU]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.bySKU[p.SKU] = &cp
	return nil
}

func (r *fakeProductRepo) ListBySKUPrefix(prefix string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.sorted() {
		if strings.HasPrefix(p.SKU, prefix) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListBySKUContains(fragment string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.sorted() {
		if strings.Contains(p.SKU, fragment) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.sorted() {
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Size != "" && (p.Size == nil || *p.Size != filter.Size) {
			continue
		}
		if filter.Color != "" && (p.Color == nil || *p.Color != filter.Color) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) DistinctSizes() ([]string, error) {
	return r.distinct(func(p *entity.Product) *string { return p.Size }), nil
}

func (r *fakeProductRepo) DistinctColors() ([]string, error) {
	return r.distinct(func(p *entity.Product) *string { return p.Color }), nil
}

func (r *fakeProductRepo) DecrementStock(sku string, qty int) error {
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

func (r *fakeProductRepo) distinct(field func(*entity.Product) *string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range r.sorted() {
		if v := field(p); v != nil {
			if _, ok := seen[*v]; !ok {
				seen[*v] = struct{}{}
				out = append(out, *v)
			}
		}
	}
	return out
}

func (r *fakeProductRepo) sorted() []*entity.Product {
	skus := make([]string, 0, len(r.bySKU))
	for sku := range r.bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	out := make([]*entity.Product, 0, len(skus))
	for _, sku := range skus {
		out = append(out, r.bySKU[sku])
	}
	return out
}

type fakeSaleRepo struct {
	sales  []*entity.ProductSale
	nextID int64
	// failSKU fuerza un error al insertar ventas de ese SKU.
	failSKU string
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{nextID: 1}
}

func (r *fakeSaleRepo) Create(s *entity.ProductSale) error {
	if r.failSKU != "" && s.SKU == r.failSKU {
		return errors.New("fallo inyectado")
	}
	s.SaleID = r.nextID
	r.nextID++
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) List() ([]*entity.ProductSale, error) {
	out := make([]*entity.ProductSale, 0, len(r.sales))
	for _, s := range r.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) ListBySKU(sku string) ([]*entity.ProductSale, error) {
	var out []*entity.ProductSale
	for _, s := range r.sales {
		if s.SKU == sku {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta la función sobre los mismos repos en memoria. Si la
// función devuelve error, restaura el estado previo para imitar el rollback de
// una transacción real.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	prodSnap := map[string]*entity.Product{}
	for sku, p := range tx.products.bySKU {
		cp := *p
		prodSnap[sku] = &cp
	}
	saleSnap := make([]*entity.ProductSale, len(tx.sales.sales))
	copy(saleSnap, tx.sales.sales)
	nextSnap := tx.sales.nextID

	if err := fn(tx.products, tx.sales); err != nil {
		tx.products.bySKU = prodSnap
		tx.sales.sales = saleSnap
		tx.sales.nextID = nextSnap
		return err
	}
	return nil
}
