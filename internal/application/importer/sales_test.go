package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// salesMatrix imita el export real de ventas: fila 0 de título, encabezados en
// la fila 1.
func salesMatrix(rows ...[]string) [][]string {
	out := [][]string{
		{"รายงานการขาย"},
		{"วันที่", "รหัสสินค้า", "จำนวน", "ช่องทาง"},
	}
	return append(out, rows...)
}

type salesFixture struct {
	uc       *importer.SalesImportUseCase
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func newSalesImport(reader *fakeReader, seed ...*entity.Product) salesFixture {
	products := newFakeProductRepo()
	for _, p := range seed {
		if err := products.Create(p); err != nil {
			panic(err)
		}
	}
	sales := newFakeSaleRepo()
	tx := &fakeTxRunner{products: products, sales: sales}
	uc := importer.NewSalesImportUseCase(products, tx, reader, catalog.Default(), logger.Nop())
	return salesFixture{uc: uc, products: products, sales: sales}
}

func TestSalesImportColumnasFaltantes(t *testing.T) {
	reader := &fakeReader{rows: [][]string{
		{"รายงานการขาย"},
		{"วันที่", "จำนวน"}, // sin columna de sku
	}}
	fx := newSalesImport(reader)

	_, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}

func TestSalesImportCoincidenciaExacta(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "SC-0049-FL-RD-XL", "2.0", "TIKTOK - PAJARA OFFICIAL"},
	)}
	fx := newSalesImport(reader, &entity.Product{SKU: "SC-0049-FL-RD-XL", Name: "เสื้อ Floral", StockLevel: 10})

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, 0, rep.FuzzyMatched)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SC-0049-FL-RD-XL", list[0].SKU)
	assert.Equal(t, 2, list[0].Quantity)
	assert.Equal(t, "TIKTOK", list[0].Channel)
	assert.True(t, list[0].Date.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)))

	// El reconciliador de ventas nunca toca el stock.
	p, err := fx.products.GetBySKU("SC-0049-FL-RD-XL")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockLevel)
}

func TestSalesImportSufijoPrioritario(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "ABC-1", "1", ""},
	)}
	fx := newSalesImport(reader,
		&entity.Product{SKU: `ABC-1\CL`, Name: "Variante CL"},
		&entity.Product{SKU: "ABC-10", Name: "Otro diseño"},
	)

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, 1, rep.FuzzyMatched)
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, "ABC-1", rep.Outcomes[0].MatchedFrom)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, `ABC-1\CL`, list[0].SKU, "el sufijo prioritario gana sobre otros candidatos por prefijo")
}

func TestSalesImportDesempatePorMasCorto(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "ABC-1", "1", ""},
	)}
	fx := newSalesImport(reader,
		&entity.Product{SKU: "ABC-1-X-RD", Name: "Largo"},
		&entity.Product{SKU: "ABC-1-XL", Name: "Corto"},
	)

	_, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ABC-1-XL", list[0].SKU)
}

func TestSalesImportCoincidenciaAmplia(t *testing.T) {
	// El catálogo usa "\" como separador; el export de ventas usa "-". La
	// búsqueda por prefijo no encuentra nada y la amplia por segmentos sí.
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "AB-01", "1", ""},
	)}
	fx := newSalesImport(reader,
		&entity.Product{SKU: `AB\01-RD`, Name: "Variante roja"},
		&entity.Product{SKU: "XX-AB-99", Name: "No coincide por posición"},
	)

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.FuzzyMatched)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, `AB\01-RD`, list[0].SKU)
}

func TestSalesImportSinResolverSeSalta(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "NADA-0001", "1", ""},
	)}
	fx := newSalesImport(reader)

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Processed)
	assert.Equal(t, 1, rep.Skipped)
	require.Len(t, rep.Outcomes, 1)
	assert.Contains(t, rep.Outcomes[0].Reason, "create_missing")

	list, err := fx.sales.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSalesImportCreateMissing(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "NADA-0001", "3", "Shopee"},
	)}
	fx := newSalesImport(reader)

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, 1, rep.CreatedProducts)

	p, err := fx.products.GetBySKU("NADA-0001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Auto-created for NADA-0001", p.Name)
	assert.Equal(t, 0, p.StockLevel)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "NADA-0001", list[0].SKU)
	assert.Equal(t, 3, list[0].Quantity)
}

func TestSalesImportDryRunNoEscribe(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "SC-0001", "1", ""},
		[]string{"2024-03-06", "NADA-0001", "2", ""},
	)}
	fx := newSalesImport(reader, &entity.Product{SKU: "SC-0001", Name: "Camiseta"})

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", true, true)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Processed)
	assert.Equal(t, 0, rep.CreatedProducts, "en dry-run no se crea ningún producto")
	for _, o := range rep.Outcomes {
		assert.Equal(t, importer.OutcomeWouldInsertSale, o.Kind)
	}

	list, err := fx.sales.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	p, err := fx.products.GetBySKU("NADA-0001")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSalesImportFilasIlegibles(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"ayer", "SC-0001", "1", ""},
		[]string{"2024-03-05", "", "1", ""},
		[]string{"2024-03-05", "SC-0001", "1", ""},
	)}
	fx := newSalesImport(reader, &entity.Product{SKU: "SC-0001", Name: "Camiseta"})

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, 2, rep.Skipped)
	assert.Equal(t, 0, rep.Errors)
}

func TestSalesImportAislamientoPorFila(t *testing.T) {
	reader := &fakeReader{rows: salesMatrix(
		[]string{"2024-03-05", "SC-0001", "1", ""},
		[]string{"2024-03-05", "SC-0002", "1", ""},
		[]string{"2024-03-05", "SC-0003", "1", ""},
	)}
	fx := newSalesImport(reader,
		&entity.Product{SKU: "SC-0001", Name: "A"},
		&entity.Product{SKU: "SC-0002", Name: "B"},
		&entity.Product{SKU: "SC-0003", Name: "C"},
	)
	fx.sales.failSKU = "SC-0002"

	rep, err := fx.uc.Import(context.Background(), "ventas.xlsx", false, false)
	require.NoError(t, err, "un fallo de fila no aborta el lote")
	assert.Equal(t, 2, rep.Processed)
	assert.Equal(t, 1, rep.Errors)

	list, err := fx.sales.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "SC-0001", list[0].SKU)
	assert.Equal(t, "SC-0003", list[1].SKU)
}
