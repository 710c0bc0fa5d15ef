package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// SalesImportUseCase recorre un export de ventas (encabezado en la segunda
// fila física), normaliza canal/fecha/cantidad y resuelve cada SKU contra el
// catálogo: primero exacto, después difuso. Cada fila vive en su propia
// transacción; una fila mal formada o en conflicto se cuenta como error y la
// pasada continúa. Una sola fila nunca aborta el lote completo.
type SalesImportUseCase struct {
	products repository.ProductRepository
	tx       TxRunner
	reader   FileReader
	rules    catalog.Rules
	log      *logger.Logger
}

func NewSalesImportUseCase(
	products repository.ProductRepository,
	tx TxRunner,
	reader FileReader,
	rules catalog.Rules,
	log *logger.Logger,
) *SalesImportUseCase {
	return &SalesImportUseCase{products: products, tx: tx, reader: reader, rules: rules, log: log}
}

type salesColumns struct {
	date     int
	sku      int
	quantity int
	channel  int // opcional: -1 => todas las filas valen "unknown"
}

func detectSalesColumns(t *Table) (salesColumns, error) {
	cols := salesColumns{date: -1, sku: -1, quantity: -1, channel: -1}
	for i, h := range t.Headers {
		if strings.Contains(h, "วันที่") {
			cols.date = i
		}
		if strings.Contains(h, "รหัส") && strings.Contains(h, "สินค้า") {
			cols.sku = i
		}
		if strings.Contains(h, "จำนวน") {
			cols.quantity = i
		}
		if strings.Contains(h, "ช่องทาง") {
			cols.channel = i
		}
	}
	if cols.date < 0 || cols.sku < 0 || cols.quantity < 0 {
		return cols, fmt.Errorf("archivo de ventas: %w", domain.ErrMissingColumns)
	}
	return cols, nil
}

// Import procesa el archivo en orden de filas. createMissing controla qué
// pasa con un SKU irresoluble: false lo salta; true crea un producto mínimo
// de relleno (stock 0) y registra la venta contra él. En dry-run no hay
// ninguna escritura, solo el reporte de lo que pasaría.
func (uc *SalesImportUseCase) Import(ctx context.Context, path string, dryRun, createMissing bool) (*Report, error) {
	raw, err := uc.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo de ventas: %w", err)
	}
	t := NewTable(raw, 1)
	cols, err := detectSalesColumns(t)
	if err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString()}
	zl := uc.log.With().Str("run_id", rep.RunID).Str("import", "sales").
		Bool("dry_run", dryRun).Bool("create_missing", createMissing).Logger()
	zl.Info().Int("rows", len(t.Rows)).Msg("iniciando importación de ventas")

	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		uc.importRow(ctx, t, cols, i, row, dryRun, createMissing, rep, zl)
	}

	zl.Info().Str("summary", rep.Summary()).Msg("importación de ventas completada")
	return rep, nil
}

func (uc *SalesImportUseCase) importRow(ctx context.Context, t *Table, cols salesColumns, i int, row []string, dryRun, createMissing bool, rep *Report, zl zerolog.Logger) {
	originalSKU := t.Cell(row, cols.sku)
	if originalSKU == "" {
		rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, Reason: "sku vacío"})
		return
	}
	qty := catalog.ParseQuantity(t.Cell(row, cols.quantity))
	channel := "unknown"
	if cols.channel >= 0 {
		channel = uc.rules.NormalizeChannel(t.Cell(row, cols.channel))
	}
	date, ok := catalog.ParseDate(t.Cell(row, cols.date))
	if !ok {
		rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, SKU: originalSKU, Reason: "fecha ilegible"})
		return
	}

	sku := originalSKU
	matchedFrom := ""
	product, err := uc.products.GetBySKU(sku)
	if err != nil {
		rep.add(RowOutcome{Row: i, Kind: OutcomeFailed, SKU: sku, Reason: err.Error()})
		zl.Error().Err(err).Int("row", i).Str("sku", sku).Msg("búsqueda exacta de producto")
		return
	}
	if product == nil {
		// Coincidencia difusa. Un fallo aquí degrada a "no resuelto", no
		// aborta la fila todavía: create_missing decide el destino.
		product, err = uc.fuzzyResolve(sku)
		if err != nil {
			zl.Warn().Err(err).Int("row", i).Str("sku", sku).Msg("coincidencia difusa fallida")
			product = nil
		}
		if product != nil {
			matchedFrom = originalSKU
			sku = product.SKU
			zl.Info().Int("row", i).Str("sku", sku).Str("matched_from", originalSKU).Msg("sku resuelto por coincidencia difusa")
		}
	}

	if product == nil && !createMissing {
		rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, SKU: originalSKU, Reason: "producto no encontrado; usar create_missing para crearlo"})
		zl.Warn().Int("row", i).Str("sku", originalSKU).Msg("venta saltada: producto no encontrado")
		return
	}

	if dryRun {
		if product == nil {
			zl.Info().Int("row", i).Str("sku", sku).Int("qty", qty).Str("channel", channel).
				Msg("se crearía el producto mínimo y se insertaría la venta")
		} else {
			zl.Info().Int("row", i).Str("sku", sku).Str("matched_from", matchedFrom).
				Int("qty", qty).Str("channel", channel).Msg("se insertaría la venta")
		}
		rep.add(RowOutcome{Row: i, Kind: OutcomeWouldInsertSale, SKU: sku, MatchedFrom: matchedFrom})
		return
	}

	createdPlaceholder := false
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		if product == nil {
			placeholder := &entity.Product{
				SKU:        sku,
				Name:       "Auto-created for " + sku,
				StockLevel: 0,
			}
			if err := products.Create(placeholder); err != nil {
				return fmt.Errorf("crear producto mínimo %s: %w", sku, err)
			}
			createdPlaceholder = true
		}
		sale := &entity.ProductSale{Channel: channel, Date: date, SKU: sku, Quantity: qty}
		if err := sales.Create(sale); err != nil {
			return fmt.Errorf("insertar venta %s: %w", sku, err)
		}
		return nil
	})
	if err != nil {
		// La transacción de ESTA fila quedó descartada; seguimos con la
		// siguiente.
		createdPlaceholder = false
		rep.add(RowOutcome{Row: i, Kind: OutcomeFailed, SKU: sku, Reason: err.Error()})
		zl.Error().Err(err).Int("row", i).Str("sku", sku).Msg("fila de venta descartada")
		return
	}
	if createdPlaceholder {
		rep.CreatedProducts++
		zl.Info().Int("row", i).Str("sku", sku).Msg("producto mínimo creado")
	}
	rep.add(RowOutcome{Row: i, Kind: OutcomeSaleInserted, SKU: sku, MatchedFrom: matchedFrom})
	zl.Info().Int("row", i).Str("sku", sku).Str("matched_from", matchedFrom).
		Int("qty", qty).Str("channel", channel).Msg("venta insertada")
}

var skuDelimiters = strings.NewReplacer(`\`, "-", "/", "-")

// fuzzyResolve intenta resolver un SKU de ventas que no existe tal cual en el
// catálogo. Estrategias en orden, parando en la primera que produce algo:
//
//  1. Prefijo: productos cuyo SKU empieza por el SKU de la venta. Con un solo
//     candidato se usa ese; con varios se prueba la lista de sufijos
//     prioritarios (p. ej. `\CL`) como coincidencia exacta sku+sufijo y, si
//     ninguno aplica, gana el SKU más corto (empate: el primero).
//  2. Amplia por segmentos: productos cuyo SKU contiene el primer segmento
//     del SKU de la venta; se conservan los candidatos cuyos segmentos
//     (normalizando `\` y `/` a `-`) coinciden posición a posición con todos
//     los de la venta (el candidato puede tener segmentos extra al final).
//     Gana el más corto.
//
// Devuelve (nil, nil) si nada coincide.
func (uc *SalesImportUseCase) fuzzyResolve(sku string) (*entity.Product, error) {
	candidates, err := uc.products.ListBySKUPrefix(sku)
	if err != nil {
		return nil, fmt.Errorf("candidatos por prefijo: %w", err)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if len(candidates) > 1 {
		for _, suffix := range uc.rules.PrioritySuffixes {
			want := sku + suffix
			for _, c := range candidates {
				if c.SKU == want {
					return c, nil
				}
			}
		}
		return shortestSKU(candidates), nil
	}

	skuParts := strings.Split(sku, "-")
	broad, err := uc.products.ListBySKUContains(skuParts[0])
	if err != nil {
		return nil, fmt.Errorf("candidatos amplios: %w", err)
	}
	var matches []*entity.Product
	for _, c := range broad {
		candParts := strings.Split(skuDelimiters.Replace(c.SKU), "-")
		if len(candParts) < len(skuParts) {
			continue
		}
		ok := true
		for j, p := range skuParts {
			if candParts[j] != p {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return shortestSKU(matches), nil
}

func shortestSKU(list []*entity.Product) *entity.Product {
	best := list[0]
	for _, c := range list[1:] {
		if len(c.SKU) < len(best.SKU) {
			best = c
		}
	}
	return best
}
