package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ProductImportUseCase recorre un export de catálogo (encabezado en la segunda
// fila física) y hace upsert producto a producto. Cada fila se persiste de
// inmediato; un fallo de persistencia en una fila de catálogo aborta el resto
// del lote (la integridad del catálogo es estricta, a diferencia de ventas).
type ProductImportUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reader     FileReader
	rules      catalog.Rules
	log        *logger.Logger
}

func NewProductImportUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reader FileReader,
	rules catalog.Rules,
	log *logger.Logger,
) *ProductImportUseCase {
	return &ProductImportUseCase{products: products, categories: categories, reader: reader, rules: rules, log: log}
}

type productColumns struct {
	sku         int
	name        int
	category    int
	subcategory int
	quantity    int
}

func detectProductColumns(t *Table) (productColumns, error) {
	cols := productColumns{sku: -1, name: -1, category: -1, subcategory: -1, quantity: -1}
	for i, h := range t.Headers {
		if strings.Contains(h, "รหัสสินค้า") || strings.Contains(h, "รหัส") {
			cols.sku = i
		}
		if strings.Contains(h, "ชื่อสินค้า") {
			cols.name = i
		}
		if strings.Contains(h, "หมวดหมู่ย่อย") {
			cols.subcategory = i
		} else if strings.Contains(h, "หมวดหมู่") {
			cols.category = i
		}
		if strings.Contains(h, "จำนวน") {
			cols.quantity = i
		}
	}
	if cols.sku < 0 || cols.name < 0 || cols.category < 0 || cols.quantity < 0 {
		return cols, fmt.Errorf("archivo de productos: %w", domain.ErrMissingColumns)
	}
	return cols, nil
}

// Import procesa el archivo en orden de filas. En dry-run no se realiza
// ninguna escritura: solo lecturas para clasificar cada fila como
// "se insertaría" o "se actualizaría".
func (uc *ProductImportUseCase) Import(ctx context.Context, path string, dryRun bool) (*Report, error) {
	raw, err := uc.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo de productos: %w", err)
	}
	t := NewTable(raw, 1)
	cols, err := detectProductColumns(t)
	if err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString()}
	zl := uc.log.With().Str("run_id", rep.RunID).Str("import", "products").Bool("dry_run", dryRun).Logger()
	zl.Info().Int("rows", len(t.Rows)).Msg("iniciando importación de productos")

	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		sku := t.Cell(row, cols.sku)
		if sku == "" {
			rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, Reason: "sku vacío"})
			continue
		}
		name := t.Cell(row, cols.name)
		rawCategory := t.Cell(row, cols.category)
		sub := optional(t.Cell(row, cols.subcategory))

		// Caso especial: texto de categoría combinado de promoción ("แถม X")
		// sin subcategoría explícita => principal = primer token, sub = resto.
		mainCategory := rawCategory
		if uc.rules.BundledPrefix != "" && sub == nil && strings.HasPrefix(rawCategory, uc.rules.BundledPrefix) {
			if fields := strings.Fields(rawCategory); len(fields) > 1 {
				mainCategory = fields[0]
				joined := strings.Join(fields[1:], " ")
				sub = &joined
			}
		}

		qty := catalog.ParseQuantity(t.Cell(row, cols.quantity))
		facets := uc.rules.DecomposeSKU(sku)

		// Una celda de categoría vacía deja el producto sin categoría: el
		// nombre de una Category nunca puede ser vacío.
		var catRef CategoryRef
		if mainCategory != "" {
			catRef, err = resolveOrCreateCategory(uc.categories, mainCategory, sub, dryRun, zl)
			if err != nil {
				return rep, err
			}
		} else {
			catRef = CategoryRef{Pending: true}
		}

		existing, err := uc.products.GetBySKU(sku)
		if err != nil {
			return rep, fmt.Errorf("buscar producto %s: %w", sku, err)
		}

		if existing != nil {
			if dryRun {
				zl.Info().Int("row", i).Str("sku", sku).Int("stock", qty).Str("size", deref(facets.Size)).Msg("se actualizaría el producto")
				rep.add(RowOutcome{Row: i, Kind: OutcomeWouldUpdate, SKU: sku})
				continue
			}
			uc.applyUpdate(existing, name, catRef, qty, facets)
			if err := uc.products.Update(existing); err != nil {
				return rep, fmt.Errorf("actualizar producto %s: %w", sku, err)
			}
			zl.Info().Int("row", i).Str("sku", sku).Int("stock", existing.StockLevel).
				Str("size", deref(existing.Size)).Str("pattern", deref(existing.Pattern)).
				Str("color", deref(existing.Color)).Msg("producto actualizado")
			rep.add(RowOutcome{Row: i, Kind: OutcomeUpdated, SKU: sku})
			continue
		}

		if dryRun {
			zl.Info().Int("row", i).Str("sku", sku).Int("stock", qty).Str("size", deref(facets.Size)).Msg("se insertaría el producto")
			rep.add(RowOutcome{Row: i, Kind: OutcomeWouldInsert, SKU: sku})
			continue
		}
		product := &entity.Product{
			SKU:        sku,
			Name:       name,
			CategoryID: catRef.CategoryID(),
			StockLevel: qty,
			Size:       facets.Size,
			Prefix:     facets.Prefix,
			DesignCode: facets.DesignCode,
			Pattern:    facets.Pattern, // DecomposeSKU ya suprime patrón == color
			Color:      facets.Color,
		}
		if err := uc.products.Create(product); err != nil {
			return rep, fmt.Errorf("insertar producto %s: %w", sku, err)
		}
		zl.Info().Int("row", i).Str("sku", sku).Int("stock", qty).
			Str("size", deref(facets.Size)).Str("pattern", deref(facets.Pattern)).
			Str("color", deref(facets.Color)).Msg("producto insertado")
		rep.add(RowOutcome{Row: i, Kind: OutcomeInserted, SKU: sku})
	}

	zl.Info().Str("summary", rep.Summary()).Msg("importación de productos completada")
	return rep, nil
}

// applyUpdate política later-wins sobre un producto existente: nombre solo si
// el nuevo no está en blanco; categoría, stock, talla, prefijo y diseño se
// reemplazan; el patrón solo si el valor nuevo no es nulo y difiere del color
// vigente; el color solo si el valor nuevo no es nulo. Nunca se limpia un
// campo a nulo.
func (uc *ProductImportUseCase) applyUpdate(p *entity.Product, name string, catRef CategoryRef, qty int, f catalog.Facets) {
	if name != "" {
		p.Name = name
	}
	p.CategoryID = catRef.CategoryID()
	p.StockLevel = qty
	p.Size = f.Size
	if f.Prefix != nil {
		p.Prefix = f.Prefix
	}
	if f.DesignCode != nil {
		p.DesignCode = f.DesignCode
	}
	if f.Pattern != nil {
		current := f.Color
		if current == nil {
			current = p.Pattern
		}
		if current == nil || *f.Pattern != *current {
			p.Pattern = f.Pattern
		}
	}
	if f.Color != nil {
		p.Color = f.Color
	}
}
