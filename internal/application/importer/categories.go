package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// CategoryImportUseCase importa el maestro de categorías (encabezado en la
// primera fila física). A diferencia del camino de productos, aquí solo vale
// la coincidencia exacta de (nombre, subcategoría): si ya existe se salta la
// fila, nunca se reutiliza una categoría de subcategoría nula.
type CategoryImportUseCase struct {
	categories repository.CategoryRepository
	reader     FileReader
	log        *logger.Logger
}

func NewCategoryImportUseCase(categories repository.CategoryRepository, reader FileReader, log *logger.Logger) *CategoryImportUseCase {
	return &CategoryImportUseCase{categories: categories, reader: reader, log: log}
}

type categoryColumns struct {
	id          int
	name        int
	subcategory int
}

func detectCategoryColumns(t *Table) (categoryColumns, error) {
	cols := categoryColumns{id: -1, name: -1, subcategory: -1}
	for i, h := range t.Headers {
		if strings.Contains(h, "#") {
			cols.id = i
		}
		if strings.Contains(h, "ชื่อหมวดหมู่ย่อย") {
			cols.subcategory = i
		} else if strings.Contains(h, "ชื่อหมวดหมู่") && cols.name < 0 {
			cols.name = i
		}
	}
	if cols.id < 0 || cols.name < 0 {
		return cols, fmt.Errorf("archivo de categorías: %w", domain.ErrMissingColumns)
	}
	return cols, nil
}

// Import procesa el archivo fila a fila; cada inserción se confirma de
// inmediato.
func (uc *CategoryImportUseCase) Import(ctx context.Context, path string) (*Report, error) {
	raw, err := uc.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo de categorías: %w", err)
	}
	t := NewTable(raw, 0)
	cols, err := detectCategoryColumns(t)
	if err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString()}
	zl := uc.log.With().Str("run_id", rep.RunID).Str("import", "categories").Logger()
	zl.Info().Int("rows", len(t.Rows)).Msg("iniciando importación de categorías")

	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := t.Cell(row, cols.name)
		if name == "" {
			rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, Reason: "nombre vacío"})
			continue
		}
		sub := optional(t.Cell(row, cols.subcategory))

		existing, err := uc.categories.ListByName(name)
		if err != nil {
			return rep, fmt.Errorf("buscar categoría %q: %w", name, err)
		}
		var matched *entity.Category
		for _, c := range existing {
			if equalOptional(c.Subcategory, sub) {
				matched = c
				break
			}
		}
		if matched != nil {
			zl.Info().Int("row", i).Str("name", name).Str("subcategory", deref(sub)).Msg("categoría ya existe, saltada")
			rep.add(RowOutcome{Row: i, Kind: OutcomeSkipped, Reason: "ya existe"})
			continue
		}

		cat := &entity.Category{Name: name, Subcategory: sub}
		if err := uc.categories.Create(cat); err != nil {
			return rep, fmt.Errorf("crear categoría %q: %w", name, err)
		}
		zl.Info().Int("row", i).Int64("category_id", cat.CategoryID).Str("name", name).Str("subcategory", deref(sub)).Msg("categoría insertada")
		rep.add(RowOutcome{Row: i, Kind: OutcomeInserted})
	}

	zl.Info().Str("summary", rep.Summary()).Msg("importación de categorías completada")
	return rep, nil
}
