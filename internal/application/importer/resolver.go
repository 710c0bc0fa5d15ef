package importer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryRef referencia a una categoría resuelta. En modo dry-run la
// resolución puede devolver una referencia Pending: "se crearía", sin
// identidad y sin tocar el almacenamiento.
type CategoryRef struct {
	ID          int64
	Name        string
	Subcategory *string
	Pending     bool
}

// CategoryID devuelve el id persistido o nil si la referencia es Pending.
func (r CategoryRef) CategoryID() *int64 {
	if r.Pending {
		return nil
	}
	id := r.ID
	return &id
}

// resolveOrCreateCategory busca la categoría por (nombre, subcategoría).
// Preferencia: coincidencia exacta de subcategoría (incluido ambas nulas),
// luego una del mismo nombre con subcategoría nula (fallback laxo, solo para
// el camino de productos). Si no existe: en dry-run devuelve una referencia
// Pending; en vivo la crea y persiste.
func resolveOrCreateCategory(repo repository.CategoryRepository, name string, sub *string, dryRun bool, zl zerolog.Logger) (CategoryRef, error) {
	candidates, err := repo.ListByName(name)
	if err != nil {
		return CategoryRef{}, fmt.Errorf("buscar categoría %q: %w", name, err)
	}
	for _, c := range candidates {
		if equalOptional(c.Subcategory, sub) {
			return CategoryRef{ID: c.CategoryID, Name: c.Name, Subcategory: c.Subcategory}, nil
		}
	}
	for _, c := range candidates {
		if c.Subcategory == nil {
			return CategoryRef{ID: c.CategoryID, Name: c.Name, Subcategory: nil}, nil
		}
	}
	if dryRun {
		zl.Info().Str("name", name).Str("subcategory", deref(sub)).Msg("se crearía la categoría")
		return CategoryRef{Name: name, Subcategory: sub, Pending: true}, nil
	}
	cat := &entity.Category{Name: name, Subcategory: sub}
	if err := repo.Create(cat); err != nil {
		return CategoryRef{}, fmt.Errorf("crear categoría %q: %w", name, err)
	}
	zl.Info().Int64("category_id", cat.CategoryID).Str("name", cat.Name).Str("subcategory", deref(cat.Subcategory)).Msg("categoría creada")
	return CategoryRef{ID: cat.CategoryID, Name: cat.Name, Subcategory: cat.Subcategory}, nil
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
