package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	// Create persiste la categoría y rellena CategoryID.
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	// ListByName devuelve todas las categorías con ese nombre exacto,
	// cualquiera que sea su subcategoría.
	ListByName(name string) ([]*entity.Category, error)
	List() ([]*entity.Category, error)
}
