package dto

// CreateCategoryRequest alta manual de una categoría.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Subcategory *string `json:"subcategory"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Subcategory *string `json:"subcategory"`
}
