package dto

// CreateProductRequest alta manual de un producto (fuera del importador).
type CreateProductRequest struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	CategoryID *int64 `json:"category_id"`
	StockLevel int    `json:"stock_level"`
}

// ProductResponse representación de un producto con sus facetas derivadas.
type ProductResponse struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`
	StockLevel   int     `json:"stock_level"`
	Size         *string `json:"size"`
	Prefix       *string `json:"prefix"`
	DesignCode   *string `json:"design_code"`
	Pattern      *string `json:"pattern"`
	Color        *string `json:"color"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductFacetsResponse tallas y colores distintos presentes en el catálogo,
// ya filtrados por el vocabulario canónico.
type ProductFacetsResponse struct {
	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
}
