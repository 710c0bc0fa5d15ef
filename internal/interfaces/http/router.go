package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	SaleUC          *usecase.SaleUseCase
	ProductImport   *importer.ProductImportUseCase
	SalesImport     *importer.SalesImportUseCase
	CategoryImport  *importer.CategoryImportUseCase
	ImportUploadDir string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	importHandler := NewImportHandler(deps.ProductImport, deps.SalesImport, deps.CategoryImport, deps.ImportUploadDir)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/upload", importHandler.UploadProducts)
	products.Get("/facets", productHandler.Facets)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/upload", importHandler.UploadCategories)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/upload", importHandler.UploadSales)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:sku", saleHandler.GetBySKU)
}
