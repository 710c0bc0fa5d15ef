package http

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

var allowedUploadExts = []string{".xlsx", ".xls", ".csv"}

// ImportHandler recibe archivos subidos, los deja en un archivo temporal y
// delega en los casos de uso de importación. La traducción de errores fatales
// a mensajes con pistas (columnas faltantes, sin filas válidas, productos
// inexistentes) vive aquí, no en el motor.
type ImportHandler struct {
	products   *importer.ProductImportUseCase
	sales      *importer.SalesImportUseCase
	categories *importer.CategoryImportUseCase
	uploadDir  string
}

func NewImportHandler(
	products *importer.ProductImportUseCase,
	sales *importer.SalesImportUseCase,
	categories *importer.CategoryImportUseCase,
	uploadDir string,
) *ImportHandler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &ImportHandler{products: products, sales: sales, categories: categories, uploadDir: uploadDir}
}

// UploadProducts godoc
// @Summary      Importar catálogo de productos desde un archivo
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Param        file     formData  file  true   "Archivo .xlsx/.csv (encabezado en la segunda fila)"
// @Param        dry_run  query     bool  false  "Simular sin escribir"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/upload [post]
func (h *ImportHandler) UploadProducts(c *fiber.Ctx) error {
	dryRun := c.QueryBool("dry_run", false)
	path, cleanup, err := h.saveUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	rep, err := h.products.Import(c.Context(), path, dryRun)
	if err != nil {
		return importError(c, "productos", err)
	}
	action := "importados"
	if dryRun {
		action = "validados"
	}
	return c.JSON(importResponse(rep, fmt.Sprintf("datos de productos %s correctamente", action), dryRun, false, ""))
}

// UploadSales godoc
// @Summary      Importar ventas desde un archivo
// @Tags         sales
// @Accept       mpfd
// @Produce      json
// @Param        file            formData  file  true   "Archivo .xlsx/.csv (encabezado en la segunda fila)"
// @Param        dry_run         query     bool  false  "Simular sin escribir"
// @Param        create_missing  query     bool  false  "Crear productos mínimos para SKUs desconocidos"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/upload [post]
func (h *ImportHandler) UploadSales(c *fiber.Ctx) error {
	dryRun := c.QueryBool("dry_run", false)
	createMissing := c.QueryBool("create_missing", false)
	path, cleanup, err := h.saveUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	rep, err := h.sales.Import(c.Context(), path, dryRun, createMissing)
	if err != nil {
		return importError(c, "ventas", err)
	}
	hint := ""
	if !createMissing && rep.Skipped > 0 {
		hint = "hay filas saltadas; si referencian productos aún no importados, activar create_missing los crea automáticamente"
	}
	action := "importados"
	if dryRun {
		action = "validados"
	}
	resp := importResponse(rep, fmt.Sprintf("datos de ventas %s correctamente", action), dryRun, createMissing, hint)
	return c.JSON(resp)
}

// UploadCategories godoc
// @Summary      Importar maestro de categorías desde un archivo
// @Tags         categories
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx/.csv (encabezado en la primera fila)"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories/upload [post]
func (h *ImportHandler) UploadCategories(c *fiber.Ctx) error {
	path, cleanup, err := h.saveUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	rep, err := h.categories.Import(c.Context(), path)
	if err != nil {
		return importError(c, "categorías", err)
	}
	return c.JSON(importResponse(rep, "categorías importadas correctamente", false, false, ""))
}

// saveUpload valida la extensión y copia el archivo subido a un temporal.
// El cleanup devuelto borra el temporal y es seguro llamarlo siempre.
func (h *ImportHandler) saveUpload(c *fiber.Ctx) (string, func(), error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", func() {}, c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el campo multipart 'file'"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext) {
		return "", func() {}, c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "UNSUPPORTED_TYPE", Message: "tipo de archivo no soportado; permitidos: " + strings.Join(allowedUploadExts, ", ")})
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveFile(file, path); err != nil {
		return "", func() {}, c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "SAVE_FAILED", Message: "no se pudo guardar el archivo subido: " + err.Error()})
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func extAllowed(ext string) bool {
	for _, e := range allowedUploadExts {
		if e == ext {
			return true
		}
	}
	return false
}

func importError(c *fiber.Ctx, what string, err error) error {
	if errors.Is(err, domain.ErrMissingColumns) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "MISSING_COLUMNS",
			Message: fmt.Sprintf("faltan columnas requeridas en el archivo de %s: %s", what, err.Error()),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "IMPORT_FAILED",
		Message: fmt.Sprintf("la importación de %s falló: %s", what, err.Error()),
	})
}

func importResponse(rep *importer.Report, message string, dryRun, createMissing bool, hint string) dto.ImportResponse {
	return dto.ImportResponse{
		Success:         true,
		Message:         message,
		DryRun:          dryRun,
		CreateMissing:   createMissing,
		Summary:         rep.Summary(),
		Processed:       rep.Processed,
		Skipped:         rep.Skipped,
		CreatedProducts: rep.CreatedProducts,
		FuzzyMatched:    rep.FuzzyMatched,
		Errors:          rep.Errors,
		Hint:            hint,
	}
}
