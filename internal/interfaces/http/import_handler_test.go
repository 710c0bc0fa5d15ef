package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

// buildUploadApp monta solo la ruta de subida; la validación de archivo ocurre
// antes de tocar ningún caso de uso, así que aquí no hace falta base de datos.
func buildUploadApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := apphttp.NewImportHandler(nil, nil, nil, t.TempDir())
	app.Post("/api/products/upload", h.UploadProducts)
	return app
}

func multipartFile(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("contenido de prueba"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestUploadSinArchivo(t *testing.T) {
	app := buildUploadApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decodeError(t, resp).Code)
}

func TestUploadExtensionNoSoportada(t *testing.T) {
	app := buildUploadApp(t)

	body, contentType := multipartFile(t, "file", "datos.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/products/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, resp)
	assert.Equal(t, "UNSUPPORTED_TYPE", out.Code)
	assert.Contains(t, out.Message, ".xlsx")
}

func TestUploadCampoIncorrecto(t *testing.T) {
	app := buildUploadApp(t)

	body, contentType := multipartFile(t, "archivo", "datos.xlsx")
	req := httptest.NewRequest(http.MethodPost, "/api/products/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decodeError(t, resp).Code)
}
