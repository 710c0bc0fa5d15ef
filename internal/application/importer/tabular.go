package importer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marcadores de pie de página que las herramientas de export añaden al final
// de la hoja. Cualquier fila que los contenga es metadato, no datos.
var footerMarkers = []string{"exported by", "date time"}

// Table es una tabla ya limpia: encabezados recortados y normalizados, filas
// de pie de página y filas totalmente vacías eliminadas. El orden relativo de
// las filas restantes se conserva.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable construye la tabla a partir de la matriz cruda. headerRow es el
// índice físico de la fila de encabezados (los exports de catálogo y ventas
// usan la segunda fila; el de categorías la primera). Una matriz demasiado
// corta produce una tabla vacía sin error: la detección de columnas es quien
// falla después si faltan encabezados.
func NewTable(raw [][]string, headerRow int) *Table {
	t := &Table{}
	if len(raw) <= headerRow {
		return t
	}
	for _, h := range raw[headerRow] {
		// NFC unifica las formas compuestas/descompuestas del tailandés antes
		// de buscar fragmentos de palabra clave.
		t.Headers = append(t.Headers, norm.NFC.String(strings.TrimSpace(h)))
	}
	for _, row := range raw[headerRow+1:] {
		if isFooterRow(row) || isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Cell devuelve la celda col de la fila, recortada, o "" si la fila es más
// corta que los encabezados.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isFooterRow(row []string) bool {
	for _, cell := range row {
		lc := strings.ToLower(cell)
		for _, marker := range footerMarkers {
			if strings.Contains(lc, marker) {
				return true
			}
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
