package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
)

var _ importer.FileReader = (*Reader)(nil)

// Reader lee archivos tabulares (.xlsx vía excelize, .csv vía encoding/csv)
// como matriz de celdas en texto. Siempre se lee la primera hoja.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read devuelve todas las filas del archivo. Las filas pueden tener longitudes
// distintas (celdas finales vacías omitidas); el limpiador tabular lo tolera.
func (r *Reader) Read(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx sin hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return rows, nil
}
