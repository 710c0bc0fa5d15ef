package importer

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// FileReader lee un archivo tabular (xlsx/csv) como matriz de celdas en
// forma de texto. La mecánica de lectura queda fuera del motor; el motor solo
// ve filas y columnas.
type FileReader interface {
	Read(path string) ([][]string, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El reconciliador de ventas lo usa para aislar
// cada fila: el rollback de una fila fallida no toca las anteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
