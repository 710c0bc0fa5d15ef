package entity

// Product representa un SKU del catálogo. El SKU es la clave primaria (no hay
// id sustituto). Las facetas (Prefix, DesignCode, Pattern, Color, Size) se
// derivan del propio SKU durante la importación; nunca las escribe un usuario.
// StockLevel nunca baja de cero; Size es nula o un token del vocabulario
// canónico de tallas.
type Product struct {
	SKU        string
	Name       string
	CategoryID *int64
	StockLevel int
	Size       *string
	Prefix     *string
	DesignCode *string
	Pattern    *string
	Color      *string
}
