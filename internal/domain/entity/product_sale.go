package entity

import "time"

// ProductSale registra una venta ya conciliada contra el catálogo. El SKU
// referenciado siempre existe como Product (el reconciliador lo resuelve o lo
// crea antes de insertar). Inmutable una vez creada; no hay camino de update.
type ProductSale struct {
	SaleID   int64
	Channel  string // nunca vacío; "unknown" cuando no se pudo normalizar
	Date     time.Time
	SKU      string
	Quantity int
}
