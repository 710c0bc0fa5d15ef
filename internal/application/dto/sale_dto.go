package dto

// CreateSaleRequest alta manual de una venta. Descuenta stock del producto;
// se rechaza si el stock quedaría negativo o el SKU no existe.
type CreateSaleRequest struct {
	Channel  string `json:"channel"`
	Date     string `json:"date"` // YYYY-MM-DD
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// SaleResponse representación de una venta registrada.
type SaleResponse struct {
	SaleID   int64  `json:"sale_id"`
	Channel  string `json:"channel"`
	Date     string `json:"date"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}
