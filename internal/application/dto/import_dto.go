package dto

// ImportResponse resultado de una importación de archivo. Summary es la línea
// de resumen legible; los contadores permiten a los clientes no parsear texto.
type ImportResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	DryRun          bool   `json:"dry_run"`
	CreateMissing   bool   `json:"create_missing,omitempty"`
	Summary         string `json:"summary"`
	Processed       int    `json:"processed"`
	Skipped         int    `json:"skipped"`
	CreatedProducts int    `json:"created_products"`
	FuzzyMatched    int    `json:"matched_skus"`
	Errors          int    `json:"errors"`
	Hint            string `json:"hint,omitempty"`
}
