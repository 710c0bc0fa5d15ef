package importer

import "fmt"

// OutcomeKind clasifica el resultado de una fila. La taxonomía de
// saltos/errores es explícita en el valor, no implícita en bloques catch.
type OutcomeKind string

const (
	OutcomeInserted        OutcomeKind = "inserted"
	OutcomeUpdated         OutcomeKind = "updated"
	OutcomeWouldInsert     OutcomeKind = "would_insert"
	OutcomeWouldUpdate     OutcomeKind = "would_update"
	OutcomeSaleInserted    OutcomeKind = "sale_inserted"
	OutcomeWouldInsertSale OutcomeKind = "would_insert_sale"
	OutcomeSkipped         OutcomeKind = "skipped"
	OutcomeFailed          OutcomeKind = "failed"
)

// RowOutcome resultado de una fila concreta del archivo.
type RowOutcome struct {
	Row  int // índice de fila dentro de la tabla limpia (desde 0)
	Kind OutcomeKind
	SKU  string
	// MatchedFrom SKU original de la fila cuando la venta se resolvió por
	// coincidencia difusa contra otro SKU del catálogo.
	MatchedFrom string
	// Reason motivo de un salto o fallo, legible por humanos.
	Reason string
}

// Report acumula los contadores de una pasada de importación completa.
type Report struct {
	RunID           string
	Processed       int
	Skipped         int
	CreatedProducts int
	FuzzyMatched    int
	Errors          int
	Outcomes        []RowOutcome
}

func (r *Report) add(o RowOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Kind {
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Errors++
	default:
		r.Processed++
	}
	if o.MatchedFrom != "" {
		r.FuzzyMatched++
	}
}

// Summary línea final de resumen, en el mismo formato que consumen los
// clientes para feedback rápido.
func (r *Report) Summary() string {
	return fmt.Sprintf("processed=%d skipped=%d created_products=%d matched_skus=%d errors=%d",
		r.Processed, r.Skipped, r.CreatedProducts, r.FuzzyMatched, r.Errors)
}
