package entity

// Category agrupa productos por (nombre, subcategoría). La subcategoría es
// opcional; dos categorías nunca comparten el mismo par (nombre, subcategoría),
// incluyendo el caso de ambas con subcategoría nula. La resolución lookup-before-create
// en el importador es quien mantiene esa invariante.
type Category struct {
	CategoryID  int64
	Name        string
	Subcategory *string
}
