package catalog

import "strings"

// Rules agrupa los vocabularios y heurísticas de normalización del catálogo.
// Son datos, no código: extender el vocabulario de tallas o la lista de ruido
// de marca es un cambio de configuración, no de lógica.
type Rules struct {
	// AllowedSizes vocabulario canónico de tallas. Cualquier token fuera de
	// esta lista se rechaza (nunca se adivina).
	AllowedSizes []string
	// OneSizeTokens sinónimos de talla única que se mapean a "F".
	OneSizeTokens []string
	// BrandNoise tokens que se eliminan del canal de venta (nombre de la
	// tienda, la palabra OFFICIAL, etc.). Comparación case-insensitive.
	BrandNoise []string
	// PrioritySuffixes sufijos conocidos de variantes de SKU, en orden de
	// prioridad, usados para desempatar coincidencias difusas.
	PrioritySuffixes []string
	// BundledPrefix prefijo del texto de categoría que marca una promoción
	// combinada ("แถม คริสต์มาส" => principal "แถม", sub "คริสต์มาส").
	BundledPrefix string
}

// Default devuelve las reglas observadas en los exports reales de la tienda.
func Default() Rules {
	return Rules{
		AllowedSizes:     []string{"XS", "S", "M", "L", "XL", "XXL", "2XL", "3XL", "F", "FF"},
		OneSizeTokens:    []string{"ONE", "ONESIZE", "OS"},
		BrandNoise:       []string{"PAJARA", "OFFICIAL"},
		PrioritySuffixes: []string{`\CL`, `/CL`, `-CL`},
		BundledPrefix:    "แถม",
	}
}

func (r Rules) sizeAllowed(tok string) bool {
	for _, s := range r.AllowedSizes {
		if s == tok {
			return true
		}
	}
	return false
}

func (r Rules) isOneSize(tok string) bool {
	for _, s := range r.OneSizeTokens {
		if s == tok {
			return true
		}
	}
	return false
}

func (r Rules) isBrandNoise(tok string) bool {
	for _, s := range r.BrandNoise {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}
