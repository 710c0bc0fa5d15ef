package catalog

import "strings"

// Facets son los atributos estructurados derivados de un SKU. Todos son
// opcionales: un SKU mal formado produce facetas nulas, no errores.
type Facets struct {
	Prefix     *string
	DesignCode *string
	Pattern    *string
	Color      *string
	Size       *string
}

// DecomposeSKU separa un SKU delimitado por guiones en sus facetas usando
// heurísticas posicionales. Se trabaja desde atrás: el último segmento es el
// candidato a talla, el anterior a color y el anterior a ese a patrón. Es un
// esfuerzo razonable sobre una convención sin documentar; el contrato es
// determinismo (el mismo SKU produce siempre la misma tupla), no corrección
// semántica sobre SKUs mal formados.
//
// Ejemplo: "SC-0049-FL-RD-XL" => prefijo SC, diseño 0049, patrón FL,
// color RD, talla XL.
func (r Rules) DecomposeSKU(sku string) Facets {
	var f Facets

	// El candidato a talla es siempre el último segmento del split completo;
	// la talla nunca se deriva de un split por "/".
	rawSegments := strings.Split(sku, "-")
	sizeCandidate := strings.TrimSpace(rawSegments[len(rawSegments)-1])
	if sizeCandidate != "" {
		f.Size = r.NormalizeSize(sizeCandidate)
	}

	var parts []string
	for _, p := range rawSegments {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		f.Prefix = &parts[0]
	}
	if len(parts) > 1 {
		f.DesignCode = &parts[1]
	}

	// base: todo menos el segmento de talla cuando hay dos o más partes.
	base := parts
	if len(parts) >= 2 {
		base = parts[:len(parts)-1]
	}

	if len(base) > 0 {
		lastBase := base[len(base)-1]
		// Si el SKU está mal delimitado y reutiliza el token de talla como
		// pseudo-color, no lo aceptamos como color.
		if lastBase != sizeCandidate {
			f.Color = NormalizeColor(lastBase)
		}
	}

	if len(base) >= 3 {
		candidate := base[len(base)-2]
		// Un segmento puramente numérico es un código de diseño, no un patrón.
		if candidate != "" && !isNumeric(candidate) {
			f.Pattern = &candidate
		}
	}

	// Resolución secuencial de conflictos, en este orden exacto:
	// patrón igual a color descarta el patrón; color igual a talla descarta
	// el color.
	if f.Pattern != nil && f.Color != nil && *f.Pattern == *f.Color {
		f.Pattern = nil
	}
	if f.Color != nil && f.Size != nil && *f.Color == *f.Size {
		f.Color = nil
	}
	return f
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
