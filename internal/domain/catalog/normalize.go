package catalog

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Normalizadores puros de tokens sueltos de los exports (talla, color, canal,
// fecha, cantidad). Todos toleran entrada vacía o basura: devuelven nil (o un
// valor seguro) en lugar de fallar, porque una celda ilegible nunca debe
// abortar una importación completa.

var (
	reNumericRange = regexp.MustCompile(`^\d+(?:[-–]\d+)?$`)
	reShortXL      = regexp.MustCompile(`^(2|3)X(L)?$`)
)

// NormalizeSize devuelve el token canónico de talla o nil si el valor crudo no
// pertenece al vocabulario. Los valores numéricos ("42", "40-42") se rechazan:
// el tallaje numérico queda fuera de este vocabulario.
func (r Rules) NormalizeSize(raw string) *string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	// Valores compuestos "M/L" o "M, L": conservar solo el primer segmento.
	if i := strings.Index(s, "/"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if i := strings.Index(s, ","); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.ReplaceAll(s, " ", "")
	if reNumericRange.MatchString(s) {
		return nil
	}
	if r.sizeAllowed(s) {
		return &s
	}
	// Formas con X repetida: "XXL" ya es canónica, "XXXL" colapsa a "3XL".
	if strings.HasSuffix(s, "XL") && strings.Count(s, "X") >= 2 {
		switch strings.Count(s, "X") {
		case 3:
			tok := "3XL"
			if r.sizeAllowed(tok) {
				return &tok
			}
		case 2:
			tok := "XXL"
			if r.sizeAllowed(tok) {
				return &tok
			}
		}
	}
	if r.isOneSize(s) {
		tok := "F"
		if r.sizeAllowed(tok) {
			return &tok
		}
	}
	if m := reShortXL.FindStringSubmatch(s); m != nil {
		tok := m[1] + "XL"
		if r.sizeAllowed(tok) {
			return &tok
		}
	}
	return nil
}

// NormalizeColor devuelve el color limpio o nil. Los códigos puramente
// numéricos o de puntuación ("01", "123") no son colores; basta una letra en
// cualquiera de los alfabetos del origen (latino o tailandés) para aceptar.
// Se conserva el casing original.
func NormalizeColor(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s = p
				break
			}
		}
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if !containsLetter(s) {
		return nil
	}
	return &s
}

// NormalizeChannel limpia el canal de venta. Nunca devuelve vacío: el valor
// por defecto es el literal "unknown". Ejemplos reales:
// "TIKTOK - PAJARA OFFICIAL" => "TIKTOK", "Facebook PAJARA" => "Facebook".
func (r Rules) NormalizeChannel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "unknown"
	}
	candidate := s
	for _, p := range strings.Split(strings.ReplaceAll(s, "/", " - "), "-") {
		if p = strings.TrimSpace(p); p != "" {
			candidate = p
			break
		}
	}
	var kept []string
	for _, tok := range strings.Fields(candidate) {
		if !r.isBrandNoise(tok) {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		return "unknown"
	}
	return strings.Join(kept, " ")
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
}

// ParseDate intenta interpretar la celda como fecha y trunca al día. Acepta
// los layouts habituales de los exports y el número de serie de Excel (días
// desde 1899-12-30). Devuelve false si no se pudo interpretar; quien llama
// trata ese caso como "saltar la fila", nunca como error fatal.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), true
		}
	}
	// Serie de Excel: un número de días con fracción horaria opcional.
	if d, err := decimal.NewFromString(s); err == nil {
		days := d.IntPart()
		if days > 0 && days < 300000 {
			base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
			return base.AddDate(0, 0, int(days)), true
		}
	}
	return time.Time{}, false
}

// ParseQuantity interpreta la celda como entero tolerando la forma "12.0" que
// producen las hojas de cálculo. Valores ilegibles valen 0, nunca error.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
