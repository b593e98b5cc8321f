package view

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Fold minúsculas y sin tildes: "Azúcar" y "AZUCAR" comparan igual.
// Los Caser tienen estado; se crea uno por llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// FilterItems artículos cuyo ID, nombre o alguno de los tres códigos contiene query.
// Una consulta vacía devuelve la lista completa.
func FilterItems(items []entity.Item, query string) []entity.Item {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it entity.Item, q string) bool {
	if strings.Contains(strconv.FormatInt(it.ID, 10), q) || strings.Contains(Fold(it.Name), q) {
		return true
	}
	for _, b := range it.Barcodes {
		if b != "" && strings.Contains(Fold(b), q) {
			return true
		}
	}
	return false
}
