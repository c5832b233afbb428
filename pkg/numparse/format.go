package numparse

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter representa decimales con los separadores del idioma configurado
// (notas del kardex y reportes). Los dígitos salen de decimal.StringFixed: nunca pasa por float64.
type Formatter struct {
	decimalSep string
	groupSep   string
	// minGroup cantidad mínima de dígitos enteros para agrupar (CLDR: "1234" sin separar en español)
	minGroup int
}

// NewFormatter construye el formatter; un locale inválido cae a español.
// Los separadores se toman de x/text formateando valores de referencia.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	p := message.NewPrinter(tag)

	f := &Formatter{decimalSep: ".", minGroup: 4}
	ref := []rune(p.Sprintf("%.1f", 1234567.5))
	if len(ref) >= 3 && !unicode.IsDigit(ref[len(ref)-2]) {
		f.decimalSep = string(ref[len(ref)-2])
	}
	if len(ref) >= 2 && !unicode.IsDigit(ref[1]) {
		f.groupSep = string(ref[1])
	}
	if f.groupSep != "" && !strings.Contains(p.Sprintf("%.1f", 1234.5), f.groupSep) {
		f.minGroup = 5
	}
	return f
}

// Format devuelve d con exactamente places decimales.
func (f *Formatter) Format(d decimal.Decimal, places int32) string {
	if places < 0 {
		places = 0
	}
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	intPart = f.group(intPart)
	if frac == "" {
		return sign + intPart
	}
	return sign + intPart + f.decimalSep + frac
}

func (f *Formatter) group(digits string) string {
	if f.groupSep == "" || len(digits) < f.minGroup {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(f.groupSep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
