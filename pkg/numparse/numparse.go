// Package numparse convierte cantidades escritas a mano ("1.234,56", "6,5", "6.5")
// en decimales canónicos.
//
// Reglas, en orden:
//
//   - nil, "" o solo espacios → 0.
//   - Con coma: los puntos son separadores de miles y la primera coma es el separador decimal.
//   - Sin coma y con forma de decimal simple ("6.5", "12.5000") → se lee tal cual.
//   - Cualquier otra cadena con puntos ("1.000", "1.234") → los puntos son miles y se eliminan.
//
// "1.234" se interpreta como mil doscientos treinta y cuatro: el agrupamiento de miles
// (1 a 3 dígitos seguidos de grupos ".ddd") gana sobre la lectura decimal.
package numparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber el valor limpio no es numérico.
var ErrNotANumber = errors.New("numparse: valor no numérico")

var (
	bareDecimal    = regexp.MustCompile(`^-?\d+\.\d+$`)
	thousandsGroup = regexp.MustCompile(`^-?[1-9]\d{0,2}(\.\d{3})+$`)
)

// Parse devuelve el decimal canónico de v. Acepta strings, enteros, flotantes,
// decimal.Decimal y json.Number.
func Parse(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, nil
		}
		return *x, nil
	case string:
		return ParseString(x)
	case *string:
		if x == nil {
			return decimal.Zero, nil
		}
		return ParseString(*x)
	case json.Number:
		// Literal numérico JSON: el punto siempre es decimal
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, x.String())
		}
		return d, nil
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint64:
		return decimal.NewFromUint64(x), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: tipo %T", ErrNotANumber, v)
	}
}

// ParseString aplica la heurística de separadores sobre una cadena.
func ParseString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	var cleaned string
	switch {
	case strings.Contains(s, ","):
		cleaned = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case bareDecimal.MatchString(s) && !thousandsGroup.MatchString(s):
		cleaned = s
	default:
		cleaned = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || strings.ContainsAny(cleaned, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return d, nil
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNotANumber, f)
	}
	return decimal.NewFromFloat(f), nil
}
