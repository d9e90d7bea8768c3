package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

var jsonNull = []byte("null")

// Rango aceptado para montos y tasas. Un exponente enorme ("1e200000000")
// se parsea sin error pero formatearlo con StringFixed cuesta memoria y CPU
// proporcionales al exponente.
const (
	maxDecimalExponent = 20
	maxDecimalDigits   = 30
)

// inMoneyRange indica si d tiene exponente y cantidad de dígitos acotados.
func inMoneyRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return false
	}
	return d.NumDigits() <= maxDecimalDigits
}

// Rate tasa de impuesto en porcentaje. El navegador envía null o una cadena
// vacía cuando el campo no es numérico; eso se interpreta como 0, igual que
// un valor fuera de rango.
type Rate struct {
	d decimal.Decimal
}

// RateOf envuelve un decimal.
func RateOf(d decimal.Decimal) Rate { return Rate{d: d} }

func (r Rate) Decimal() decimal.Decimal { return r.d }

func (r *Rate) UnmarshalJSON(b []byte) error {
	r.d = decimal.Zero
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil && inMoneyRange(d) {
		r.d = d
	}
	return nil
}

// MarshalJSON emite la tasa como número JSON.
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.d.String()), nil
}

// TokenID id de línea; acepta número o cadena (el navegador usa contadores numéricos).
type TokenID string

func (t *TokenID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TokenID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = TokenID(n.String())
	return nil
}
