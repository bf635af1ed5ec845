package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// первое число в строке: "₹1,234.50", "Rs. 250", "(100)", "1 234,50"
var rxNumber = regexp.MustCompile(`[-(]?\d[\d.,\s\x{00A0}\x{202F}]*`)

// 1,234 / 12,34,567 (индийская группировка): запятые-разделители тысяч
var rxThousands = regexp.MustCompile(`^\d{1,3}(,\d{2})*,\d{3}$`)

// ParseAmount достаёт денежную сумму из ячейки. ok=false: распарсить не
// вышло, значение при этом decimal.Zero: такие цены считаются нулевыми.
func ParseAmount(s string) (decimal.Decimal, bool) {
	m := rxNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, false
	}
	neg := false
	switch m[0] {
	case '(':
		neg = true
		m = m[1:]
	case '-':
		neg = true
		m = m[1:]
	}
	m = strings.NewReplacer(" ", "", "\t", "", "\u00a0", "", "\u202f", "").Replace(m)
	m = strings.TrimRight(m, ".,")

	dot, comma := strings.LastIndexByte(m, '.'), strings.LastIndexByte(m, ',')
	switch {
	case dot >= 0 && comma >= 0:
		// последний из разделителей: десятичный
		if dot > comma {
			m = strings.ReplaceAll(m, ",", "")
		} else {
			m = strings.ReplaceAll(m, ".", "")
			m = strings.Replace(m, ",", ".", 1)
		}
	case comma >= 0:
		if rxThousands.MatchString(m) {
			m = strings.ReplaceAll(m, ",", "")
		} else {
			m = strings.Replace(m, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// ParseQuantity: целое неотрицательное количество (остаток на складе).
// Дробная часть отбрасывается, отрицательное и мусор -> 0.
func ParseQuantity(s string) int {
	d, ok := ParseAmount(s)
	if !ok || d.IsNegative() {
		return 0
	}
	return int(d.IntPart())
}
