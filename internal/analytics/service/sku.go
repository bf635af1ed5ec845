package service

import (
	"strings"
	"unicode/utf8"

	"sales-analytics/internal/analytics/model"
)

// TokenPredicate решает, похож ли SKU-токен на настоящий артикул.
// false: токен считается мусором выгрузки и заменяется названием товара.
type TokenPredicate interface {
	IsCanonical(token string) bool
}

// PredicateFunc: адаптер для обычной функции.
type PredicateFunc func(token string) bool

func (f PredicateFunc) IsCanonical(token string) bool { return f(token) }

// TokenRule, эвристика по умолчанию: внутренние коды поставщика
// (vof-...), коды с несколькими дефисами и слишком длинные строки.
// Пороги подобраны под выгрузки Uniware, это не валидация.
type TokenRule struct {
	BannedPrefix string
	MaxHyphens   int
	MaxLen       int // в рунах; <=0: без ограничения
}

func DefaultTokenRule() TokenRule {
	return TokenRule{BannedPrefix: "vof-", MaxHyphens: 1, MaxLen: 20}
}

func (r TokenRule) IsCanonical(token string) bool {
	if r.BannedPrefix != "" && strings.HasPrefix(token, r.BannedPrefix) {
		return false
	}
	if strings.Count(token, "-") > r.MaxHyphens {
		return false
	}
	if r.MaxLen > 0 && utf8.RuneCountInString(token) > r.MaxLen {
		return false
	}
	return true
}

// SplitSKUs: "|" приводим к ",", режем по запятой, обрезаем пробелы.
// Пустые токены сохраняются: их отсеет Expand, чтобы это попало в счётчик.
func SplitSKUs(cell string) []string {
	parts := strings.Split(strings.ReplaceAll(cell, "|", ","), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ResolveSKU: единственное место, где вычисляется FinalSKU.
func ResolveSKU(token, product string, pred TokenPredicate) (final string, malformed bool) {
	if !pred.IsCanonical(token) {
		return strings.TrimSpace(product), true
	}
	return strings.TrimSpace(token), false
}

// Expand разворачивает строку заказа в N канонических строк, по одной на
// токен; все остальные поля копируются из base. Строки с пустым FinalSKU
// выбрасываются, их число возвращается в dropped.
func Expand(base model.CanonicalRow, skuCell string, pred TokenPredicate) (out []model.CanonicalRow, dropped int) {
	tokens := SplitSKUs(skuCell)
	out = make([]model.CanonicalRow, 0, len(tokens))
	for _, tok := range tokens {
		row := base
		row.RawToken = tok
		row.FinalSKU, row.Malformed = ResolveSKU(tok, base.Product, pred)
		if row.FinalSKU == "" {
			dropped++
			continue
		}
		out = append(out, row)
	}
	return out, dropped
}
