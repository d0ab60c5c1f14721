package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const nbsp = "\u00a0"

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "US$",
	"GBP": "GBP",
}

// FormatPrice formats a price the way Spanish storefronts show it:
// comma decimals, dot thousands for five or more integer digits and
// the currency after the amount ("1234,50 €", "12.345,00 €").
func FormatPrice(price float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	d := decimal.NewFromFloat(price).Round(2)
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	if len(intPart) >= 5 {
		intPart = groupThousands(intPart)
	}

	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency)
	}

	out := intPart + "," + frac + nbsp + symbol
	if neg {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatRelativeDate describes how long ago t was, in Spanish.
func FormatRelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Hoy"
	case days == 1:
		return "Ayer"
	case days < 7:
		return fmt.Sprintf("Hace %d días", days)
	case days < 30:
		return plural(days/7, "semana", "semanas")
	case days < 365:
		return plural(days/30, "mes", "meses")
	default:
		return plural(days/365, "año", "años")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "Hace 1 " + one
	}
	return fmt.Sprintf("Hace %d %s", n, many)
}

// DomainFromURL returns the link's host without a leading "www.".
func DomainFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "Enlace externo"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
